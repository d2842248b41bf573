package prescription

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicflow/clinic-api/internal/handler"
	"github.com/clinicflow/clinic-api/internal/model"
	"github.com/clinicflow/clinic-api/internal/service/prescription"
	"github.com/clinicflow/clinic-api/pkg/httputil"
	"github.com/clinicflow/clinic-api/pkg/metrics"
)

type Handler struct {
	service *prescription.Service
	metrics *metrics.Metrics
}

func NewHandler(service *prescription.Service, m *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	prescriptions := r.Group("/prescriptions")
	{
		prescriptions.POST("", h.CreatePrescription)
		prescriptions.GET("", h.ListPrescriptions)
		prescriptions.GET("/:id", h.GetPrescription)
	}
}

func (h *Handler) CreatePrescription(c *gin.Context) {
	p, ok := handler.Principal(c)
	if !ok {
		return
	}

	var req model.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithDetail(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), p, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.metrics.PrescriptionsIssued.Inc()
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetPrescription(c *gin.Context) {
	p, ok := handler.Principal(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	rx, err := h.service.Get(c.Request.Context(), p, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rx)
}

func (h *Handler) ListPrescriptions(c *gin.Context) {
	p, ok := handler.Principal(c)
	if !ok {
		return
	}

	page := httputil.ParsePageParams(c)
	filters := &model.PrescriptionFilters{Limit: page.Limit, Offset: page.Offset}

	var err error
	if filters.PatientID, err = handler.QueryInt64(c, "patient_id"); err != nil {
		httputil.RespondWithDetail(c, http.StatusBadRequest, "invalid patient_id")
		return
	}
	if filters.AppointmentID, err = handler.QueryInt64(c, "appointment_id"); err != nil {
		httputil.RespondWithDetail(c, http.StatusBadRequest, "invalid appointment_id")
		return
	}
	if filters.DoctorID, err = handler.QueryInt64(c, "doctor_id"); err != nil {
		httputil.RespondWithDetail(c, http.StatusBadRequest, "invalid doctor_id")
		return
	}

	prescriptions, count, err := h.service.List(c.Request.Context(), p, filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithPage(c, prescriptions, count)
}
