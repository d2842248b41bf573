package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicflow/clinic-api/internal/handler"
	"github.com/clinicflow/clinic-api/internal/model"
	"github.com/clinicflow/clinic-api/internal/service/appointment"
	"github.com/clinicflow/clinic-api/pkg/errors"
	"github.com/clinicflow/clinic-api/pkg/httputil"
	"github.com/clinicflow/clinic-api/pkg/metrics"
)

type Handler struct {
	service *appointment.Service
	metrics *metrics.Metrics
}

func NewHandler(service *appointment.Service, m *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.DELETE("/:id", h.CancelAppointment)
	}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	p, ok := handler.Principal(c)
	if !ok {
		return
	}

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithDetail(c, http.StatusBadRequest, err.Error())
		return
	}

	apt, err := h.service.Create(c.Request.Context(), p, &req)
	if err != nil {
		if errors.IsCode(err, errors.CodeConflict) {
			h.metrics.BookingConflicts.Inc()
		}
		httputil.RespondWithError(c, err)
		return
	}

	h.metrics.AppointmentsCreated.Inc()
	c.JSON(http.StatusCreated, apt)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	p, ok := handler.Principal(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	apt, err := h.service.Get(c.Request.Context(), p, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, apt)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	p, ok := handler.Principal(c)
	if !ok {
		return
	}

	filters, ok := h.parseFilters(c)
	if !ok {
		return
	}

	appointments, count, err := h.service.List(c.Request.Context(), p, filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithPage(c, appointments, count)
}

func (h *Handler) parseFilters(c *gin.Context) (*model.AppointmentFilters, bool) {
	page := httputil.ParsePageParams(c)
	filters := &model.AppointmentFilters{Limit: page.Limit, Offset: page.Offset}

	if v := c.Query("date"); v != "" {
		d, err := model.ParseDate(v)
		if err != nil {
			httputil.RespondWithDetail(c, http.StatusBadRequest, "invalid date format, use YYYY-MM-DD")
			return nil, false
		}
		filters.Date = &d
	}

	var err error
	if filters.PatientID, err = handler.QueryInt64(c, "patient_id"); err != nil {
		httputil.RespondWithDetail(c, http.StatusBadRequest, "invalid patient_id")
		return nil, false
	}
	if filters.DoctorID, err = handler.QueryInt64(c, "doctor_id"); err != nil {
		httputil.RespondWithDetail(c, http.StatusBadRequest, "invalid doctor_id")
		return nil, false
	}

	if v := c.Query("status"); v != "" {
		status := model.AppointmentStatus(v)
		filters.Status = &status
	}

	return filters, true
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	p, ok := handler.Principal(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithDetail(c, http.StatusBadRequest, err.Error())
		return
	}

	apt, err := h.service.Update(c.Request.Context(), p, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, apt)
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	p, ok := handler.Principal(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), p, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.metrics.AppointmentsCanceled.Inc()
	c.JSON(http.StatusOK, model.Message{Message: "appointment canceled"})
}
