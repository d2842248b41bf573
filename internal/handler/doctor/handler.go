package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicflow/clinic-api/internal/handler"
	"github.com/clinicflow/clinic-api/internal/model"
	"github.com/clinicflow/clinic-api/internal/service/account"
	"github.com/clinicflow/clinic-api/pkg/httputil"
)

type Handler struct {
	service *account.Service
}

func NewHandler(service *account.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.POST("", h.CreateDoctor)
		doctors.GET("", h.ListDoctors)
		doctors.GET("/:id", h.GetDoctor)
	}
}

// CreateDoctor provisions a doctor account and returns the generated
// credentials. This is the only time the password is visible.
func (h *Handler) CreateDoctor(c *gin.Context) {
	p, ok := handler.Principal(c)
	if !ok {
		return
	}

	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithDetail(c, http.StatusBadRequest, err.Error())
		return
	}

	creds, err := h.service.CreateDoctor(c.Request.Context(), p, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, creds)
}

func (h *Handler) GetDoctor(c *gin.Context) {
	p, ok := handler.Principal(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	doc, err := h.service.GetDoctor(c.Request.Context(), p, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	p, ok := handler.Principal(c)
	if !ok {
		return
	}

	page := httputil.ParsePageParams(c)
	doctors, count, err := h.service.ListDoctors(c.Request.Context(), p, page.Limit, page.Offset)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithPage(c, doctors, count)
}
