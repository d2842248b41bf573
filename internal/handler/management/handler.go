package management

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicflow/clinic-api/internal/handler"
	"github.com/clinicflow/clinic-api/internal/model"
	"github.com/clinicflow/clinic-api/internal/service/account"
	"github.com/clinicflow/clinic-api/pkg/httputil"
)

// Handler exposes administrative provisioning endpoints.
type Handler struct {
	service *account.Service
}

func NewHandler(service *account.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	mgmt := r.Group("/management")
	{
		mgmt.POST("/admins", h.CreateAdmin)
	}
}

// CreateAdmin provisions an admin account and mails the credentials to the
// new user. The account is not created if the mail cannot be sent.
func (h *Handler) CreateAdmin(c *gin.Context) {
	p, ok := handler.Principal(c)
	if !ok {
		return
	}

	var req model.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithDetail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.CreateAdmin(c.Request.Context(), p, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.Message{Message: "admin account created, credentials sent by email"})
}
