package billing

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clinicflow/clinic-api/internal/handler"
	"github.com/clinicflow/clinic-api/internal/service/billing"
	"github.com/clinicflow/clinic-api/pkg/httputil"
)

type Handler struct {
	service *billing.Service
}

func NewHandler(service *billing.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/billing", h.GetReport)
}

func (h *Handler) GetReport(c *gin.Context) {
	p, ok := handler.Principal(c)
	if !ok {
		return
	}

	var year int
	if v := c.Query("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httputil.RespondWithDetail(c, http.StatusBadRequest, "invalid year")
			return
		}
		year = n
	}

	var month *int
	if v := c.Query("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httputil.RespondWithDetail(c, http.StatusBadRequest, "invalid month")
			return
		}
		month = &n
	}

	report, err := h.service.Report(c.Request.Context(), p, year, month)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
