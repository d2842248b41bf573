package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clinicflow/clinic-api/internal/middleware"
	"github.com/clinicflow/clinic-api/internal/model"
	"github.com/clinicflow/clinic-api/pkg/httputil"
)

// Principal fetches the authenticated principal or writes a 401 and returns
// false. Handlers behind the auth middleware should always find one.
func Principal(c *gin.Context) (model.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httputil.RespondWithDetail(c, http.StatusUnauthorized, "authentication required")
		c.Abort()
	}
	return p, ok
}

// ParseID reads a numeric path parameter, writing a 400 on failure.
func ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		httputil.RespondWithDetail(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// QueryInt64 reads an optional numeric query parameter.
func QueryInt64(c *gin.Context, name string) (*int64, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
