package httputil

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clinicflow/clinic-api/pkg/errors"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// ErrorDetail is the wire format for all error responses
type ErrorDetail struct {
	Detail string `json:"detail"`
}

// Page wraps a paginated list response
type Page struct {
	Items interface{} `json:"items"`
	Count int         `json:"count"`
}

// RespondWithError writes err with its mapped HTTP status. Errors that are
// not an *AppError are reported as an opaque 500.
func RespondWithError(c *gin.Context, err error) {
	if appErr, ok := errors.As(err); ok {
		c.JSON(appErr.HTTPStatus(), ErrorDetail{Detail: appErr.Message})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorDetail{Detail: "internal server error"})
}

// RespondWithDetail writes a plain detail message with the given status
func RespondWithDetail(c *gin.Context, status int, detail string) {
	c.JSON(status, ErrorDetail{Detail: detail})
}

// PageParams holds limit/offset pagination parsed from the query string
type PageParams struct {
	Limit  int
	Offset int
}

// ParsePageParams reads limit/offset query parameters, clamped to sane bounds
func ParsePageParams(c *gin.Context) PageParams {
	p := PageParams{Limit: defaultPageSize}

	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Limit = n
		}
	}
	if p.Limit > maxPageSize {
		p.Limit = maxPageSize
	}

	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			p.Offset = n
		}
	}
	return p
}

// RespondWithPage writes a paginated list response
func RespondWithPage(c *gin.Context, items interface{}, count int) {
	c.JSON(http.StatusOK, Page{Items: items, Count: count})
}
