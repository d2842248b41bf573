package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/clinicflow/clinic-api/internal/model"
	"github.com/clinicflow/clinic-api/pkg/httputil"
)

const principalKey = "principal"

// PrincipalResolver turns a bearer token into a request principal.
type PrincipalResolver interface {
	PrincipalFromToken(ctx context.Context, token string) (model.Principal, error)
}

type AuthMiddleware struct {
	resolver   PrincipalResolver
	principals *cache.Cache
}

func NewAuthMiddleware(resolver PrincipalResolver) *AuthMiddleware {
	return &AuthMiddleware{
		resolver:   resolver,
		principals: cache.New(30*time.Second, 5*time.Minute),
	}
}

// Authenticate verifies the bearer token and injects the principal into the
// request context. Validated principals are cached briefly keyed by token.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.RespondWithDetail(c, http.StatusUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.RespondWithDetail(c, http.StatusUnauthorized, "invalid authorization format")
			c.Abort()
			return
		}
		token := parts[1]

		if cached, ok := m.principals.Get(token); ok {
			c.Set(principalKey, cached.(model.Principal))
			c.Next()
			return
		}

		principal, err := m.resolver.PrincipalFromToken(c.Request.Context(), token)
		if err != nil {
			httputil.RespondWithDetail(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		m.principals.SetDefault(token, principal)
		c.Set(principalKey, principal)
		c.Next()
	}
}

// GetPrincipal reads the authenticated principal set by Authenticate.
func GetPrincipal(c *gin.Context) (model.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return model.Principal{}, false
	}
	p, ok := v.(model.Principal)
	return p, ok
}
