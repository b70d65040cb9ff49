package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-booking/internal/auth"
	"github.com/BruksfildServices01/clinic-booking/internal/httperr"
	"github.com/BruksfildServices01/clinic-booking/internal/logger"
	"github.com/BruksfildServices01/clinic-booking/internal/metrics"
)

const LoginPath = "/login"

// Authorize applies the access policy. Anonymous page requests are sent
// to the login page; API requests, and clients asking for JSON, get JSON
// errors instead of redirects.
func Authorize(policy *auth.AccessPolicy, m *metrics.Metrics) gin.HandlerFunc {
	log := logger.With("authorize")

	return func(c *gin.Context) {
		path := c.Request.URL.Path

		var principal *auth.Principal
		if p, ok := PrincipalFrom(c); ok {
			principal = &p
		}

		decision := policy.Decide(path, principal)
		if decision == auth.Allow {
			c.Next()
			return
		}

		m.AuthzDenials.WithLabelValues(decision.String()).Inc()
		api := wantsJSON(c)

		switch decision {
		case auth.RequireLogin:
			log.Info().Str("path", path).Msg("anonymous request, login required")

			if api {
				httperr.Abort(c, http.StatusUnauthorized, httperr.CodeUnauthenticated, "Authentication required.")
				return
			}
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()

		case auth.Deny:
			log.Warn().
				Str("path", path).
				Str("email", principal.Identifier).
				Str("authority", principal.PrimaryAuthority()).
				Msg("authorization denied")

			if api {
				httperr.AbortError(c, http.StatusForbidden, auth.ErrForbidden, "Insufficient role.")
				return
			}
			c.String(http.StatusForbidden, "403 Forbidden: insufficient role")
			c.Abort()
		}
	}
}

func wantsJSON(c *gin.Context) bool {
	return auth.IsAPIPath(c.Request.URL.Path) ||
		strings.Contains(c.GetHeader("Accept"), "application/json")
}
