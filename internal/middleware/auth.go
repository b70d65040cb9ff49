package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-booking/internal/auth"
	"github.com/BruksfildServices01/clinic-booking/internal/logger"
	"github.com/BruksfildServices01/clinic-booking/internal/session"
)

const (
	ContextPrincipal = "principal"
	ContextSessionID = "sessionID"
)

type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, email string) (auth.Principal, error)
}

// Identify resolves the caller from the session cookie, or failing that
// from a Bearer token, and stores a freshly loaded Principal in the
// context. Any failure leaves the request anonymous.
func Identify(
	loader PrincipalLoader,
	sessions session.Store,
	tokens *auth.TokenIssuer,
	opts session.Options,
) gin.HandlerFunc {
	log := logger.With("identify")

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		identifier := ""
		sessionID, hasSession := session.ReadCookie(c.Request)
		if hasSession {
			id, err := sessions.Get(ctx, sessionID)
			switch {
			case err == nil:
				identifier = id
				c.Set(ContextSessionID, sessionID)
				if err := touch(ctx, c, sessions, sessionID, opts); err != nil {
					log.Warn().Err(err).Msg("session refresh failed")
				}
			case errors.Is(err, session.ErrNotFound):
				log.Debug().Msg("stale session cookie")
			default:
				log.Error().Err(err).Msg("session lookup failed")
			}
		}

		if identifier == "" && tokens != nil {
			if raw, ok := bearerToken(c.GetHeader("Authorization")); ok {
				claims, err := tokens.Parse(raw)
				if err != nil {
					log.Debug().Err(err).Msg("rejected bearer token")
				} else {
					identifier = claims.Subject
				}
			}
		}

		if identifier != "" {
			p, err := loader.LoadPrincipal(ctx, identifier)
			if err != nil {
				log.Warn().Err(err).Str("email", identifier).Msg("could not load principal")
			} else {
				c.Set(ContextPrincipal, p)
			}
		}

		c.Next()
	}
}

// touch slides the inactivity window and re-issues the cookie with it.
func touch(ctx context.Context, c *gin.Context, sessions session.Store, id string, opts session.Options) error {
	if opts.TTL <= 0 {
		return nil
	}
	if err := sessions.Touch(ctx, id, opts.TTL); err != nil {
		return err
	}
	session.SetCookie(c.Writer, id, opts.TTL, opts.Secure)
	return nil
}

func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

func SessionIDFrom(c *gin.Context) (string, bool) {
	id := c.GetString(ContextSessionID)
	return id, id != ""
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	raw := strings.TrimSpace(parts[1])
	return raw, raw != ""
}
