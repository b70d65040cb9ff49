package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-booking/internal/auth"
	"github.com/BruksfildServices01/clinic-booking/internal/httperr"
	"github.com/BruksfildServices01/clinic-booking/internal/logger"
	"github.com/BruksfildServices01/clinic-booking/internal/metrics"
	"github.com/BruksfildServices01/clinic-booking/internal/middleware"
	"github.com/BruksfildServices01/clinic-booking/internal/session"
	"github.com/BruksfildServices01/clinic-booking/internal/web"
)

const (
	loginErrorPath = "/login?error=true"
	loggedOutPath  = "/login?logout"
)

type SessionOptions struct {
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	auth       *auth.Service
	sessions   session.Store
	tokens     *auth.TokenIssuer
	dispatcher *auth.Dispatcher
	metrics    *metrics.Metrics
	opts       SessionOptions
	log        zerolog.Logger
}

func NewAuthHandler(
	svc *auth.Service,
	sessions session.Store,
	tokens *auth.TokenIssuer,
	dispatcher *auth.Dispatcher,
	m *metrics.Metrics,
	opts SessionOptions,
) *AuthHandler {
	return &AuthHandler{
		auth:       svc,
		sessions:   sessions,
		tokens:     tokens,
		dispatcher: dispatcher,
		metrics:    m,
		opts:       opts,
		log:        logger.With("auth"),
	}
}

// --------- Requests ---------

type TokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Pages ---------

func (h *AuthHandler) LoginPage(c *gin.Context) {
	data := gin.H{}

	q := c.Request.URL.Query()
	switch {
	case q.Has("error"):
		data["Error"] = "Invalid email or password."
	case q.Has("logout"):
		data["Message"] = "You have been logged out."
	}

	render(c, http.StatusOK, web.PageLogin, data)
}

func (h *AuthHandler) RegisterPage(c *gin.Context) {
	render(c, http.StatusOK, web.PageRegister, gin.H{"FormEmail": ""})
}

// --------- Form posts ---------

// Login checks the submitted credentials, opens a session and sends the
// user to the landing page of their role.
func (h *AuthHandler) Login(c *gin.Context) {
	log := h.log
	ctx := c.Request.Context()

	email := c.PostForm("email")
	if email == "" {
		email = c.PostForm("username")
	}
	password := c.PostForm("password")

	p, err := h.auth.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.metrics.AuthAttempts.WithLabelValues("failure").Inc()
			c.Redirect(http.StatusFound, loginErrorPath)
			return
		}
		h.metrics.AuthAttempts.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("login failed")
		c.String(http.StatusInternalServerError, "Something went wrong, please try again.")
		return
	}
	h.metrics.AuthAttempts.WithLabelValues("success").Inc()

	// drop any session the browser already had
	if old, ok := session.ReadCookie(c.Request); ok {
		if err := h.sessions.Delete(ctx, old); err != nil {
			log.Warn().Err(err).Msg("could not delete previous session")
		}
	}

	id, err := h.sessions.Create(ctx, p.Identifier, h.opts.TTL)
	if err != nil {
		log.Error().Err(err).Msg("could not create session")
		c.String(http.StatusInternalServerError, "Something went wrong, please try again.")
		return
	}
	session.SetCookie(c.Writer, id, h.opts.TTL, h.opts.Secure)

	target := h.dispatcher.Target(p)
	h.metrics.LoginRedirects.WithLabelValues(target).Inc()
	log.Info().
		Str("email", p.Identifier).
		Str("authority", p.PrimaryAuthority()).
		Str("target", target).
		Msg("redirecting after login")

	c.Redirect(http.StatusFound, target)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if id, ok := session.ReadCookie(c.Request); ok {
		if err := h.sessions.Delete(c.Request.Context(), id); err != nil {
			h.log.Warn().Err(err).Msg("could not delete session")
		}
	}
	session.ClearCookie(c.Writer, h.opts.Secure)

	c.Redirect(http.StatusFound, loggedOutPath)
}

func (h *AuthHandler) Register(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	_, err := h.auth.Register(c.Request.Context(), email, password)
	switch {
	case err == nil:
		h.metrics.Registrations.WithLabelValues("created").Inc()
		c.Redirect(http.StatusFound, middleware.LoginPath)

	case errors.Is(err, auth.ErrDuplicate):
		h.metrics.Registrations.WithLabelValues("duplicate").Inc()
		render(c, http.StatusConflict, web.PageRegister, gin.H{
			"Error":     "This email is already registered.",
			"FormEmail": email,
		})

	case errors.Is(err, auth.ErrInvalidRegistration):
		h.metrics.Registrations.WithLabelValues("invalid").Inc()
		render(c, http.StatusBadRequest, web.PageRegister, gin.H{
			"Error":     "Enter a valid email and a password.",
			"FormEmail": email,
		})

	default:
		h.metrics.Registrations.WithLabelValues("error").Inc()
		h.log.Error().Err(err).Msg("registration failed")
		render(c, http.StatusInternalServerError, web.PageRegister, gin.H{
			"Error":     "Something went wrong, please try again.",
			"FormEmail": email,
		})
	}
}

// --------- API ---------

// Token exchanges credentials for a bearer token.
func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Email and password are required.")
		return
	}

	p, err := h.auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeInvalidCredentials) {
			h.metrics.AuthAttempts.WithLabelValues("failure").Inc()
			httperr.Unauthorized(c, httperr.CodeInvalidCredentials, "Invalid email or password.")
			return
		}
		h.metrics.AuthAttempts.WithLabelValues("error").Inc()
		h.log.Error().Err(err).Msg("token request failed")
		httperr.Internal(c, httperr.CodeInternal, "Could not authenticate.")
		return
	}
	h.metrics.AuthAttempts.WithLabelValues("success").Inc()

	token, err := h.tokens.Issue(p)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"role":     p.Role(),
		"redirect": h.dispatcher.Target(p),
	})
}

// --------- Landing ---------

// Home sends a signed-in user to the landing page of their role.
func (h *AuthHandler) Home(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}
	c.Redirect(http.StatusFound, h.dispatcher.Target(p))
}
