package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-booking/internal/audit"
	"github.com/BruksfildServices01/clinic-booking/internal/auth"
	"github.com/BruksfildServices01/clinic-booking/internal/config"
	domainAppointment "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/handlers"
	"github.com/BruksfildServices01/clinic-booking/internal/metrics"
	"github.com/BruksfildServices01/clinic-booking/internal/middleware"
	"github.com/BruksfildServices01/clinic-booking/internal/session"
	ucAppointment "github.com/BruksfildServices01/clinic-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/web"
)

// Deps are the singletons the router is built from. DB is optional; the
// audit log listing is only mounted when it is set.
type Deps struct {
	Config       *config.Config
	Auth         *auth.Service
	Appointments domainAppointment.Repository
	Sessions     session.Store
	Audit        *audit.Dispatcher
	Metrics      *metrics.Metrics
	DB           *gorm.DB
}

// NewEngine builds the bare gin engine. Client IPs come from the socket
// unless the peer is one of cfg.TrustedProxies.
func NewEngine(cfg *config.Config) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())

	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	return r, nil
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	policy := auth.NewAccessPolicy(cfg.APIPublic())
	dispatcher := auth.DefaultDispatcher()
	limiter := middleware.NewRateLimiter(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst)

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Metrics))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middleware.Identify(d.Auth, d.Sessions, tokens, session.Options{
		TTL:    cfg.SessionTTL,
		Secure: cfg.CookieSecure,
	}))
	r.Use(middleware.Authorize(policy, d.Metrics))

	r.SetHTMLTemplate(web.MustTemplates())

	// ======================================================
	// 🧠 USE CASES (APPOINTMENTS)
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(d.Appointments, d.Audit)
	listAppointmentsUC := ucAppointment.NewListAppointments(d.Appointments)
	updateNotesUC := ucAppointment.NewUpdateNotes(d.Appointments, d.Audit)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(d.Appointments, d.Audit)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(
		d.Auth,
		d.Sessions,
		tokens,
		dispatcher,
		d.Metrics,
		handlers.SessionOptions{TTL: cfg.SessionTTL, Secure: cfg.CookieSecure},
	)

	appointmentHandler := handlers.NewAppointmentHandler(createAppointmentUC, listAppointmentsUC)
	adminHandler := handlers.NewAdminHandler(listAppointmentsUC, updateNotesUC, deleteAppointmentUC)
	appointmentAPIHandler := handlers.NewAppointmentAPIHandler(createAppointmentUC, listAppointmentsUC)
	appWebHandler := handlers.NewAppWebHandler()

	// ======================================================
	// ⚙️ INFRA ROUTES
	// ======================================================
	r.GET("/health", appWebHandler.Health)
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	r.StaticFS("/css", web.CSS())
	r.NoRoute(appWebHandler.NotFound)

	// ======================================================
	// 🔐 AUTH (HTML)
	// ======================================================
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", middleware.RateLimit(limiter), authHandler.Login)
	r.POST("/logout", authHandler.Logout)
	r.GET("/register", authHandler.RegisterPage)
	r.POST("/register", middleware.RateLimit(limiter), authHandler.Register)

	// ======================================================
	// 🌍 WEB PAGES (HTML)
	// ======================================================
	r.GET("/", authHandler.Home)
	r.GET("/welcome", appWebHandler.Welcome)

	r.GET("/appointments", appointmentHandler.List)
	r.GET("/appointments/add", appointmentHandler.AddPage)
	r.POST("/appointments/add", appointmentHandler.Add)

	admin := r.Group("/admin")
	{
		admin.GET("/appointments", adminHandler.List)
		admin.POST("/appointments/:id/notes", adminHandler.UpdateNotes)
		admin.POST("/appointments/:id/delete", adminHandler.Delete)

		if d.DB != nil {
			admin.GET("/audit-logs", handlers.NewAuditLogsHandler(d.DB).List)
		}
	}

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/token", middleware.RateLimit(limiter), authHandler.Token)

		api.POST("/appointments", appointmentAPIHandler.Create)
		api.GET("/appointments", appointmentAPIHandler.List)
	}
}
