package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-booking/internal/audit"
	"github.com/BruksfildServices01/clinic-booking/internal/auth"
	"github.com/BruksfildServices01/clinic-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-booking/internal/db"
	domainAppointment "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	domainUser "github.com/BruksfildServices01/clinic-booking/internal/domain/user"
	infraRepo "github.com/BruksfildServices01/clinic-booking/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-booking/internal/logger"
	"github.com/BruksfildServices01/clinic-booking/internal/metrics"
	"github.com/BruksfildServices01/clinic-booking/internal/routes"
	"github.com/BruksfildServices01/clinic-booking/internal/session"
)

func main() {
	logger.Init()
	log := logger.With("main")

	if err := run(); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

// run owns every resource it opens, so any failure still closes the
// database, redis and the audit queue on the way out.
func run() error {
	log := logger.With("main")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// 🗄️ STORES
	// ======================================================
	var (
		db           *gorm.DB
		users        domainUser.Repository
		appointments domainAppointment.Repository
		sink         audit.Sink
	)

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		var err error
		db, err = dbpkg.NewDB(cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := dbpkg.Close(db); err != nil {
				log.Error().Err(err).Msg("failed to close database")
			}
		}()

		users = infraRepo.NewUserGormRepository(db)
		appointments = infraRepo.NewAppointmentGormRepository(db)
		sink = audit.New(db)

	default:
		log.Warn().Msg("using in-memory stores, data is lost on restart")
		users = infraRepo.NewUserMemoryRepository()
		appointments = infraRepo.NewAppointmentMemoryRepository()
		sink = audit.NewLogSink(logger.With("audit"))
	}

	var sessions session.Store
	switch cfg.SessionStore {
	case config.DriverRedis:
		rdb, err := session.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		sessions = session.NewRedisStore(rdb)

	default:
		sessions = session.NewMemoryStore()
	}

	// ======================================================
	// 🧠 SERVICES
	// ======================================================
	auditDispatcher := audit.NewDispatcher(sink)
	defer auditDispatcher.Close()

	authService := auth.NewService(
		users,
		auth.NewBcryptHasher(0),
		auth.WithDefaultRole(cfg.DefaultRole),
		auth.WithAudit(auditDispatcher),
	)

	if cfg.AdminEmail != "" {
		created, err := authService.Provision(ctx, cfg.AdminEmail, cfg.AdminPassword, auth.RoleAdmin)
		if err != nil {
			return fmt.Errorf("provision admin account: %w", err)
		}
		if created {
			log.Info().Str("email", cfg.AdminEmail).Msg("admin account created")
		}
	}

	if cfg.APIPublic() {
		log.Warn().Msg("API_ACCESS=public: /api/** is reachable without authentication")
	}

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	gin.SetMode(gin.ReleaseMode)
	r, err := routes.NewEngine(cfg)
	if err != nil {
		return err
	}

	routes.RegisterRoutes(r, routes.Deps{
		Config:       cfg,
		Auth:         authService,
		Appointments: appointments,
		Sessions:     sessions,
		Audit:        auditDispatcher,
		Metrics:      metrics.New(),
		DB:           db,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
