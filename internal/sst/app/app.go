package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/sevenstents-cloud/sst-mvp/internal/sst/http"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/service"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/store"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/store/drivers/sqlite"
	"github.com/sevenstents-cloud/sst-mvp/pkg/cryptox"
	"github.com/sevenstents-cloud/sst-mvp/pkg/jwtx"
	"github.com/sevenstents-cloud/sst-mvp/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the SST platform service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db   store.Store
	keys *SigningKeys

	// Services
	authService         *service.AuthService
	twoFactorService    *service.TwoFactorService
	profileService      *service.ProfileService
	bootstrapService    *service.BootstrapService
	inviteService       *service.InviteService
	companyService      *service.CompanyService
	employeeService     *service.EmployeeService
	examService         *service.ExamService
	riskService         *service.RiskService
	documentService     *service.DocumentService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "sst-platform",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keys, err := InitSigningKeys(app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.keys = keys

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("sst platform starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down sst platform...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("sst platform stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	accessTTL := app.cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = jwtx.DefaultAccessTokenTTL
	}
	refreshTTL := app.cfg.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = jwtx.DefaultRefreshTokenTTL
	}
	challengeTTL := app.cfg.ChallengeTTL
	if challengeTTL <= 0 {
		challengeTTL = service.DefaultChallengeTTL
	}

	app.authService = &service.AuthService{
		Store:        app.db,
		Signer:       app.keys.Signer,
		Issuer:       app.cfg.Issuer,
		AccessTTL:    accessTTL,
		RefreshTTL:   refreshTTL,
		ChallengeTTL: challengeTTL,
	}

	app.twoFactorService = &service.TwoFactorService{
		Store:  app.db,
		Issuer: app.cfg.Issuer,
	}
	app.profileService = &service.ProfileService{Store: app.db}
	app.bootstrapService = &service.BootstrapService{
		Store: app.db,
		Token: app.cfg.BootstrapToken,
	}
	app.inviteService = &service.InviteService{Store: app.db}
	app.companyService = &service.CompanyService{Store: app.db}
	app.employeeService = &service.EmployeeService{Store: app.db}
	app.examService = &service.ExamService{Store: app.db}
	app.riskService = &service.RiskService{Store: app.db}
	app.documentService = &service.DocumentService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys.KeySet,
		jwtx.NewVerifier(app.keys.KeySet, app.cfg.Issuer),
		app.cfg.Issuer,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.TwoFactorService = app.twoFactorService
	router.ProfileService = app.profileService
	router.BootstrapService = app.bootstrapService
	router.InviteService = app.inviteService
	router.CompanyService = app.companyService
	router.EmployeeService = app.employeeService
	router.ExamService = app.examService
	router.RiskService = app.riskService
	router.DocumentService = app.documentService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
