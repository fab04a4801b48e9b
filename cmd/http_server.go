package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/employee-directory/internal/employee"
	"github.com/frahmantamala/employee-directory/internal/media"
	"github.com/frahmantamala/employee-directory/internal/skill"
	"github.com/frahmantamala/employee-directory/internal/transport"
	"github.com/frahmantamala/employee-directory/internal/transport/middleware"
	"github.com/frahmantamala/employee-directory/internal/transport/rest"
	"github.com/frahmantamala/employee-directory/internal/workstation"
	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	App      *application
	Router   *chi.Mux
	Releaser *media.Releaser
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	lg := deps.App.Logger
	cfg := deps.App.Config.Server

	addr := fmt.Sprintf(":%d", cfg.Port)
	lg.Info("starting http server", "address", addr, "database", deps.App.Config.Database.Driver)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		lg.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			lg.Error("server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("server failed to start", "error", err)
			deps.shutdown()
			os.Exit(1)
		}
	}

	deps.shutdown()
	lg.Info("server stopped")
}

// shutdown lets queued file releases finish before the database goes away.
func (d *Dependencies) shutdown() {
	d.App.Bus.Wait()
	d.Releaser.Shutdown()
	d.App.Close()
}

func initializeDependencies() (*Dependencies, error) {
	app, err := newApplication()
	if err != nil {
		return nil, err
	}
	cfg := app.Config

	releaser := media.NewReleaser(app.Store, media.ReleaserConfig{
		MaxWorkers:   cfg.Media.ReleaseWorkers,
		JobQueueSize: cfg.Media.ReleaseQueueSize,
	}, app.Logger)
	releaser.Subscribe(app.Bus)

	validator, err := middleware.NewOpenAPIValidator(cfg.Server.OpenAPIPath, rest.APIPrefix, app.Logger)
	if err != nil {
		releaser.Shutdown()
		app.Close()
		return nil, fmt.Errorf("failed to load api contract: %w", err)
	}

	sqlDB, err := app.DB.Gorm.DB()
	if err != nil {
		releaser.Shutdown()
		app.Close()
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}

	base := transport.NewBaseHandler(app.Logger)
	base.RequestTimeout = cfg.Server.RequestTimeout

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.Routes{
		Health:      rest.NewHealthHandler(sqlDB, cfg.Database.Driver),
		Employee:    employee.NewHandler(base, app.Reader, app.Employees),
		Workstation: workstation.NewHandler(base, app.Workstations),
		Skill:       skill.NewHandler(base, app.Skills),
		Validator:   validator,
		OpenAPIPath: cfg.Server.OpenAPIPath,
		MediaRoot:   cfg.Media.Root,
		MediaPrefix: cfg.Media.BaseURL,
	}, app.Logger)

	return &Dependencies{
		App:      app,
		Router:   router,
		Releaser: releaser,
	}, nil
}
