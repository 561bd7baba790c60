package main

import (
	"context"
	"database/sql"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"monteuros/internal/backend"
	"monteuros/internal/handlers"
	"monteuros/internal/logger"
	"monteuros/internal/repository"
	"monteuros/internal/repository/db"
	"monteuros/internal/server"
	"monteuros/internal/service"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		return serve(cmd.Context(), newAppConfig(v))
	},
}

var checkConfigCmd = &cobra.Command{
	Use:   "check-config",
	Short: "Print the resolved configuration and backend mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		cfg := newAppConfig(v)
		out := cmd.OutOrStdout()

		mode := "mock"
		if cfg.Backend.Configured() {
			mode = "supabase"
		}
		fmt.Fprintf(out, "config:  %s\n", orNone(v.ConfigFileUsed()))
		fmt.Fprintf(out, "port:    %s\n", cfg.Port)
		fmt.Fprintf(out, "db:      %s\n", cfg.DBPath)
		fmt.Fprintf(out, "log:     %s %s\n", cfg.Log.Level, orNone(cfg.Log.File))
		fmt.Fprintf(out, "backend: %s %s\n", mode, orNone(cfg.Backend.URL))
		fmt.Fprintf(out, "scan:    latency=%s navigate=%s\n", cfg.Scan.MockLatency, cfg.Scan.NavigateDelay)
		return nil
	},
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func serve(ctx context.Context, cfg appConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// init logger
	log := logger.Init(cfg.Log)
	defer func() { _ = log.Sync() }()

	// open DB
	sqlDB, err := openDB(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("init sqlite: %w", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	client := backend.New(cfg.Backend,
		backend.WithSessionStore(repos.Local),
		backend.WithLogger(log),
	)
	if client.IsMock() {
		log.Infow("backend_not_configured", "mode", "mock")
	} else {
		log.Infow("backend_configured", "url", cfg.Backend.URL)
	}
	services := service.NewService(service.Deps{
		Repos:  repos,
		Client: client,
		Log:    log,
		Scan:   cfg.Scan,
	})
	defer services.Close()
	apiHandler := handlers.NewHandler(services, log)

	// stop on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// resolve the session in the background; gated routes answer 503 meanwhile
	go services.Session.Start(ctx)

	// start HTTP server
	srv := server.New(cfg.Server)
	errCh := runHTTPServer(srv, cfg.Port, apiHandler, log)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	return shutdown(srv, log)
}

// openDB initializes the SQLite database, defaulting the path when unset.
func openDB(path string, log *logger.Logger) (*sql.DB, error) {
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "monteuros.db")
		path = "monteuros.db"
	}
	return db.InitDB(path)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("http_listening", "port", port)
		errCh <- srv.Run(port, handler.InitRoutes())
	}()
	return errCh
}

// shutdown allows in-flight requests to complete.
func shutdown(srv *server.Server, log *logger.Logger) error {
	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
