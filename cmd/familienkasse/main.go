//go:generate go run github.com/swaggo/swag/cmd/swag@v1.16.3 init -d ../../ -g cmd/familienkasse/main.go -o ../docs --parseInternal

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	portsrepo "github.com/SscSPs/familienkasse/internal/core/ports/repositories"
	"github.com/SscSPs/familienkasse/internal/core/services"
	"github.com/SscSPs/familienkasse/internal/handlers"
	"github.com/SscSPs/familienkasse/internal/middleware"
	"github.com/SscSPs/familienkasse/internal/platform/config"
	"github.com/SscSPs/familienkasse/internal/platform/database"
	"github.com/SscSPs/familienkasse/internal/platform/logging"
	"github.com/SscSPs/familienkasse/internal/repositories/database/pgsql"
	"github.com/SscSPs/familienkasse/internal/scheduler"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

// @title Familienkasse API
// @version 1.0
// @description Allowance and expense accounts for children, managed by their parents.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	runAllowance := flag.Bool("run-allowance", false, "run the weekly allowance job once and exit")
	dryRun := flag.Bool("dry-run", false, "with -run-allowance: report what would be deposited without writing")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := logging.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if err := run(cfg, logger, *runAllowance, *dryRun); err != nil {
		logger.Error("Exiting", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, runAllowance, dryRun bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return fmt.Errorf("failed to initialize database pool: %w", err)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		return err
	}

	var legacySource portsrepo.LegacySourceOpener
	if cfg.LegacyDatabaseURL != "" {
		legacySource = pgsql.NewLegacySourceOpener(cfg.LegacyDatabaseURL)
	}
	container := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), legacySource)

	if runAllowance {
		result := container.Allowance.ProcessWeeklyAllowances(ctx, dryRun)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
		if !result.Success {
			return errors.New("weekly allowance finished with errors")
		}
		return nil
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.CORS(cfg.CORSAllowedOrigins))
	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}
	if err := handlers.RegisterRoutes(r, cfg, container); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	var sched *scheduler.AllowanceScheduler
	if cfg.AllowanceCron != "" {
		sched, err = scheduler.NewAllowanceScheduler(cfg.AllowanceCron, container.Allowance, logger)
		if err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if sched != nil {
		sched.Start()
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return sched.Stop(shutdownCtx)
		})
	}

	return g.Wait()
}
