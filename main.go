// api/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"broadcastdash/api/config"
	"broadcastdash/api/database"
	"broadcastdash/api/dataset"
	"broadcastdash/api/fetch"
	"broadcastdash/api/handlers"
	"broadcastdash/api/middleware"
	"broadcastdash/api/store"
)

func main() {
	// Load .env file at the very start
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	fx.New(
		fx.StartTimeout(90*time.Second),
		fx.Provide(
			config.Load,
			newLogger,
			newSource,
			newProvider,
			newFetchClient,
			newDashboardHandlers,
			newRouter,
		),
		fx.Invoke(startServer),
	).Run()
}

func newLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler
	if cfg.GinMode == gin.ReleaseMode {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// newSource opens the configured backing store. Database clients are closed
// when the app stops.
func newSource(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (dataset.Source, error) {
	switch cfg.DatasetSource {
	case config.SourceClickHouse:
		chClient, err := database.NewClickHouseDB(cfg.ClickHouse, logger)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.StopHook(chClient.Close))
		return store.NewClickHouseSource(chClient, cfg.SessionsTable, logger), nil
	case config.SourcePostgres:
		dbClient, err := database.NewPostgresDB(cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.StopHook(dbClient.Close))
		return store.NewPostgresSource(dbClient.DB, cfg.SessionsTable, logger), nil
	default:
		return dataset.NewFileSource(cfg.DatasetPath), nil
	}
}

func newProvider(source dataset.Source, logger *slog.Logger) *dataset.Provider {
	return dataset.NewProvider(source, logger)
}

func newFetchClient(cfg *config.Config, logger *slog.Logger) *fetch.Client {
	return fetch.NewClient(cfg.FetchURL, cfg.FetchTimeout, logger)
}

func newDashboardHandlers(p *dataset.Provider, f *fetch.Client, cfg *config.Config, logger *slog.Logger) *handlers.DashboardHandlers {
	return handlers.NewDashboardHandlers(p, f, cfg.Dashboard, logger)
}

func newRouter(cfg *config.Config, logger *slog.Logger, h *handlers.DashboardHandlers) *gin.Engine {
	gin.SetMode(cfg.GinMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware(cfg.FrontendOrigin))

	handlers.RegisterRoutes(r, h)
	return r
}

// startServer loads the dataset once, then serves. A failed initial load does
// not stop the server: every dashboard request reports it until a reload
// succeeds.
func startServer(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger, p *dataset.Provider, r *gin.Engine) {
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_ = p.Reload(ctx)

			go func() {
				logger.Info("dashboard server starting", "addr", "http://localhost:"+cfg.Port)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("dashboard server failed to start", "error", err)
					os.Exit(1)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("shutting down server")
			ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			logger.Info("server exiting")
			return nil
		},
	})
}
