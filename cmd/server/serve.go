package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/metrics"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/router"
	"github.com/iliyamo/fyyur/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	cfg, err := config.Load() // Load environment config
	if err != nil {
		return err
	}
	log := newLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	db, err := database.Open(cfg.DB, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	if cfg.DB.AutoMigrate {
		n, err := database.Migrate(ctx, db, log)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("schema up to date", "applied", n)
	}

	var pub service.Publisher = queue.NopPublisher{}
	if cfg.Broker.URL != "" {
		p, err := queue.NewPublisher(cfg.Broker.URL, log)
		if err != nil {
			// events are best effort; the service runs without them
			log.Warn("event publisher unavailable", "err", err)
		} else {
			defer p.Close()
			pub = p
		}
	}

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	} else {
		log.Warn("redis unavailable; rate limiting disabled")
	}
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log)

	venues := repository.NewVenueRepo(db)
	artists := repository.NewArtistRepo(db)
	shows := repository.NewShowRepo(db)

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(metrics.Middleware())
	e.Use(echomw.ContextTimeout(cfg.RequestTimeout))

	router.RegisterRoutes(e, sqlDB)
	router.RegisterVenues(e, handler.NewVenueHandler(service.NewVenueService(venues, shows, pub, log), log), limit)
	router.RegisterArtists(e, handler.NewArtistHandler(service.NewArtistService(artists, shows, pub, log), log), limit)
	router.RegisterShows(e, handler.NewShowHandler(service.NewShowService(shows, pub, log), log), limit)

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr, "env", cfg.Env, "driver", cfg.DB.Driver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
