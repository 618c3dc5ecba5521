// Package server wires the KONGENGA API together: database, migrations,
// catalog cache, services, the statistics scheduler and the HTTP server,
// all stopped together on SIGINT, SIGTERM or SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/kongenga/kongenga/internal/logging"
	"github.com/kongenga/kongenga/internal/server/cache"
	"github.com/kongenga/kongenga/internal/server/config"
	"github.com/kongenga/kongenga/internal/server/httpapi"
	"github.com/kongenga/kongenga/internal/server/repositories/repomanager"
	"github.com/kongenga/kongenga/internal/server/scheduler"
	"github.com/kongenga/kongenga/internal/server/services"
	"github.com/redis/go-redis/v9"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	rdb       *redis.Client
	services  httpapi.Services
	users     *services.UserService
	scheduler *scheduler.Scheduler
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}

	var cc cache.Cache = cache.Noop{}
	if c.RedisURL != "" {
		rdb, err := cache.NewRedisClient(ctx, c.RedisURL)
		if err != nil {
			// the catalog still works uncached
			logger.Warn(ctx, "redis unavailable, catalog cache disabled", "error", err)
		} else {
			app.rdb = rdb
			cc = cache.NewRedisCache(rdb)
		}
	}

	us := services.NewUserService(db, m, c, logger)
	as := services.NewAdminService(db, m, logger)

	app.users = us
	app.services = httpapi.Services{
		Users:   us,
		Catalog: services.NewCatalogService(db, m, cc, c.CacheTTL, logger),
		Admin:   as,
		Avatars: services.NewAvatarService(db, m, c),
	}
	app.scheduler = scheduler.New(as, c.StatsRefreshSchedule, logger)

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.services, app.config.SecretKey)

	app.logger.Info(ctx, "http server listening", "address", app.config.EndpointAddrHTTP)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startScheduler(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.scheduler.Start(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}
	<-ctx.Done()
	app.scheduler.Stop()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if app.config.SeedAdmin() {
		if err := app.users.EnsureAdmin(ctx, app.config.AdminName, app.config.AdminEmail, app.config.AdminPassword); err != nil {
			app.logger.Error(ctx, "admin seed failed", "error", err)
		}
	}

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startScheduler(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close(ctx)
	app.logger.Info(ctx, "App stopped")
}

func (app *App) close(ctx context.Context) {
	if app.rdb != nil {
		if err := app.rdb.Close(); err != nil {
			app.logger.Warn(ctx, "redis close", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close", "error", err)
	}
}
