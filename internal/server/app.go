// Package server initializes and runs the wotracker server: it opens the
// database, wires repositories, services and transports, and handles
// graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/wotracker/internal/logging"
	"github.com/dmitrijs2005/wotracker/internal/server/auth"
	"github.com/dmitrijs2005/wotracker/internal/server/config"
	"github.com/dmitrijs2005/wotracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/wotracker/internal/server/rest"
	"github.com/dmitrijs2005/wotracker/internal/server/services"

	gs "github.com/dmitrijs2005/wotracker/internal/server/grpc"
)

const (
	healthProbeInterval   = 10 * time.Second
	revocationSweepPeriod = time.Hour
)

// openDB is a seam for tests.
var openDB = repomanager.Open

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	http    *rest.Server
	health  *gs.HealthServer
	janitor *services.RevocationJanitor
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if c.RunMigrations {
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrations error: %w", err)
		}
		logger.Info(ctx, "migrations applied")
	}

	var opts []auth.Option
	var janitor *services.RevocationJanitor
	if c.RevocationEnabled {
		opts = append(opts, auth.WithRevocationStore(rm.Revocations(db)))
		janitor = services.NewRevocationJanitor(db, rm, revocationSweepPeriod, logger)
	}
	sessions, err := auth.NewSessionManager([]byte(c.SecretKey), c.SessionMaxAge, opts...)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("session manager init error: %w", err)
	}

	authenticator := services.NewAuthenticator(db, rm, sessions, logger.With("module", "auth"))
	workOrders := services.NewWorkOrderService(db, rm, c, logger.With("module", "workorders"))

	return &App{
		config:  c,
		logger:  logger,
		db:      db,
		http:    rest.NewServer(c, authenticator, workOrders, logger.With("module", "http")),
		health:  gs.NewHealthServer(c.GRPCHealthAddr, logger, db, healthProbeInterval),
		janitor: janitor,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled, a signal arrives or a server fails,
// then waits for every component to stop and closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return app.http.Run(gctx) })
	g.Go(func() error { return app.health.Run(gctx) })

	if app.janitor != nil {
		g.Go(func() error {
			app.janitor.Run(gctx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		app.logger.Error(context.Background(), "server error", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close error", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
