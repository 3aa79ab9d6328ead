package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backend-fleetdesk/internal/config"
	"backend-fleetdesk/internal/db"
	"backend-fleetdesk/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 5 * time.Second

var mainDepsProvider = defaultDeps
var mainRunner = realMain

func main() {
	mainRunner(mainDepsProvider())
}

type mainDeps struct {
	loadConfig      func() config.Config
	connectPostgres func(config.Config) (*pgxpool.Pool, error)
	connectRedis    func(config.Config) *redis.Client
	notify          func(chan<- os.Signal, ...os.Signal)
	run             func(context.Context, config.Config, *pgxpool.Pool, *redis.Client, <-chan os.Signal, ListenFunc) error
}

func defaultDeps() mainDeps {
	return mainDeps{
		loadConfig:      config.Load,
		connectPostgres: db.ConnectPostgres,
		connectRedis:    db.ConnectRedis,
		notify:          signal.Notify,
		run:             Run,
	}
}

// realMain keeps serving without Postgres; the export audit is then off.
func realMain(deps mainDeps) {
	cfg := deps.loadConfig()

	pg, err := deps.connectPostgres(cfg)
	if err != nil {
		log.Printf("export audit disabled, postgres unavailable: %v", err)
		pg = nil
	}
	rdb := deps.connectRedis(cfg)
	log.Printf("fleetdesk api on %s (audit=%t redis=%t kafka brokers=%d)", cfg.ServerPort, pg != nil, rdb != nil, len(cfg.KafkaBrokers))

	signals := make(chan os.Signal, 1)
	deps.notify(signals, syscall.SIGINT, syscall.SIGTERM)

	if err := deps.run(context.Background(), cfg, pg, rdb, signals, nil); err != nil {
		log.Printf("fleetdesk api stopped: %v", err)
	}
}

type ListenFunc func(app *fiber.App, addr string) error

var defaultListen ListenFunc = func(app *fiber.App, addr string) error {
	return app.Listen(addr)
}

var shutdownFn = func(app *fiber.App, ctx context.Context) error {
	return app.ShutdownWithContext(ctx)
}

// Run serves the dashboard API and ticks the tracking simulator until a
// signal arrives, ctx is done or the listener fails.
func Run(ctx context.Context, cfg config.Config, pg *pgxpool.Pool, rdb *redis.Client, signals <-chan os.Signal, listen ListenFunc) error {
	if listen == nil {
		listen = defaultListen
	}

	srv := server.NewServer(cfg, pg, rdb)
	srv.Start(ctx)

	listenErr := make(chan error, 1)
	go func() { listenErr <- listen(srv.App, cfg.ServerPort) }()

	select {
	case sig := <-signals:
		log.Printf("received %v, shutting down", sig)
	case <-ctx.Done():
	case err := <-listenErr:
		if err != nil {
			closeBackends(srv, pg, rdb)
			return err
		}
	}
	return shutdown(srv, pg, rdb)
}

// shutdown drains Fiber first so no handler touches a closed backend.
func shutdown(srv *server.Server, pg *pgxpool.Pool, rdb *redis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := shutdownFn(srv.App, ctx)
	closeBackends(srv, pg, rdb)
	return err
}

func closeBackends(srv *server.Server, pg *pgxpool.Pool, rdb *redis.Client) {
	srv.Close()
	if pg != nil {
		pg.Close()
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Printf("redis close: %v", err)
		}
	}
}
