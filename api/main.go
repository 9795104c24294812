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

	"github.com/jackc/pgx/v5"
	"github.com/rogerio-castellano/products-api/internal/config"
	"github.com/rogerio-castellano/products-api/internal/db"
	"github.com/rogerio-castellano/products-api/internal/http/handlers"
	rl "github.com/rogerio-castellano/products-api/internal/http/rate_limiter"
	"github.com/rogerio-castellano/products-api/internal/http/router"
	"github.com/rogerio-castellano/products-api/internal/logger"
	"github.com/rogerio-castellano/products-api/internal/repo"
)

// @title Products API
// @version 1.0
// @description CRUD service for the product resource over a relational, document or key-value store.
// @host localhost:4002
// @BasePath /
func main() {
	os.Exit(run())
}

// run serves until a shutdown signal or a listener failure and returns the
// process exit code once the server and store have been torn down.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		return 1
	}

	log := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat, cfg.ServiceName)
	log.Info("service_starting", "backend", cfg.StoreBackend, "port", cfg.Port)

	products, closeStore, err := openProductRepo(cfg)
	if err != nil {
		log.Error("store_connect_failed", "backend", cfg.StoreBackend, "error", err)
		return 1
	}
	defer closeStore()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := router.Options{Logger: log, CORSAllowedOrigins: cfg.CORSAllowedOrigins}
	if cfg.RateLimitRPS > 0 {
		opts.Limiter = rl.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go opts.Limiter.StartVisitorCleanupLoop(ctx, time.Minute, 5*time.Minute)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.NewRouter(handlers.NewServer(products, log, cfg.Secrets()...), opts),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("http_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigc)

	exitCode := 0
	select {
	case s := <-sigc:
		log.Info("shutdown_signal", "signal", s.String())
	case err := <-errc:
		log.Error("http_server_error", "error", err)
		exitCode = 1
	}

	ctxSrv, cancelSrv := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelSrv()
	if err := srv.Shutdown(ctxSrv); err != nil {
		log.Error("http_shutdown_error", "error", err)
	}
	log.Info("service_stopped")
	return exitCode
}

// openProductRepo connects the configured backend and returns the repository
// along with a function releasing its connection.
func openProductRepo(cfg config.Config) (repo.ProductRepository, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		database, err := db.ConnectPostgres(cfg.DatabaseURL, cfg.ConnectTimeout)
		if err != nil {
			return nil, nil, err
		}
		table := pgx.Identifier{cfg.PostgresSchema, cfg.PostgresTable}
		return repo.NewPostgresProductRepository(database, table, cfg.StoreTimeout), func() { database.Close() }, nil

	case config.BackendMongo:
		client, err := db.ConnectMongo(cfg.MongoURL, cfg.MongoTLS, cfg.ConnectTimeout)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
			defer cancel()
			_ = client.Disconnect(ctx)
		}
		return repo.NewMongoProductRepository(client.Database(cfg.MongoDatabase), cfg.StoreTimeout), closeFn, nil

	case config.BackendRedis:
		rdb, err := db.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.ConnectTimeout)
		if err != nil {
			return nil, nil, err
		}
		return repo.NewRedisProductRepository(rdb, cfg.RedisPrefix, cfg.StoreTimeout), func() { rdb.Close() }, nil

	case config.BackendMemory:
		return repo.NewInMemoryProductRepository(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
