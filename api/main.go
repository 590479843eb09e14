package main

import (
	"context"
	"crypto/rand"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/keebstore/storefront/internal/catalog"
	"github.com/keebstore/storefront/internal/config"
	"github.com/keebstore/storefront/internal/db"
	"github.com/keebstore/storefront/internal/http/handlers"
	rl "github.com/keebstore/storefront/internal/http/rate_limiter"
	"github.com/keebstore/storefront/internal/http/router"
	"github.com/keebstore/storefront/internal/observability"
	"github.com/keebstore/storefront/internal/order"
	"github.com/keebstore/storefront/internal/redissvc"
	"github.com/keebstore/storefront/internal/repo"
	"github.com/keebstore/storefront/internal/session"
)

// @title KeebStore Storefront API
// @version 1.0
// @description JSON API of the keyboard-parts storefront: catalog queries and order placement.
// @host localhost:8080
// @BasePath /
func main() {
	os.Exit(realMain(os.Args[1:]))
}

// realMain returns the process exit code so deferred cleanup runs before exit.
func realMain(args []string) int {
	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		return 1
	}

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Could not build logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	products, orders, closeDB, err := buildRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	formatter := catalog.NewFormatter(cfg.Catalog.CurrencySymbol, cfg.Catalog.Locale)
	store := catalog.NewStore(products, cfg.Catalog.Categories, logger)
	// A failed load is rendered as a placeholder, not a startup error.
	_ = store.Load(ctx)
	handlers.SetCatalog(catalog.New(store, formatter, cfg.Catalog.FeaturedLimit))

	switch cfg.Order.Channel {
	case config.ChannelDeepLink:
		handlers.SetOrderChannel(order.NewDeepLinkChannel(cfg.DeepLink.Base, cfg.DeepLink.MaxURLLength, formatter))
	default:
		handlers.SetOrderChannel(order.NewTableChannel(orders))
	}
	handlers.SetCustomBuildLink(order.Link(cfg.DeepLink.Base, cfg.DeepLink.CustomBuildMessage))

	sessions, closeSessions, err := buildSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSessions()
	handlers.SetSessionStore(sessions)

	secret := []byte(cfg.Session.Secret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return fmt.Errorf("generate session secret: %w", err)
		}
		logger.Warn("session.secret not set; sessions will not survive a restart")
	}

	rl.Configure(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go rl.StartVisitorCleanupLoop(ctx, time.Minute)

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: router.NewRouter(router.Options{
			Logger:        logger,
			SessionSecret: secret,
			SessionTTL:    cfg.Session.TTL,
			RateLimit:     true,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("✅ Server running",
			zap.String("addr", cfg.Server.Addr),
			zap.String("catalog_source", cfg.Catalog.Source),
			zap.String("order_channel", cfg.Order.Channel),
			zap.String("session_store", cfg.Session.Store),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func buildRepositories(ctx context.Context, cfg *config.Config) (repo.ProductRepository, repo.OrderRepository, func(), error) {
	noop := func() {}

	var orders repo.OrderRepository
	if cfg.Remote.URL != "" {
		orders = repo.NewRestOrderRepository(repo.NewRestTable(cfg.Remote.URL, cfg.Remote.Key, cfg.Remote.Timeout))
	}

	switch cfg.Catalog.Source {
	case config.SourcePostgres:
		database, err := db.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, noop, fmt.Errorf("could not connect to database: %w", err)
		}
		closeDB := func() { database.Close() }
		return repo.NewPostgresProductRepository(database, cfg.Database.Timeout),
			repo.NewPostgresOrderRepository(database, cfg.Database.Timeout),
			closeDB, nil
	case config.SourceStatic:
		products, err := repo.NewStaticProductRepository()
		if err != nil {
			return nil, nil, noop, err
		}
		return products, orders, noop, nil
	default:
		table := repo.NewRestTable(cfg.Remote.URL, cfg.Remote.Key, cfg.Remote.Timeout)
		return repo.NewRestProductRepository(table), repo.NewRestOrderRepository(table), noop, nil
	}
}

func buildSessionStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	if cfg.Session.Store != config.StoreRedis {
		mem := session.NewMemoryStore(cfg.Session.TTL)
		go mem.StartCleanupLoop(ctx, time.Minute)
		return mem, func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	svc := redissvc.NewRedisService(rdb, cfg.Session.TTL)
	if err := svc.Ping(ctx); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("could not connect to Redis: %w", err)
	}
	return svc, func() { rdb.Close() }, nil
}
