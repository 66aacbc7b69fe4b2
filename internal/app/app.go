package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/wanderly-app/pollsvc/internal/config"
	"github.com/wanderly-app/pollsvc/internal/httpserver"
	"github.com/wanderly-app/pollsvc/internal/httpserver/deps"
	"github.com/wanderly-app/pollsvc/internal/kv"
	"github.com/wanderly-app/pollsvc/internal/logger"
	"github.com/wanderly-app/pollsvc/internal/poll"
	"github.com/wanderly-app/pollsvc/internal/redis"
	"github.com/wanderly-app/pollsvc/internal/scheduler"
	"github.com/wanderly-app/pollsvc/internal/sources/places"
	"github.com/wanderly-app/pollsvc/internal/store"
	"github.com/wanderly-app/pollsvc/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	reloader    *scheduler.CatalogReloader
	janitor     *scheduler.RetentionJanitor
}

func New() *App {
	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Connect to Redis early - fail fast if unavailable
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDialTimeout,
		ReadTimeout:    cfg.RedisReadTimeout,
		WriteTimeout:   cfg.RedisWriteTimeout,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
	}, log)
	if err != nil {
		log.Errorf("failed to connect to redis: %v", err)
		os.Exit(1)
	}

	kvStore := kv.NewRedisStore(redisClient)
	repo := store.NewFolderRepo(kvStore, log)
	ledger := store.NewVoteLedger(kvStore, log)
	engine := poll.NewEngine(repo, ledger, log)

	catalog := places.NewCatalog()
	reloadTrigger := make(chan struct{}, 1)
	reloader := scheduler.NewCatalogReloader(
		cfg.PlacesFile,
		catalog,
		log,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	janitor := scheduler.NewRetentionJanitor(
		repo,
		ledger,
		log,
		cfg.RetentionInterval,
		cfg.RetentionThreshold,
	)

	d := deps.Deps{
		Logger:        log,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		Engine:        engine,
		Catalog:       catalog,
		RedisClient:   redisClient,
		PublicURL:     cfg.PublicURL,
		ReloadTrigger: reloadTrigger,
	}

	server := httpserver.New(cfg, log, d)

	return &App{
		cfg:         cfg,
		logger:      log,
		server:      server,
		redisClient: redisClient,
		reloader:    reloader,
		janitor:     janitor,
	}
}

func (a *App) Run() error {
	a.logger.Infof("starting pollsvc %s (commit=%s, built=%s, go=%s) on %s",
		version.Version, version.Commit, version.BuildDate, version.GoVersion, a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the places catalog and start periodic refresh
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start catalog reloader: %w", err)
	}
	a.logger.Info("catalog reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	// Start retention janitor
	if err := a.janitor.Start(ctx); err != nil {
		return fmt.Errorf("failed to start retention janitor: %w", err)
	}
	a.logger.Info("retention janitor started",
		logger.Duration("interval", a.cfg.RetentionInterval),
		logger.Duration("threshold", a.cfg.RetentionThreshold))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reloader.Stop()
	a.janitor.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		}
	}

	a.logger.Info("pollsvc stopped cleanly")
	return nil
}
