package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cuongbtq/jobboard/internal/api/handler"
	"github.com/cuongbtq/jobboard/internal/api/router"
	"github.com/cuongbtq/jobboard/internal/catalog"
	"github.com/cuongbtq/jobboard/internal/config"
	"github.com/cuongbtq/jobboard/internal/query"
	"github.com/cuongbtq/jobboard/internal/savedset"
	"github.com/cuongbtq/jobboard/internal/savedset/broadcast"
	"github.com/cuongbtq/jobboard/internal/savedset/storage"
	"github.com/cuongbtq/jobboard/shared/logger"
	"github.com/cuongbtq/jobboard/shared/postgresql"
	"github.com/cuongbtq/jobboard/shared/rabbitmq"
	sharedredis "github.com/cuongbtq/jobboard/shared/redis"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or flags")
	}

	defaultConfigPath := os.Getenv("API_SERVICE_CONFIG_PATH")
	if defaultConfigPath == "" {
		defaultConfigPath = "configs/api-service/config.yaml"
	}
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.ValidateAPIConfig(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	appLogger, err := initLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	appLogger.Info("Starting API service",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.App.Environment),
	)

	jobs, err := initCatalog(&cfg.Dataset, appLogger.Component("catalog"))
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	appLogger.Info("Dataset loaded",
		slog.Int("jobs", jobs.Len()),
		slog.Int("rejected", len(jobs.Rejected())),
	)

	// Clients opened below are closed in reverse order on exit
	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				appLogger.Warn("Failed to close resource", slog.Any("error", err))
			}
		}
	}()

	checks := make(map[string]handler.HealthCheckFunc)

	var redisClient *sharedredis.Client
	if cfg.SavedSet.Backend == config.BackendRedis || cfg.Broadcast.Backend == config.BroadcastRedis {
		redisClient, err = initRedis(&cfg.Redis, appLogger.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		closers = append(closers, redisClient.Close)
		checks["redis"] = redisClient.HealthCheck
	}

	repo, closeRepo, err := initRepository(cfg, redisClient, checks, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize saved set storage: %w", err)
	}
	if closeRepo != nil {
		closers = append(closers, closeRepo)
	}

	broadcaster, err := initBroadcaster(cfg, redisClient, checks, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize broadcaster: %w", err)
	}
	if broadcaster != nil {
		closers = append(closers, broadcaster.Close)
	}

	storeLogger := appLogger.Component("savedset")
	store := savedset.NewStore(&savedset.StoreConfig{
		Repository:  repo,
		Key:         cfg.SavedSet.Key,
		Broadcaster: broadcaster,
		Origin:      uuid.NewString(),
		Logger:      storeLogger,
	})

	appLogger.Info("Saved set ready",
		slog.String("backend", cfg.SavedSet.Backend),
		slog.String("broadcast", cfg.Broadcast.Backend),
		slog.String("key", store.Key()),
		slog.String("origin", store.Origin()),
	)

	r := initRouter(cfg, appLogger.Logger, jobs, store, checks)

	// No WriteTimeout: the event stream stays open for the life of the client
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     r,
		ReadTimeout: cfg.Server.ReadTimeout,
		IdleTimeout: cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info("Starting HTTP server",
			slog.String("address", addr),
			slog.Duration("read_timeout", cfg.Server.ReadTimeout),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	if broadcaster != nil {
		relay := savedset.NewRelay(broadcaster, store.Hub(), store.Key(), store.Origin(), storeLogger)
		g.Go(func() error {
			return relay.Serve(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg.Server.ShutdownTimeout))
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Server forced to shutdown", slog.Any("error", err))
			return err
		}
		return nil
	})

	appLogger.Info("API service is running", slog.String("address", addr))

	if err := g.Wait(); err != nil {
		appLogger.Error("API service stopped with error", slog.Any("error", err))
		return err
	}

	appLogger.Info("Server shutdown complete")
	return nil
}

func shutdownTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 10 * time.Second
	}
	return d
}

// initLogger initializes and configures the application logger
func initLogger(cfg *config.LoggingConfig) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:        cfg.Level,
		Format:       cfg.Format,
		Output:       cfg.Output,
		EnableSource: cfg.EnableSource,
		TimeFormat:   cfg.TimeFormat,
	})
}

// initCatalog loads the dataset from disk, or the embedded one when no path is set
func initCatalog(cfg *config.DatasetConfig, logger *slog.Logger) (*catalog.Catalog, error) {
	opts := catalog.Options{Strict: cfg.Strict, Logger: logger}
	if cfg.Path == "" {
		return catalog.LoadDefault(opts)
	}
	return catalog.LoadFile(cfg.Path, opts)
}

// initRedis initializes the shared Redis client
func initRedis(cfg *config.RedisConfig, logger *slog.Logger) (*sharedredis.Client, error) {
	return sharedredis.NewClient(&sharedredis.Config{
		Host:         cfg.Host,
		Port:         cfg.Port,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, logger)
}

// initPostgreSQL initializes the PostgreSQL database client
func initPostgreSQL(cfg *config.DatabaseConfig, logger *slog.Logger) (*postgresql.Client, error) {
	return postgresql.NewClient(&postgresql.Config{
		Host:            cfg.Host,
		Port:            cfg.Port,
		User:            cfg.User,
		Password:        cfg.Password,
		Database:        cfg.Database,
		SSLMode:         cfg.SSLMode,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
	}, logger)
}

// initRepository selects the saved set storage backend. The returned close
// func is nil when the backend holds no connection of its own.
func initRepository(cfg *config.Config, redisClient *sharedredis.Client, checks map[string]handler.HealthCheckFunc, logger *slog.Logger) (savedset.Repository, func() error, error) {
	key := savedSetKey(cfg)

	switch cfg.SavedSet.Backend {
	case config.BackendFile:
		return savedset.NewFileRepository(cfg.SavedSet.FileDir, key), nil, nil

	case config.BackendPostgres:
		dbClient, err := initPostgreSQL(&cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		if cfg.SavedSet.Migrate {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := dbClient.EnsureSchema(ctx, storage.Migrations...); err != nil {
				dbClient.Close()
				return nil, nil, err
			}
		}
		checks["postgres"] = dbClient.HealthCheck
		return storage.NewPostgres(dbClient.DB(), key), dbClient.Close, nil

	case config.BackendRedis:
		return storage.NewRedis(redisClient.GetClient(), key), nil, nil

	default:
		return savedset.NewMemoryRepository(), nil, nil
	}
}

func savedSetKey(cfg *config.Config) string {
	if cfg.SavedSet.Key == "" {
		return savedset.DefaultKey
	}
	return cfg.SavedSet.Key
}

// initBroadcaster returns nil when no cross-process broadcast is configured
func initBroadcaster(cfg *config.Config, redisClient *sharedredis.Client, checks map[string]handler.HealthCheckFunc, logger *slog.Logger) (savedset.Broadcaster, error) {
	switch cfg.Broadcast.Backend {
	case config.BroadcastRedis:
		return broadcast.NewRedis(redisClient.GetClient(), cfg.Broadcast.Channel, logger), nil

	case config.BroadcastRabbitMQ:
		rabbitClient, err := initRabbitMQ(&cfg.RabbitMQ, logger)
		if err != nil {
			return nil, err
		}
		checks["rabbitmq"] = func(context.Context) error {
			if !rabbitClient.IsConnected() {
				return rabbitmq.ErrNotConnected
			}
			return nil
		}
		return broadcast.NewRabbitMQ(rabbitClient, "api-"+uuid.NewString(), logger), nil

	case config.BroadcastFile:
		key := savedSetKey(cfg)
		path := savedset.NewFileRepository(cfg.SavedSet.FileDir, key).Path()
		return broadcast.NewFile(path, key, logger), nil

	default:
		return nil, nil
	}
}

// initRabbitMQ connects to the fanout exchange with a private, server-named queue
func initRabbitMQ(cfg *config.RabbitMQConfig, logger *slog.Logger) (*rabbitmq.Client, error) {
	return rabbitmq.NewClient(&rabbitmq.Config{
		Host:               cfg.Host,
		Port:               cfg.Port,
		User:               cfg.User,
		Password:           cfg.Password,
		VHost:              cfg.VHost,
		ExchangeName:       cfg.Exchange.Name,
		ExchangeType:       cfg.Exchange.Type,
		ExchangeDurable:    cfg.Exchange.Durable,
		ExchangeAutoDelete: false,
		QueueName:          "",
		QueueDurable:       false,
		QueueAutoDelete:    true,
		QueueExclusive:     true,
		PrefetchCount:      16,
		RetryAttempts:      cfg.Connection.RetryAttempts,
		RetryInterval:      cfg.Connection.RetryInterval,
		Heartbeat:          cfg.Connection.Heartbeat,
		PublishRetries:     cfg.Publish.RetryAttempts,
		PublishRetryDelay:  cfg.Publish.RetryInterval,
		PublishBackoffMult: cfg.Publish.BackoffMultiplier,
	}, logger)
}

// initRouter initializes the Gin router with all routes and middleware
func initRouter(cfg *config.Config, logger *slog.Logger, jobs *catalog.Catalog, store *savedset.Store, checks map[string]handler.HealthCheckFunc) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	deps := &handler.Dependencies{
		Logger:       logger,
		Catalog:      jobs,
		Engine:       query.NewEngine(cfg.Query.Options()),
		Store:        store,
		Now:          time.Now,
		ServiceName:  cfg.App.Name,
		HealthChecks: checks,
	}

	return router.SetupRouter(deps, cfg.Server.AllowedOrigins)
}
