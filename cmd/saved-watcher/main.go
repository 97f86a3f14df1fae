package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cuongbtq/jobboard/internal/config"
	"github.com/cuongbtq/jobboard/internal/savedset"
	"github.com/cuongbtq/jobboard/internal/savedset/broadcast"
	"github.com/cuongbtq/jobboard/internal/savedset/storage"
	"github.com/cuongbtq/jobboard/shared/logger"
	"github.com/cuongbtq/jobboard/shared/postgresql"
	"github.com/cuongbtq/jobboard/shared/rabbitmq"
	sharedredis "github.com/cuongbtq/jobboard/shared/redis"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// The watcher is a second view of the saved set living in its own process.
// It re-reads the persisted set whenever another process reports a change.
func run() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or flags")
	}

	defaultConfigPath := os.Getenv("SAVED_WATCHER_CONFIG_PATH")
	if defaultConfigPath == "" {
		defaultConfigPath = "configs/saved-watcher/config.yaml"
	}
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.ValidateWatcherConfig(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	appLogger, err := logger.New(&logger.Config{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		Output:       cfg.Logging.Output,
		EnableSource: cfg.Logging.EnableSource,
		TimeFormat:   cfg.Logging.TimeFormat,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	instanceID := uuid.NewString()
	appLogger.Info("Starting saved set watcher",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("instance", instanceID),
	)

	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				appLogger.Warn("Failed to close resource", slog.Any("error", err))
			}
		}
	}()

	var redisClient *sharedredis.Client
	if cfg.SavedSet.Backend == config.BackendRedis || cfg.Broadcast.Backend == config.BroadcastRedis {
		redisClient, err = sharedredis.NewClient(&sharedredis.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		}, appLogger.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		closers = append(closers, redisClient.Close)
	}

	key := cfg.SavedSet.Key
	if key == "" {
		key = savedset.DefaultKey
	}

	var repo savedset.Repository
	// validation rules out the memory backend here
	switch cfg.SavedSet.Backend {
	case config.BackendFile:
		repo = savedset.NewFileRepository(cfg.SavedSet.FileDir, key)
	case config.BackendPostgres:
		dbClient, err := postgresql.NewClient(&postgresql.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			Database:        cfg.Database.Database,
			SSLMode:         cfg.Database.SSLMode,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		}, appLogger.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		closers = append(closers, dbClient.Close)
		if cfg.SavedSet.Migrate {
			migrateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err := dbClient.EnsureSchema(migrateCtx, storage.Migrations...)
			cancel()
			if err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
		}
		repo = storage.NewPostgres(dbClient.DB(), key)
	case config.BackendRedis:
		repo = storage.NewRedis(redisClient.GetClient(), key)
	}

	var broadcaster savedset.Broadcaster
	switch cfg.Broadcast.Backend {
	case config.BroadcastRedis:
		broadcaster = broadcast.NewRedis(redisClient.GetClient(), cfg.Broadcast.Channel, appLogger.Logger)
	case config.BroadcastRabbitMQ:
		rabbitClient, err := rabbitmq.NewClient(&rabbitmq.Config{
			Host:               cfg.RabbitMQ.Host,
			Port:               cfg.RabbitMQ.Port,
			User:               cfg.RabbitMQ.User,
			Password:           cfg.RabbitMQ.Password,
			VHost:              cfg.RabbitMQ.VHost,
			ExchangeName:       cfg.RabbitMQ.Exchange.Name,
			ExchangeType:       cfg.RabbitMQ.Exchange.Type,
			ExchangeDurable:    cfg.RabbitMQ.Exchange.Durable,
			QueueAutoDelete:    true,
			QueueExclusive:     true,
			PrefetchCount:      16,
			RetryAttempts:      cfg.RabbitMQ.Connection.RetryAttempts,
			RetryInterval:      cfg.RabbitMQ.Connection.RetryInterval,
			Heartbeat:          cfg.RabbitMQ.Connection.Heartbeat,
			PublishRetries:     cfg.RabbitMQ.Publish.RetryAttempts,
			PublishRetryDelay:  cfg.RabbitMQ.Publish.RetryInterval,
			PublishBackoffMult: cfg.RabbitMQ.Publish.BackoffMultiplier,
		}, appLogger.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ: %w", err)
		}
		broadcaster = broadcast.NewRabbitMQ(rabbitClient, "watcher-"+instanceID, appLogger.Logger)
	case config.BroadcastFile:
		path := savedset.NewFileRepository(cfg.SavedSet.FileDir, key).Path()
		broadcaster = broadcast.NewFile(path, key, appLogger.Logger)
	}
	closers = append(closers, broadcaster.Close)

	storeLogger := appLogger.Component("savedset")
	// the watcher never mutates, so it needs no broadcaster on the store itself
	store := savedset.NewStore(&savedset.StoreConfig{
		Repository: repo,
		Key:        key,
		Origin:     instanceID,
		Logger:     storeLogger,
	})
	relay := savedset.NewRelay(broadcaster, store.Hub(), key, instanceID, storeLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return relay.Serve(gctx)
	})

	g.Go(func() error {
		report := func(reason string) {
			loadCtx, cancel := context.WithTimeout(gctx, 5*time.Second)
			defer cancel()
			ids := store.Load(loadCtx)
			appLogger.Info("Saved set",
				slog.String("reason", reason),
				slog.Int("count", len(ids)),
				slog.Any("ids", ids),
			)
		}

		report("startup")
		store.Hub().Watch(gctx, func(e savedset.Event) {
			report("changed by " + e.Origin)
		})
		return nil
	})

	appLogger.Info("Saved set watcher started",
		slog.String("backend", cfg.SavedSet.Backend),
		slog.String("broadcast", cfg.Broadcast.Backend),
	)

	if err := g.Wait(); err != nil {
		appLogger.Error("Watcher error", slog.Any("error", err))
		return err
	}

	appLogger.Info("Saved set watcher shutdown complete")
	return nil
}
