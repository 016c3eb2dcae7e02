package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/agencydesk/config"
	"github.com/Domenick1991/agencydesk/internal/bootstrap"
	"github.com/Domenick1991/agencydesk/internal/kafka"
	"github.com/Domenick1991/agencydesk/internal/storage"
	"github.com/Domenick1991/agencydesk/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var backend storage.Storage
	switch cfg.Storage.Backend {
	case "redis":
		redisStorage := storage.NewRedis(cfg.Redis)
		defer redisStorage.Close()
		backend = redisStorage
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			logger.Fatal("connect postgres", zap.Error(err))
		}
		defer pool.Close()
		pgStorage := storage.NewPostgres(pool)
		if err := pgStorage.EnsureSchema(ctx); err != nil {
			logger.Fatal("ensure schema", zap.Error(err))
		}
		backend = pgStorage
	default:
		backend = storage.NewMemory()
	}

	var bookingOpts []store.BookingStoreOption
	var inventoryOpts []store.InventoryStoreOption
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		bookingOpts = append(bookingOpts, store.WithBookingProducer(producer, cfg.Kafka.EventsTopic))
		inventoryOpts = append(inventoryOpts, store.WithInventoryProducer(producer, cfg.Kafka.EventsTopic))
	}
	if cfg.Seed.SampleInventory {
		inventoryOpts = append(inventoryOpts, store.WithSampleData())
	}

	bookingStore := store.NewBookingStore(backend, bookingOpts...)
	inventoryStore := store.NewInventoryStore(backend, inventoryOpts...)
	settingsStore := store.NewSettingsStore(backend)

	if err := bootstrap.Run(ctx, cfg, logger, bookingStore, inventoryStore, settingsStore); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
