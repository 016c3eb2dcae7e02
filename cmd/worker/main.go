package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/agencydesk/config"
	"github.com/Domenick1991/agencydesk/internal/domain"
	"github.com/Domenick1991/agencydesk/internal/email"
	"github.com/Domenick1991/agencydesk/internal/kafka"
	"github.com/Domenick1991/agencydesk/internal/notifier"
	"go.uber.org/zap"
)

// The worker runs the stock-notification simulator, forwards its events to
// the notifications topic and consumes that topic to send alert emails.
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	interval := time.Duration(cfg.Notifier.IntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = 3 * time.Minute
	}
	display := time.Duration(cfg.Notifier.DisplaySeconds) * time.Second
	if display <= 0 {
		display = 30 * time.Second
	}

	simulator := notifier.NewSimulator(interval, display)
	logger.Info("simulator seeded", zap.Int("destinations", len(simulator.Countries())))

	unsubscribe, err := simulator.Subscribe(func(n domain.StockNotification) {
		alert := kafka.StockAlert{
			Type:             string(n.Type),
			Country:          n.Country,
			Destination:      n.Destination,
			AvailableTickets: n.AvailableTickets,
			TotalTickets:     n.TotalTickets,
			OccurredAt:       n.At,
		}
		if err := producer.PublishWithRetry(ctx, cfg.Kafka.NotificationsTopic, n.Country, alert, 3); err != nil {
			logger.Warn("forward notification", zap.Error(err))
		}
	})
	if err != nil {
		logger.Fatal("subscribe simulator", zap.Error(err))
	}
	defer unsubscribe()

	consumer := kafka.NewAlertConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, alert kafka.StockAlert) error {
			if alert.Type != string(domain.StockNotificationLow) {
				return nil
			}
			return sender.Send(ctx, alert)
		}); err != nil {
			logger.Info("consumer stopped", zap.Error(err))
		}
	}()

	simulator.Start()
	defer simulator.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	logger.Info("received signal, shutting down", zap.String("signal", s.String()))
}
