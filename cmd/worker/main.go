package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/avelora/airdesk/config"
	"github.com/avelora/airdesk/internal/email"
	"github.com/avelora/airdesk/internal/kafka"
)

// The worker turns booking and payment events into customer
// notifications. It runs separately from the API so a slow mail backend
// never holds up a booking.
func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	if err := consumer.Consume(ctx, emailSender.Send); err != nil && ctx.Err() == nil {
		log.Printf("consumer stopped: %v", err)
	}
}
