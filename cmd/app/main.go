package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avelora/airdesk/api"
	"github.com/avelora/airdesk/config"
	"github.com/avelora/airdesk/internal/bootstrap"
	"github.com/avelora/airdesk/internal/cache"
	"github.com/avelora/airdesk/internal/gateway"
	"github.com/avelora/airdesk/internal/kafka"
	"github.com/avelora/airdesk/internal/repository"
	"github.com/avelora/airdesk/internal/service/booking"
	"github.com/avelora/airdesk/internal/service/flights"
	"github.com/avelora/airdesk/internal/service/passengers"
	"github.com/avelora/airdesk/internal/service/payment"
	"github.com/jackc/pgx/v5/pgxpool"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	paymentGateway := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.APIKey, cfg.Gateway.Timeout())

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)

	flightService := flights.NewFlightService(flightRepo, redisCache)
	bookingService := booking.NewBookingService(bookingRepo, flightRepo, redisCache, producer, cfg.Kafka.BookingEventsTopic)
	paymentService := payment.NewPaymentService(paymentRepo, bookingRepo, paymentGateway, producer, cfg.Kafka.BookingEventsTopic)
	passengerService := passengers.NewPassengerService(passengerRepo)

	router := bootstrap.NewRouter(cfg, bootstrap.Handlers{
		Flights:    api.NewFlightHandler(flightService),
		Bookings:   api.NewBookingHandler(bookingService),
		Payments:   api.NewPaymentHandler(paymentService),
		Passengers: api.NewPassengerHandler(passengerService),
	})

	if err := bootstrap.Run(ctx, cfg, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
