package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avelora/airdesk/config"
	"github.com/avelora/airdesk/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache keeps flight search results warm between inventory changes.
// Entries are best effort: a miss or a redis failure falls through to the
// database.
type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) GetFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, searchKey(filter)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, filter domain.FlightFilter, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, searchKey(filter), payload, c.flightsTTL).Err()
}

// InvalidateFlights drops every cached search result. Called after any
// inventory mutation so stale availability is never served longer than a
// write.
func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "cache:flights:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func searchKey(f domain.FlightFilter) string {
	date := ""
	if !f.Date.IsZero() {
		date = f.Date.Format("2006-01-02")
	}
	return fmt.Sprintf("cache:flights:%s:%s:%s", f.DepartureCode, f.ArrivalCode, date)
}
