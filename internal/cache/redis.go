package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/GaborIreHun/flightmanager/config"
	"github.com/GaborIreHun/flightmanager/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache stores flight query results under generation-scoped keys.
// Invalidate bumps the generation, so results cached before a write are never
// served again and simply age out.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    cfg.TTL,
	}
}

// GetFlights returns the cached result for query along with the generation it
// was looked up under. A miss returns nil flights and that generation, which
// the caller hands back to SetFlights after loading from the store.
func (c *RedisCache) GetFlights(ctx context.Context, query string) ([]domain.Flight, int64, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, err
	}

	data, err := c.client.Get(ctx, flightsKey(gen, query)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, gen, nil
		}
		return nil, 0, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, 0, err
	}
	return flights, gen, nil
}

// SetFlights stores flights under gen. If a write invalidated the cache since
// gen was read, the entry lands under a retired generation and is never read.
func (c *RedisCache) SetFlights(ctx context.Context, gen int64, query string, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(gen, query), payload, c.ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, generationKey()).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func generationKey() string {
	return "cache:flights:gen"
}

func flightsKey(gen int64, query string) string {
	return fmt.Sprintf("cache:flights:%d:%s", gen, query)
}

func AllKey() string {
	return "all"
}

func DestinationKey(destination string) string {
	return "destination:" + destination
}

func OriginKey(origin string) string {
	return "origin:" + origin
}

func PriceRangeKey(r domain.PriceRange) string {
	return fmt.Sprintf("price:%s:%s", r.Min.String(), r.Max.String())
}
