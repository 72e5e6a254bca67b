package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/airroutes/config"
	"github.com/Domenick1991/airroutes/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache holds snapshot inputs that change only when a new batch is activated.
// Search results are never cached.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetCarrierScores returns nil, nil on a miss.
func (c *RedisCache) GetCarrierScores(ctx context.Context) (domain.CarrierScores, error) {
	data, err := c.client.Get(ctx, carrierScoresKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var scores domain.CarrierScores
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

func (c *RedisCache) SetCarrierScores(ctx context.Context, scores domain.CarrierScores) error {
	payload, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, carrierScoresKey(), payload, c.ttl).Err()
}

// GetAirports returns the cached subset of codes; absent codes are simply missing
// from the map.
func (c *RedisCache) GetAirports(ctx context.Context, codes []string) (map[string]domain.AirportInfo, error) {
	found := make(map[string]domain.AirportInfo, len(codes))
	if len(codes) == 0 {
		return found, nil
	}
	keys := make([]string, len(codes))
	for i, code := range codes {
		keys[i] = airportKey(code)
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var a domain.AirportInfo
		if err := json.Unmarshal([]byte(s), &a); err != nil {
			return nil, err
		}
		found[a.IATA] = a
	}
	return found, nil
}

func (c *RedisCache) SetAirports(ctx context.Context, airports []domain.AirportInfo) error {
	if len(airports) == 0 {
		return nil
	}
	pipe := c.client.Pipeline()
	for _, a := range airports {
		payload, err := json.Marshal(a)
		if err != nil {
			return err
		}
		pipe.Set(ctx, airportKey(a.IATA), payload, c.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func carrierScoresKey() string {
	return "cache:carrier_scores"
}

func airportKey(code string) string {
	return "cache:airport:" + domain.NormalizeCode(code)
}
