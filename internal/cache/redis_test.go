package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/airroutes/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "cache:carrier_scores", carrierScoresKey())
	assert.Equal(t, "cache:airport:GRU", airportKey(" gru "))
}

func TestNewRedisCache(t *testing.T) {
	c := NewRedisCache(config.RedisConfig{Addr: "localhost:6379"}, time.Minute)
	require.NotNil(t, c)
	assert.Equal(t, time.Minute, c.ttl)
	assert.NoError(t, c.Close())
}

func TestGetAirports_EmptyCodesSkipsRedis(t *testing.T) {
	c := NewRedisCache(config.RedisConfig{Addr: "127.0.0.1:1"}, time.Minute)
	defer c.Close()

	found, err := c.GetAirports(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, found)
	assert.NoError(t, c.SetAirports(context.Background(), nil))
}
