//go:build !integration

package redis

import (
	"context"
	"smelterAdvisor/pkg/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	opts := options(config.RedisConfig{
		RedisHost:     "cache",
		RedisPort:     "6380",
		RedisUsername: "advisor",
		RedisPassword: "secret",
		RedisDB:       3,
		PoolSize:      20,
	})

	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "smelter-advisor", opts.ClientName)
	assert.Equal(t, "advisor", opts.Username)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 3, opts.DB)
	assert.Equal(t, 20, opts.PoolSize)
	assert.Equal(t, 4, opts.MinIdleConns)
}

func TestOptionsDefaultPoolSize(t *testing.T) {
	opts := options(config.RedisConfig{RedisHost: "localhost", RedisPort: "6379"})
	assert.Equal(t, 10, opts.PoolSize)
	assert.Equal(t, 2, opts.MinIdleConns)
}

func TestNewRedisClientUnreachable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client, err := NewRedisClient(ctx, config.RedisConfig{RedisHost: "127.0.0.1", RedisPort: "1"})
	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}

func TestCloseRedisClientNil(t *testing.T) {
	assert.NoError(t, CloseRedisClient(nil))
}
