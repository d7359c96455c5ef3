package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	t.Run("missing url", func(t *testing.T) {
		_, err := options(Config{})
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("plain url with password", func(t *testing.T) {
		opts, err := options(Config{URL: "redis://:hunter2@cache.internal:6380"})
		require.NoError(t, err)
		assert.Equal(t, "cache.internal:6380", opts.Addr)
		assert.Equal(t, "hunter2", opts.Password)
		assert.Nil(t, opts.TLSConfig)
	})

	t.Run("tls url gets default port", func(t *testing.T) {
		opts, err := options(Config{URL: "rediss://cache.internal", Password: "explicit"})
		require.NoError(t, err)
		assert.Equal(t, "cache.internal:6379", opts.Addr)
		assert.Equal(t, "explicit", opts.Password)
		assert.NotNil(t, opts.TLSConfig)
	})
}

func TestNewClient_NotConfigured(t *testing.T) {
	client, err := NewClient(context.Background(), Config{})
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestHealthCheck_NilClient(t *testing.T) {
	assert.Error(t, HealthCheck(nil)(context.Background()))
}
