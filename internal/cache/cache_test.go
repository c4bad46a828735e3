package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_, ok := c.Get(ctx, "pdf:1")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "pdf:1", []byte("%PDF-")))
	val, ok := c.Get(ctx, "pdf:1")
	assert.True(t, ok)
	assert.Equal(t, []byte("%PDF-"), val)
	assert.Equal(t, 1, c.Len())

	assert.Error(t, c.Set(ctx, "pdf:2", nil))
}

func TestRedisCache_Unreachable(t *testing.T) {
	c := NewRedisCache("127.0.0.1:1", 0)
	defer c.Close()

	_, ok := c.Get(context.Background(), "pdf:1")
	assert.False(t, ok)
	assert.Error(t, c.Ping(context.Background()))
}
