package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(2)
	defer rl.Stop()

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(1)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
