package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowRequestEnforcesMinuteLimit(t *testing.T) {
	rl := NewRateLimiter(3, 100, true)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.AllowRequest(), "request %d should be allowed", i+1)
	}
	assert.False(t, rl.AllowRequest(), "request over the minute limit must be denied")
}

func TestAllowRequestEnforcesHourLimit(t *testing.T) {
	rl := NewRateLimiter(100, 2, true)

	assert.True(t, rl.AllowRequest())
	assert.True(t, rl.AllowRequest())
	assert.False(t, rl.AllowRequest())
}

func TestDisabledLimiterAlwaysAllows(t *testing.T) {
	rl := NewRateLimiter(1, 1, false)

	for i := 0; i < 10; i++ {
		assert.True(t, rl.AllowRequest())
	}

	stats := rl.GetStats()
	assert.False(t, stats.Enabled)
	assert.Zero(t, stats.RequestsLastMinute)
}

func TestResetClearsWindows(t *testing.T) {
	rl := NewRateLimiter(2, 10, true)

	rl.AllowRequest()
	rl.AllowRequest()
	assert.False(t, rl.AllowRequest())

	rl.Reset()
	assert.True(t, rl.AllowRequest())
}

func TestGetStats(t *testing.T) {
	rl := NewRateLimiter(5, 50, true)

	rl.AllowRequest()
	rl.AllowRequest()

	stats := rl.GetStats()
	assert.True(t, stats.Enabled)
	assert.Equal(t, 2, stats.RequestsLastMinute)
	assert.Equal(t, 2, stats.RequestsLastHour)
	assert.Equal(t, 5, stats.LimitPerMinute)
	assert.Equal(t, 3, stats.RemainingThisMinute)
	assert.Equal(t, 48, stats.RemainingThisHour)
}
