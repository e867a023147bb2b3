package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(limit int) *RateLimiter {
	return NewRateLimiter(nil, &Config{
		Enabled:         true,
		WindowDuration:  time.Minute,
		DefaultRequests: limit,
	})
}

func TestResultFromReply_Allowed(t *testing.T) {
	limiter := newTestLimiter(10)
	now := time.Now()

	result, err := limiter.resultFromReply([]interface{}{int64(1), int64(3), int64(7)}, 10, now)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 10, result.Limit)
	assert.Equal(t, 7, result.Remaining)
	assert.Equal(t, now.Add(time.Minute).Unix(), result.ResetTime)
}

func TestResultFromReply_Denied(t *testing.T) {
	limiter := newTestLimiter(10)

	result, err := limiter.resultFromReply([]interface{}{int64(0), int64(10), int64(0)}, 10, time.Now())
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
}

func TestResultFromReply_LastSlotStillAllowed(t *testing.T) {
	// The request that fills the window is admitted; only the next one
	// is turned away. Count and remaining look the same in both cases,
	// so the verdict has to come from the flag.
	limiter := newTestLimiter(10)

	result, err := limiter.resultFromReply([]interface{}{int64(1), int64(10), int64(0)}, 10, time.Now())
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
}

func TestResultFromReply_NegativeRemainingClamped(t *testing.T) {
	limiter := newTestLimiter(10)

	result, err := limiter.resultFromReply([]interface{}{int64(0), int64(12), int64(-2)}, 10, time.Now())
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
}

func TestResultFromReply_MalformedReplies(t *testing.T) {
	limiter := newTestLimiter(10)
	now := time.Now()

	cases := []struct {
		name  string
		reply interface{}
	}{
		{"not a slice", "OK"},
		{"wrong length", []interface{}{int64(1), int64(3)}},
		{"wrong element type", []interface{}{1.0, int64(3), int64(7)}},
		{"unparseable string", []interface{}{"yes", int64(3), int64(7)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := limiter.resultFromReply(tc.reply, 10, now)
			assert.Error(t, err)
		})
	}
}

func TestReplyInt_StringNumbers(t *testing.T) {
	n, err := replyInt("42")
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestIsAllowed_DisabledBypassesRedis(t *testing.T) {
	limiter := NewRateLimiter(nil, &Config{
		Enabled:         false,
		WindowDuration:  time.Minute,
		DefaultRequests: 120,
	})

	result, err := limiter.IsAllowed(context.Background(), "10.0.0.1", RateLimitTypeDefault)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 120, result.Limit)
	assert.Equal(t, 120, result.Remaining)
}
