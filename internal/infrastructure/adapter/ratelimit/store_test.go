package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestStore_AllowBurstThenBlock(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewStore(rate.Limit(1), 2, time.Minute)
	s.now = func() time.Time { return now }

	assert.True(t, s.Allow("1.2.3.4:/verify"))
	assert.True(t, s.Allow("1.2.3.4:/verify"))
	assert.False(t, s.Allow("1.2.3.4:/verify"))

	// other keys have their own bucket
	assert.True(t, s.Allow("5.6.7.8:/verify"))

	now = now.Add(time.Second)
	assert.True(t, s.Allow("1.2.3.4:/verify"))
}

func TestStore_CleanupEvictsIdleKeys(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewStore(rate.Limit(10), 10, time.Minute)
	s.now = func() time.Time { return now }

	s.Allow("old")
	now = now.Add(2 * time.Minute)
	s.Allow("fresh")

	s.cleanup()
	assert.Equal(t, 1, s.Len())
}

func TestStore_WaitHonoursContext(t *testing.T) {
	s := NewStore(rate.Limit(0.001), 1, time.Minute)
	require.NoError(t, s.Wait(context.Background(), "k"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, s.Wait(ctx, "k"))
}
