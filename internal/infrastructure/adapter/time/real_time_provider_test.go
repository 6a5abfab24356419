package time

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/stretchr/testify/assert"
)

func TestRealTimeProvider_SleepContext(t *testing.T) {
	p := NewRealTimeProvider()

	t.Run("elapses", func(t *testing.T) {
		assert.NoError(t, p.SleepContext(context.Background(), core.Millisecond))
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()
		err := p.SleepContext(ctx, core.Minute)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Less(t, time.Since(start), time.Second)
	})
}

func TestRealTimeProvider_ParseDuration(t *testing.T) {
	p := NewRealTimeProvider()

	d, err := p.ParseDuration("1500ms")
	assert.NoError(t, err)
	assert.Equal(t, 1500*core.Millisecond, d)

	_, err = p.ParseDuration("soon")
	assert.Error(t, err)
}
