package database

import (
	"database/sql"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/metrics"
)

// ConnectionPoolMetrics is a snapshot of the database connection pool
type ConnectionPoolMetrics struct {
	OpenConnections    int
	IdleConnections    int
	MaxOpenConnections int
	InUse              int
	WaitCount          int64
	WaitDuration       time.Duration
}

// ConnectionPoolMonitor exports sql.DB pool statistics as Prometheus metrics
type ConnectionPoolMonitor struct {
	stats  func() sql.DBStats
	logger coreport.Logger

	mu               sync.RWMutex
	last             ConnectionPoolMetrics
	lastWaitCount    int64
	lastWaitDuration time.Duration

	stopOnce sync.Once
	stopChan chan struct{}
	done     chan struct{}
}

// NewConnectionPoolMonitor creates a monitor reading stats from the given source, usually (*sql.DB).Stats
func NewConnectionPoolMonitor(stats func() sql.DBStats, logger coreport.Logger) *ConnectionPoolMonitor {
	return &ConnectionPoolMonitor{
		stats:    stats,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start collects once immediately and then every interval until Stop
func (m *ConnectionPoolMonitor) Start(interval time.Duration) {
	m.collect()

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.collect()
			case <-m.stopChan:
				return
			}
		}
	}()
}

// Stop ends monitoring and waits for the collector goroutine
func (m *ConnectionPoolMonitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
		<-m.done
	})
}

// GetMetrics returns the last collected snapshot
func (m *ConnectionPoolMonitor) GetMetrics() ConnectionPoolMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

func (m *ConnectionPoolMonitor) collect() {
	st := m.stats()

	metrics.DbPoolOpen.Set(float64(st.OpenConnections))
	metrics.DbPoolIdle.Set(float64(st.Idle))
	metrics.DbPoolInUse.Set(float64(st.InUse))

	m.mu.Lock()
	// counters only move forward; sql.DBStats reports cumulative totals
	if delta := st.WaitCount - m.lastWaitCount; delta > 0 {
		metrics.DbPoolWaitCount.Add(float64(delta))
		m.lastWaitCount = st.WaitCount
	}
	if delta := st.WaitDuration - m.lastWaitDuration; delta > 0 {
		metrics.DbPoolWaitDuration.Add(delta.Seconds())
		m.lastWaitDuration = st.WaitDuration
	}
	m.last = ConnectionPoolMetrics{
		OpenConnections:    st.OpenConnections,
		IdleConnections:    st.Idle,
		MaxOpenConnections: st.MaxOpenConnections,
		InUse:              st.InUse,
		WaitCount:          st.WaitCount,
		WaitDuration:       st.WaitDuration,
	}
	m.mu.Unlock()

	if st.MaxOpenConnections > 0 && float64(st.InUse) > float64(st.MaxOpenConnections)*0.8 {
		m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":     st.InUse,
			"max_open":   st.MaxOpenConnections,
			"idle":       st.Idle,
			"wait_count": st.WaitCount,
			"wait_time":  st.WaitDuration.String(),
		})
	}
}
