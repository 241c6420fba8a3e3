package observability

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCountsConcurrently(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordRequest("/api/tickets", "GET", 200, time.Millisecond)
		}()
	}
	wg.Wait()
	m.RecordError("/api/tickets", "GET", "TIMEOUT")

	assert.Equal(t, int64(50), m.Requests("/api/tickets", "GET", 200))
	assert.Equal(t, int64(1), m.Errors("/api/tickets", "GET", "TIMEOUT"))

	snap := m.Snapshot()
	require.Len(t, snap.Requests, 1)
	assert.Equal(t, "/api/tickets|GET|200", snap.Requests[0].Key)
	assert.Equal(t, 50*time.Millisecond, snap.Requests[0].TotalLatency)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, 0)
	m.RecordError("/", "GET", "X")
	assert.Empty(t, m.Snapshot().Requests)
	assert.Zero(t, m.Requests("/", "GET", 200))
}
