package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRecordRequest(t *testing.T) {
	metrics := NewMetrics()

	metrics.RecordRequest("/api/tickets", "GET", 200, 5*time.Millisecond)
	metrics.RecordRequest("/api/tickets", "GET", 200, 7*time.Millisecond)
	metrics.RecordRequest("/api/tickets", "POST", 201, 3*time.Millisecond)

	assert.Equal(t, int64(2), metrics.RequestTotal("/api/tickets", "GET", 200))
	assert.Equal(t, int64(1), metrics.RequestTotal("/api/tickets", "POST", 201))
	assert.Equal(t, int64(0), metrics.RequestTotal("/api/tickets", "DELETE", 204))
}

func TestMetricsNilSafe(t *testing.T) {
	var metrics *Metrics

	metrics.RecordRequest("/", "GET", 200, 0)
	metrics.RecordError("/", "GET", "INTERNAL_ERROR")
	assert.Equal(t, int64(0), metrics.RequestTotal("/", "GET", 200))
}
