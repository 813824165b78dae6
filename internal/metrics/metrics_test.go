package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_LedgerCounters(t *testing.T) {
	m := New()

	m.CarEntered("P001")
	m.CarEntered("P001")
	m.CarExited("P001", decimal.RequireFromString("7.50"))
	m.EntryRejected("no_slots")
	m.SlotDrift("P002", -1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.carEntries.WithLabelValues("P001")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.carExits.WithLabelValues("P001")))
	assert.Equal(t, 7.5, testutil.ToFloat64(m.revenue.WithLabelValues("P001")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.entryRejected.WithLabelValues("no_slots")))
	assert.Equal(t, -1.0, testutil.ToFloat64(m.slotDrift.WithLabelValues("P002")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveHTTP(http.MethodGet, "/api/parking", http.StatusOK, 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `car_parking_http_requests_total{method="GET",route="/api/parking",status="200"} 1`))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
