package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveDualWrite(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.ObserveDualWrite("inventory", "ok")
	m.ObserveDualWrite("inventory", "ok")
	m.ObserveDualWrite("location", "partial")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DualWriteTotal.WithLabelValues("inventory", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DualWriteTotal.WithLabelValues("location", "partial")))
}

func TestHandler_Exposition(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.HTTPRequestsTotal.WithLabelValues("GET", "/location/:store", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `glassview_http_requests_total{method="GET",route="/location/:store",status="200"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
