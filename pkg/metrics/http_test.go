package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestObserveRequestExports(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest(http.MethodGet, "/plans", http.StatusOK, 42*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/plans", http.StatusOK, 10*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	Handler(reg).ServeHTTP(resp, req)

	body := resp.Body.String()
	if !strings.Contains(body, `http_requests_total{method="GET",route="/plans",status="200"} 2`) {
		t.Fatalf("expected request counter in output:\n%s", body)
	}
	if !strings.Contains(body, "http_request_duration_seconds_bucket") {
		t.Fatalf("expected latency histogram in output:\n%s", body)
	}
}

func TestObserveRequestNilReceiverIsNoop(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest(http.MethodGet, "/plans", http.StatusOK, time.Millisecond)

	empty := NewHTTPMetrics(nil)
	empty.ObserveRequest(http.MethodGet, "/plans", http.StatusOK, time.Millisecond)
}
