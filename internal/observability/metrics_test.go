package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestMetrics_Usable verifies label dimensions match usage in client, service,
// presenter and http packages.
func TestMetrics_Usable(t *testing.T) {
	HTTPRequestsTotal.WithLabelValues("GET", "/metrics", "2xx").Inc()
	HTTPRequestDuration.WithLabelValues("GET", "/metrics").Observe(0.01)
	WeatherAPICallsTotal.WithLabelValues("success").Inc()
	WeatherAPICallsTotal.WithLabelValues("error").Inc()
	WeatherAPIDuration.WithLabelValues("success").Observe(0.1)
	WeatherLookupErrorsTotal.WithLabelValues("network").Inc()
	SummariesRenderedTotal.WithLabelValues("clear", "mild").Inc()
}

func TestMetricCountryLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"US", "US"},
		{"gb", "GB"},
		{" de ", "DE"},
		{"", "other"},
		{"USA", "other"},
		{"1A", "other"},
		{"ü", "other"},
	}
	for _, tt := range tests {
		if got := MetricCountryLabel(tt.in); got != tt.want {
			t.Errorf("MetricCountryLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRecordWeatherQuery(t *testing.T) {
	beforeTotal := testutil.ToFloat64(WeatherQueriesTotal)
	beforeOther := testutil.ToFloat64(WeatherQueriesByCountryTotal.WithLabelValues("other"))
	beforeNL := testutil.ToFloat64(WeatherQueriesByCountryTotal.WithLabelValues("NL"))

	RecordWeatherQuery("nl")
	RecordWeatherQuery("Netherlands")

	if got := testutil.ToFloat64(WeatherQueriesTotal) - beforeTotal; got != 2 {
		t.Errorf("weatherQueriesTotal delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(WeatherQueriesByCountryTotal.WithLabelValues("NL")) - beforeNL; got != 1 {
		t.Errorf("country=NL delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(WeatherQueriesByCountryTotal.WithLabelValues("other")) - beforeOther; got != 1 {
		t.Errorf("country=other delta = %v, want 1", got)
	}
}

// TestMetricsHandler_ServesPrometheusFormat verifies the text exposition output.
func TestMetricsHandler_ServesPrometheusFormat(t *testing.T) {
	WeatherQueriesTotal.Add(0)
	handler := MetricsHandler()
	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("MetricsHandler status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "weatherQueriesTotal") {
		t.Error("MetricsHandler response should contain weatherQueriesTotal")
	}
}
