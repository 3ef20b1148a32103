package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// BenchmarkClient_BuildRequest benchmarks HTTP request construction.
func BenchmarkClient_BuildRequest(b *testing.B) {
	client, _ := NewOpenWeatherClient("test-api-key", DefaultAPIURL, 0)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = client.buildRequest(ctx, "seattle,US")
	}
}

// BenchmarkClient_DecodeObservation benchmarks strict decoding of a provider body.
func BenchmarkClient_DecodeObservation(b *testing.B) {
	body := []byte(testdataClearSky)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = decodeObservation(body)
	}
}

// BenchmarkClient_GetCurrentWeather benchmarks a full round trip against a local server.
func BenchmarkClient_GetCurrentWeather(b *testing.B) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testdataClearSky))
	}))
	defer server.Close()

	client, _ := NewOpenWeatherClient("test-api-key", server.URL, 0)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = client.GetCurrentWeather(ctx, "Testville", "TV")
	}
}
