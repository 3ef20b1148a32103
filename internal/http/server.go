// Package http serves the optional metrics endpoint that runs beside an
// interactive session: /metrics for Prometheus and /health for liveness.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/kjstillabower/weather-station/internal/observability"
)

// MetricsServer exposes the process registry over HTTP.
type MetricsServer struct {
	srv          *http.Server
	logger       *zap.Logger
	startTime    time.Time
	shuttingDown atomic.Bool
}

// NewMetricsServer returns a server for addr. Call Start to begin listening.
func NewMetricsServer(addr string, logger *zap.Logger) *MetricsServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &MetricsServer{
		logger:    logger,
		startTime: time.Now(),
	}
	s.srv = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Router builds the mux router. Exposed for tests.
func (s *MetricsServer) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(MetricsMiddleware)
	router.HandleFunc("/health", s.GetHealth).Methods("GET")
	router.Handle("/metrics", observability.MetricsHandler()).Methods("GET")
	return router
}

// Start binds the listener and serves in the background. Bind errors are
// returned; errors after that are logged.
func (s *MetricsServer) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	s.logger.Info("metrics endpoint listening", zap.String("addr", ln.Addr().String()))
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server", zap.Error(err))
		}
	}()
	return nil
}

// Shutdown marks the server as draining and stops it.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	s.shuttingDown.Store(true)
	return s.srv.Shutdown(ctx)
}

type healthResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptimeSeconds"`
}

// GetHealth reports ok while the session runs and shutting-down after.
func (s *MetricsServer) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:        "ok",
		UptimeSeconds: time.Since(s.startTime).Seconds(),
	}
	status := http.StatusOK
	if s.shuttingDown.Load() {
		resp.Status = "shutting-down"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
