package api

import (
	"net/http"

	"github.com/patrickwarner/offergate/internal/config"
	"github.com/patrickwarner/offergate/internal/geoip"
	"github.com/patrickwarner/offergate/internal/observability"
	"github.com/patrickwarner/offergate/internal/upstream"

	"go.uber.org/zap"
)

// Server groups dependencies for HTTP handlers.
type Server struct {
	Logger   *zap.Logger
	Upstream *upstream.Client
	GeoIP    *geoip.GeoIP
	Metrics  observability.MetricsRegistry
	Config   config.Config
}

// NewServer constructs a Server.
func NewServer(logger *zap.Logger, client *upstream.Client, geo *geoip.GeoIP, metrics observability.MetricsRegistry, cfg config.Config) *Server {
	return &Server{
		Logger:   logger,
		Upstream: client,
		GeoIP:    geo,
		Metrics:  metrics,
		Config:   cfg,
	}
}

// writeJSON sets the content type and writes body with the given status.
func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// internalErrorBody is the fixed envelope for unexpected failures; details
// stay in the logs.
const internalErrorBody = `{"success":false,"error":"Internal Server Error"}`

func writeInternalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, []byte(internalErrorBody))
}
