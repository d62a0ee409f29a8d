package api

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/patrickwarner/offergate/internal/clientip"
	"github.com/patrickwarner/offergate/internal/logic"
	"github.com/patrickwarner/offergate/internal/middleware"
	"github.com/patrickwarner/offergate/internal/models"
	"github.com/patrickwarner/offergate/internal/upstream"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("offergate")

// OffersHandler handles GET /api/offers: resolves the client IP, fetches an
// oversampled pool from the provider, deduplicates and ranks it, and returns
// the upstream response shape with the offers list replaced.
func (s *Server) OffersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "OffersHandler",
		trace.WithAttributes(
			attribute.String("http.method", "GET"),
			attribute.String("http.route", "/api/offers"),
		))
	defer span.End()

	logger := middleware.LoggerFromRequest(r, s.Logger).With(
		zap.String("request_id", uuid.NewString()))

	start := time.Now()
	const endpoint = "offers"
	const method = "GET"

	q := r.URL.Query()
	userAgent := q.Get("user_agent")
	limit := logic.ParseLimit(q.Get("max"))

	ip, usedFallback := clientip.Resolve(r.Header.Get("X-Forwarded-For"), q.Get("ip"), r.RemoteAddr)
	if usedFallback {
		s.Metrics.IncrementIPFallbacks()
		logger.Info("client ip unusable, using fallback",
			zap.String("forwarded", r.Header.Get("X-Forwarded-For")),
			zap.String("query_ip", q.Get("ip")),
			zap.String("remote_addr", r.RemoteAddr),
			zap.String("ip", ip))
	}

	device := logic.DeviceClass(userAgent)
	s.Metrics.IncrementDeviceRequests(device)

	span.SetAttributes(
		attribute.String("client.ip", ip),
		attribute.String("client.device", device),
		attribute.Int("request.limit", limit),
	)
	if country := s.GeoIP.Country(net.ParseIP(ip)); country != "" {
		span.SetAttributes(attribute.String("client.country", country))
		logger = logger.With(zap.String("country", country))
	}

	body, err := s.Upstream.FetchOffers(ctx, upstream.Query{
		UserAgent: userAgent,
		IP:        ip,
		CType:     upstream.CTypeMask,
		Max:       logic.OversampleCount,
	})
	if err != nil {
		var ue *upstream.Error
		if errors.As(err, &ue) {
			// surface the provider's verdict unchanged
			span.SetAttributes(attribute.Int("upstream.status", ue.StatusCode))
			respBody := ue.Body
			if len(respBody) == 0 {
				respBody = []byte(internalErrorBody)
			}
			writeJSON(w, ue.StatusCode, respBody)
			s.Metrics.IncrementRequests(endpoint, method, strconv.Itoa(ue.StatusCode))
			s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
			return
		}
		logger.Error("upstream fetch failed", zap.Error(err))
		writeInternalError(w)
		s.Metrics.IncrementRequests(endpoint, method, "500")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		return
	}

	env, hasOffers, err := models.ParseEnvelope(body)
	if err != nil {
		logger.Error("upstream body not parseable", zap.Error(err))
		writeInternalError(w)
		s.Metrics.IncrementRequests(endpoint, method, "500")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		return
	}
	if !hasOffers {
		// degenerate result, pass the body through untouched
		logger.Info("upstream response without offers list")
		writeJSON(w, http.StatusOK, body)
		s.Metrics.IncrementRequests(endpoint, method, "200")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		return
	}

	pool := logic.Dedupe(env.Offers)
	s.Metrics.AddOffersDeduped(len(env.Offers) - len(pool))
	env.Offers = logic.Rank(pool, limit)
	s.Metrics.RecordOffersReturned(len(env.Offers))

	span.SetAttributes(
		attribute.Int("offers.pool", len(pool)),
		attribute.Int("offers.returned", len(env.Offers)),
	)
	logger.Info("offers served",
		zap.Int("pool", len(pool)),
		zap.Int("returned", len(env.Offers)),
		zap.String("device", device))

	out, err := json.Marshal(env)
	if err != nil {
		logger.Error("encode response", zap.Error(err))
		writeInternalError(w)
		s.Metrics.IncrementRequests(endpoint, method, "500")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		return
	}
	writeJSON(w, http.StatusOK, out)
	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}
