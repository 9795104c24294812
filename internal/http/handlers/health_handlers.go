package handlers

import (
	"net/http"

	mw "github.com/rogerio-castellano/products-api/internal/http/middleware"
)

// HealthHandler godoc
// @Summary Store liveness probe
// @Description Runs a trivial query against the store. Failures are reported in the body, never raised.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
// @Router /db/health [get]
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.products.Ping(r.Context()); err != nil {
		detail := s.redact(err.Error())
		s.logger.Warn("store_unavailable", "error", detail, "request_id", mw.RequestIDFromContext(r.Context()))
		s.respond(w, r, http.StatusServiceUnavailable, HealthResponse{OK: false, Error: detail})
		return
	}
	s.respond(w, r, http.StatusOK, HealthResponse{OK: true})
}
