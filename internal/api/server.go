// internal/api/server.go

// Package api exposes the harmony checker and token merger over HTTP and
// WebSocket, plus the session workflow that Template Mode drives.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/pprof"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/andrecollier/website-builder-sub004/internal/common/errors"
	"github.com/andrecollier/website-builder-sub004/internal/common/logger"
	"github.com/andrecollier/website-builder-sub004/internal/common/observability"
	"github.com/andrecollier/website-builder-sub004/internal/harmony"
	"github.com/andrecollier/website-builder-sub004/internal/store"
	"github.com/andrecollier/website-builder-sub004/pkg/registry"
)

// Request bodies larger than this are rejected outright.
const maxBodyBytes = 1 << 20

// Server wires the engines, the session store and the section registry
// behind the HTTP surface. The registry may be nil, which disables
// section-type validation.
type Server struct {
	store    *store.ReferenceStore
	checker  *harmony.Checker
	sections *registry.SectionRegistry
	obs      *observability.Observability
	log      logger.Logger
	live     *LiveHub
}

func NewServer(refStore *store.ReferenceStore, checker *harmony.Checker, sections *registry.SectionRegistry, obs *observability.Observability, log logger.Logger) *Server {
	return &Server{
		store:    refStore,
		checker:  checker,
		sections: sections,
		obs:      obs,
		log:      log,
		live:     NewLiveHub(),
	}
}

// Register mounts every route on the mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/harmony/check", s.instrument("harmony_check", s.handleHarmonyCheck))
	mux.HandleFunc("POST /api/v1/tokens/merge", s.instrument("tokens_merge", s.handleMergeTokens))

	mux.HandleFunc("POST /api/v1/sessions", s.instrument("session_create", s.handleCreateSession))
	mux.HandleFunc("DELETE /api/v1/sessions/{sid}", s.instrument("session_delete", s.handleDeleteSession))
	mux.HandleFunc("POST /api/v1/sessions/{sid}/references", s.instrument("reference_add", s.handleAddReference))
	mux.HandleFunc("GET /api/v1/sessions/{sid}/references", s.instrument("reference_list", s.handleListReferences))
	mux.HandleFunc("PUT /api/v1/sessions/{sid}/references/{id}/tokens", s.instrument("reference_tokens", s.handleDeliverTokens))
	mux.HandleFunc("PUT /api/v1/sessions/{sid}/sections", s.instrument("sections_update", s.handleUpdateSections))
	mux.HandleFunc("POST /api/v1/sessions/{sid}/merge", s.instrument("session_merge", s.handleSessionMerge))

	mux.HandleFunc("GET /api/v1/harmony/live", s.handleHarmonyLive)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
}

// RegisterProfiler mounts the pprof handlers. Kept separate from
// Register so the profiling surface is an explicit opt-in.
func RegisterProfiler(mux *http.ServeMux) {
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusRecorder captures the response status for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		if s.obs != nil {
			s.obs.RecordRequest(r.Context(), route, strconv.Itoa(rec.status))
			s.obs.RecordRequestDuration(r.Context(), route, time.Since(start))
		}
	}
}

type errorResponse struct {
	Success bool                     `json:"success"`
	Error   *apperrors.StandardError `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a StandardError onto its HTTP status; anything else
// becomes a 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var stdErr *apperrors.StandardError
	if !errors.As(err, &stdErr) {
		stdErr = &apperrors.StandardError{
			Code:      "INTERNAL",
			Message:   "Internal server error",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		}
	}

	s.log.Warn("request failed", map[string]interface{}{
		"code":     string(stdErr.Code),
		"category": apperrors.GetErrorCategory(stdErr.Code),
		"details":  stdErr.Details,
	})
	writeJSON(w, stdErr.HTTPStatus(), errorResponse{Success: false, Error: stdErr})
}

// validateSectionTypes rejects mappings that name section types absent
// from the registry.
func (s *Server) validateSectionTypes(mapping map[string]string) error {
	if s.sections == nil {
		return nil
	}
	for sectionType := range mapping {
		if !s.sections.Has(sectionType) {
			return apperrors.NewSectionTypeUnknownError(sectionType)
		}
	}
	return nil
}
