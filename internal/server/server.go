// Package server exposes the packer over HTTP.
//
// Routes:
//   - GET  /healthz       liveness probe
//   - POST /api/pack      arrange items, returns a LayoutResult
//   - POST /api/compare   arrange items under the default what-if scenarios
//
// Every request is logged through a charmbracelet/log logger. Packing debug
// events are logged at debug level.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/piwi3910/staggergrid/internal/engine"
	"github.com/piwi3910/staggergrid/internal/model"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// PackRequest is the body of POST /api/pack and POST /api/compare.
// Settings are optional and default to model.DefaultSettings.
type PackRequest struct {
	Items     []model.Item    `json:"items"`
	Container model.Container `json:"container"`
	Settings  *model.Settings `json:"settings,omitempty"`
}

// Server routes packing requests. It holds no per-request state, so
// requests are served concurrently.
type Server struct {
	logger *log.Logger
	router chi.Router
}

// New builds a Server that logs to logger.
func New(logger *log.Logger) *Server {
	s := &Server{logger: logger, router: chi.NewRouter()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/pack", s.handlePack)
		r.Post("/compare", s.handleCompare)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePack(w http.ResponseWriter, r *http.Request) {
	req, err := decodePackRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	items := model.ExpandItems(req.Items)
	result := engine.Arrange(items, req.Container, settingsOrDefault(req.Settings), s.observer(r))
	s.logger.Debug("packed", "items", len(items), "width", result.Width, "height", result.Height)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	req, err := decodePackRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	scenarios := engine.BuildDefaultScenarios(settingsOrDefault(req.Settings))
	writeJSON(w, http.StatusOK, engine.CompareScenarios(scenarios, req.Items, req.Container))
}

// observer logs packing events for the request at debug level.
func (s *Server) observer(r *http.Request) engine.Observer {
	if s.logger.GetLevel() > log.DebugLevel {
		return nil
	}
	reqID := middleware.GetReqID(r.Context())
	return func(e engine.Event) {
		s.logger.Debug(e.Kind.String(), "request", reqID, "item", e.Item, "rect", e.Rect)
	}
}

// requestLogger logs one line per request with status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

func decodePackRequest(w http.ResponseWriter, r *http.Request) (PackRequest, error) {
	var req PackRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return PackRequest{}, err
	}
	for _, it := range req.Items {
		if it.Width < 0 || it.Height < 0 {
			return PackRequest{}, errors.New("item sizes must not be negative")
		}
	}
	return req, nil
}

func settingsOrDefault(s *model.Settings) model.Settings {
	if s == nil {
		return model.DefaultSettings()
	}
	return s.Normalized()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
