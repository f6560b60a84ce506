package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/synthcheck/internal/domain"
	"github.com/hamed0406/synthcheck/internal/registry"
	"github.com/hamed0406/synthcheck/internal/report"
)

// PassRunner runs one probe pass and returns the resulting report.
type PassRunner interface {
	Run(ctx context.Context) domain.HealthReport
}

type Server struct {
	Logger   *zap.Logger
	Registry *registry.Registry
	Runner   PassRunner
	Cache    *report.Cache
}

func NewServer(l *zap.Logger, reg *registry.Registry, r PassRunner, c *report.Cache) *Server {
	return &Server{Logger: l, Registry: reg, Runner: r, Cache: c}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/targets", s.handleListTargets)
	r.Get("/api/report", s.handleReport)

	return r
}

func (s *Server) handleListTargets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Registry.Targets())
}

// handleReport serves the cached report; ?refresh=1 forces a fresh pass.
// Presentation only: pass/fail judgment happens in the engine, exit-code
// and alerting decisions belong to the callers reading this.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "1" {
		rep := s.Runner.Run(r.Context())
		s.Cache.Set(rep)
		s.Logger.Info("report_refreshed", zap.Float64("overall_score", rep.OverallScore))
		writeJSON(w, rep)
		return
	}

	rep, ok := s.Cache.Latest()
	if !ok {
		rep = s.Runner.Run(r.Context())
		s.Cache.Set(rep)
	}
	writeJSON(w, rep)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
