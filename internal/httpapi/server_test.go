package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/synthcheck/internal/domain"
	"github.com/hamed0406/synthcheck/internal/registry"
	"github.com/hamed0406/synthcheck/internal/report"
)

type fakeRunner struct {
	report domain.HealthReport
	runs   atomic.Int32
}

func (f *fakeRunner) Run(ctx context.Context) domain.HealthReport {
	f.runs.Add(1)
	return f.report
}

func newTestServer(t *testing.T) (*Server, *fakeRunner) {
	t.Helper()
	reg, err := registry.New(map[string]registry.TargetConfig{
		"api": {URL: "https://api.example.com", Kind: domain.KindAPI},
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	fr := &fakeRunner{report: domain.HealthReport{
		Verdicts: map[string]domain.HealthVerdict{
			"api": {Target: domain.Target{Name: "api"}, Passed: true},
		},
		OverallScore: 1,
		GeneratedAt:  time.Now().UTC(),
	}}
	return NewServer(zap.NewNop(), reg, fr, report.NewCache()), fr
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
}

func TestListTargets(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/targets", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	var ts []domain.Target
	if err := json.NewDecoder(rec.Body).Decode(&ts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ts) != 1 || ts[0].Name != "api" {
		t.Fatalf("want registry listing, got %+v", ts)
	}
}

func TestReport_FirstHitRunsAPass(t *testing.T) {
	s, fr := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/report", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	var rep domain.HealthReport
	if err := json.NewDecoder(rec.Body).Decode(&rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rep.OverallScore != 1 {
		t.Fatalf("want score 1, got %v", rep.OverallScore)
	}
	if fr.runs.Load() != 1 {
		t.Fatalf("want one pass, got %d", fr.runs.Load())
	}
}

func TestReport_CachedUnlessRefreshed(t *testing.T) {
	s, fr := newTestServer(t)
	router := s.Router()

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/report", nil))
	}
	if fr.runs.Load() != 1 {
		t.Fatalf("repeat reads must hit the cache, got %d runs", fr.runs.Load())
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/report?refresh=1", nil))
	if fr.runs.Load() != 2 {
		t.Fatalf("refresh must run a fresh pass, got %d runs", fr.runs.Load())
	}
}
