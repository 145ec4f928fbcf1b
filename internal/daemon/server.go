// Package daemon implements mcisd, the HTTP front end over pkg/dispatch.
// It exposes POST /v1/mcis/runs, caches results in Redis keyed by a
// content hash of the request, and records one audit document per run in
// MongoDB.
package daemon

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/sebaraj/mcis-engine/pkg/dispatch"
	"github.com/sebaraj/mcis-engine/pkg/engine"
	"github.com/sebaraj/mcis-engine/pkg/graph"
	"github.com/sebaraj/mcis-engine/pkg/graphio"
)

// Server holds the dependencies shared by every request handler.
type Server struct {
	Dispatcher *dispatch.Dispatcher
	Cache      ResultCache
	Audit      AuditLog
	Logger     *charmlog.Logger
}

// ResultCache is the daemon-layer result cache. It lives outside the MCIS
// core on purpose: the core itself never persists or caches graphs (see
// SPEC_FULL.md's non-goals), so caching is strictly a daemon concern.
type ResultCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// AuditLog records one document per completed run.
type AuditLog interface {
	Record(ctx context.Context, rec RunRecord) error
}

// RunRecord is one audit-log entry.
type RunRecord struct {
	RunID      string    `bson:"run_id" json:"run_id"`
	Algorithm  string    `bson:"algorithm" json:"algorithm"`
	Tag        string    `bson:"tag,omitempty" json:"tag,omitempty"`
	InputSizes []int     `bson:"input_sizes" json:"input_sizes"`
	ResultSize int       `bson:"result_size" json:"result_size"`
	DurationMS int64     `bson:"duration_ms" json:"duration_ms"`
	Cached     bool      `bson:"cached" json:"cached"`
	StartedAt  time.Time `bson:"started_at" json:"started_at"`
}

// runRequest is the POST /v1/mcis/runs request body.
type runRequest struct {
	Graphs    []graphio.Document `json:"graphs"`
	Algorithm string             `json:"algorithm"`
	Tag       *string            `json:"tag,omitempty"`
}

// runResponse is the POST /v1/mcis/runs response body.
type runResponse struct {
	RunID   string             `json:"run_id"`
	Results []graphio.Document `json:"results"`
}

// NewRouter builds the chi router for the daemon's HTTP surface.
func (s *Server) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Post("/v1/mcis/runs", s.handleRun)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	algo, ok := algorithmFromString(req.Algorithm)
	if !ok {
		http.Error(w, "unknown algorithm: "+req.Algorithm, http.StatusBadRequest)
		return
	}

	key := contentHash(req)
	if cached, hit, err := s.Cache.Get(ctx, key); err == nil && hit {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(cached))
		s.recordAudit(ctx, req, algo, 0, true, start)
		return
	}

	graphs, err := buildGraphs(req.Graphs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	results, err := s.Dispatcher.Run(graphs, algo, req.Tag)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := runResponse{RunID: uuid.NewString(), Results: toDocuments(results)}
	body, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := s.Cache.Set(ctx, key, string(body), 10*time.Minute); err != nil {
		s.Logger.Warn("result cache write failed", "err", err)
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)

	s.recordAudit(ctx, req, algo, totalNodes(results), false, start)
}

func (s *Server) recordAudit(ctx context.Context, req runRequest, algo engine.Algorithm, resultSize int, cached bool, start time.Time) {
	tag := ""
	if req.Tag != nil {
		tag = *req.Tag
	}
	sizes := make([]int, len(req.Graphs))
	for i, doc := range req.Graphs {
		sizes[i] = len(doc.Nodes)
	}
	rec := RunRecord{
		RunID:      uuid.NewString(),
		Algorithm:  algo.String(),
		Tag:        tag,
		InputSizes: sizes,
		ResultSize: resultSize,
		DurationMS: time.Since(start).Milliseconds(),
		Cached:     cached,
		StartedAt:  start,
	}
	if err := s.Audit.Record(ctx, rec); err != nil {
		s.Logger.Warn("audit log write failed", "err", err)
	}
}

func algorithmFromString(name string) (engine.Algorithm, bool) {
	switch name {
	case "bron-kerbosch", "bron-kerbosch-serial", "bk":
		return engine.BronKerboschSerial, true
	case "kpt":
		return engine.KPT, true
	default:
		return 0, false
	}
}

func contentHash(req runRequest) string {
	canonical, _ := json.Marshal(req)
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}

func buildGraphs(docs []graphio.Document) ([]*graph.Graph, error) {
	graphs := make([]*graph.Graph, len(docs))
	for i, doc := range docs {
		g, err := graphio.Build(doc)
		if err != nil {
			return nil, err
		}
		graphs[i] = g
	}
	return graphs, nil
}

func toDocuments(graphs []*graph.Graph) []graphio.Document {
	docs := make([]graphio.Document, len(graphs))
	for i, g := range graphs {
		docs[i] = graphio.Dump(g)
	}
	return docs
}

func totalNodes(graphs []*graph.Graph) int {
	total := 0
	for _, g := range graphs {
		total += g.NumNodes()
	}
	return total
}
