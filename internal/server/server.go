// Package server exposes annotation tracking over HTTP. It keeps the last
// known content of every file together with its annotations and re-anchors
// them on each content update.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jsnanigans/reanchor/pkg/reanchor"
)

// DefaultMaxBodyBytes caps request bodies when New is given no limit.
const DefaultMaxBodyBytes int64 = 1 << 20

// FileUpdateRequest is the body of POST /update.
type FileUpdateRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// AnnotateRequest is the body of POST /annotate. An empty ID is replaced by
// a generated one.
type AnnotateRequest struct {
	Filename string `json:"filename"`
	Pattern  string `json:"pattern"`
	ID       string `json:"id,omitempty"`
}

// Stats mirrors reanchor.Stats on the wire.
type Stats struct {
	Total      int `json:"total"`
	Unchanged  int `json:"unchanged"`
	Insertions int `json:"insertions"`
	Deletions  int `json:"deletions"`
}

// UpdateResponse is returned by POST /update.
type UpdateResponse struct {
	Filename string                          `json:"filename"`
	Created  bool                            `json:"created"`
	Stats    Stats                           `json:"stats"`
	Lost     []reanchor.AnnotationID         `json:"lost,omitempty"`
	Current  map[reanchor.AnnotationID][]int `json:"annotations"`
}

// AnnotateResponse is returned by POST /annotate.
type AnnotateResponse struct {
	ID        reanchor.AnnotationID `json:"id"`
	Positions []int                 `json:"positions"`
}

// AnnotationsResponse is returned by GET /annotations.
type AnnotationsResponse struct {
	Filename    string                          `json:"filename"`
	Annotations map[reanchor.AnnotationID][]int `json:"annotations"`
}

// Server tracks annotations per file.
type Server struct {
	mu           sync.RWMutex
	files        map[string]*reanchor.Tracker
	logger       *zap.Logger
	metrics      *metrics
	mux          *http.ServeMux
	maxBodyBytes int64
}

// New returns a Server registering its metrics with reg. A nil logger
// disables logging. Request bodies larger than maxBodyBytes are rejected;
// a non-positive limit means DefaultMaxBodyBytes.
func New(logger *zap.Logger, reg *prometheus.Registry, maxBodyBytes int64) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	s := &Server{
		files:   make(map[string]*reanchor.Tracker),
		logger:  logger,
		metrics: newMetrics(reg),
		mux:          http.NewServeMux(),
		maxBodyBytes: maxBodyBytes,
	}
	s.mux.HandleFunc("/update", s.fileUpdateHandler)
	s.mux.HandleFunc("/annotate", s.annotateHandler)
	s.mux.HandleFunc("/annotations", s.annotationsHandler)
	s.mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// fileUpdateHandler caches new content and re-anchors the file's annotations.
func (s *Server) fileUpdateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST method is allowed", http.StatusMethodNotAllowed)
		return
	}
	var req FileUpdateRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Filename == "" {
		http.Error(w, "Filename cannot be empty", http.StatusBadRequest)
		return
	}

	log := s.logger.With(zap.String("filename", req.Filename))
	content := reanchor.NewText(req.Content)

	s.mu.Lock()
	defer s.mu.Unlock()

	tracker, exists := s.files[req.Filename]
	if !exists {
		idx, err := reanchor.NewIndex(content, nil)
		if err != nil {
			writeError(w, log, err)
			return
		}
		s.files[req.Filename] = reanchor.NewTracker(idx, reanchor.WithLogger(s.logger))
		log.Info("caching initial content", zap.Int("length", len(content)))
		writeJSON(w, http.StatusCreated, UpdateResponse{
			Filename: req.Filename,
			Created:  true,
			Stats:    Stats{Total: len(content), Insertions: len(content)},
			Current:  map[reanchor.AnnotationID][]int{},
		})
		return
	}

	res, err := tracker.Advance(content)
	if err != nil {
		writeError(w, log, err)
		return
	}
	s.metrics.observe(res)
	if res.Stats.Insertions == 0 && res.Stats.Deletions == 0 {
		log.Info("no changes detected")
	} else {
		added, removed, start := reanchor.FirstChange(res.Records)
		log.Info("changes detected",
			zap.Int("firstChangeAt", start),
			zap.String("removed", removed),
			zap.String("added", added),
			zap.Int("insertions", res.Stats.Insertions),
			zap.Int("deletions", res.Stats.Deletions),
			zap.Int("kept", res.Index.Len()),
			zap.Int("lost", len(res.Lost)))
	}

	writeJSON(w, http.StatusOK, UpdateResponse{
		Filename: req.Filename,
		Stats:    Stats(res.Stats),
		Lost:     res.Lost,
		Current:  snapshot(res.Index),
	})
}

// annotateHandler starts tracking a pattern in a cached file.
func (s *Server) annotateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST method is allowed", http.StatusMethodNotAllowed)
		return
	}
	var req AnnotateRequest
	if !s.decode(w, r, &req) {
		return
	}

	id := reanchor.AnnotationID(req.ID)
	if id == "" {
		id = reanchor.NewAnnotationID()
	}
	log := s.logger.With(zap.String("filename", req.Filename), zap.String("id", string(id)))

	s.mu.Lock()
	defer s.mu.Unlock()

	tracker, ok := s.files[req.Filename]
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown file %q", req.Filename), http.StatusNotFound)
		return
	}
	_, existed := tracker.Current().Positions(id)
	idx, err := tracker.Track(req.Pattern, id)
	if err != nil {
		writeError(w, log, err)
		return
	}
	if !existed {
		s.metrics.annotations.Inc()
	}
	positions, _ := idx.Positions(id)
	log.Info("annotation tracked", zap.Int("positions", len(positions)))
	writeJSON(w, http.StatusOK, AnnotateResponse{ID: id, Positions: positions})
}

// annotationsHandler lists the current positions of a file's annotations.
func (s *Server) annotationsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Only GET method is allowed", http.StatusMethodNotAllowed)
		return
	}
	filename := r.URL.Query().Get("filename")

	s.mu.RLock()
	tracker, ok := s.files[filename]
	var current *reanchor.Index
	if ok {
		current = tracker.Current()
	}
	s.mu.RUnlock()

	if !ok {
		http.Error(w, fmt.Sprintf("Unknown file %q", filename), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, AnnotationsResponse{Filename: filename, Annotations: snapshot(current)})
}

// decode reads a JSON body of at most s.maxBodyBytes into v and writes the
// error response itself when it cannot.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return false
		}
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func snapshot(idx *reanchor.Index) map[reanchor.AnnotationID][]int {
	out := make(map[reanchor.AnnotationID][]int, idx.Len())
	for _, id := range idx.IDs() {
		out[id], _ = idx.Positions(id)
	}
	return out
}

func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	if errors.Is(err, reanchor.ErrEmptyPattern) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Error("remap failed", zap.Error(err))
	http.Error(w, "Internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
