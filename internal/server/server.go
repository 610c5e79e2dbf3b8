// Package server is the thin HTTP surface over the pipeline: one processing
// endpoint plus liveness, readiness and status probes. It owns upload
// temp-file lifecycle and nothing else; persistence belongs to the caller.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"voice-expense-go/internal/logger"
	"voice-expense-go/internal/pipeline"
)

type Server struct {
	pipe      *pipeline.Pipeline
	log       *logger.Logger
	tempDir   string
	maxUpload int64
}

func New(pipe *pipeline.Pipeline, tempDir string, maxUpload int64, log *logger.Logger) *Server {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Server{pipe: pipe, log: log, tempDir: tempDir, maxUpload: maxUpload}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/status", s.handleStatus)
	r.Post("/process", s.handleProcess)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "ok")
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.pipe.Ready() {
		http.Error(w, "models loading", http.StatusServiceUnavailable)
		return
	}
	fmt.Fprint(w, "ready")
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.pipe.Status())
}

// handleProcess receives one audio upload, runs the pipeline and returns the
// candidate for user review. The temp file is removed on every exit path.
// Pipeline-level failures still answer 200 with an error-shaped candidate;
// only malformed requests get transport errors.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "process")
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, header, err := r.FormFile("file")
	if err != nil {
		reqLog.WithError(err).Warn("missing or oversized upload")
		http.Error(w, "expected multipart field 'file'", http.StatusBadRequest)
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp(s.tempDir, "clip-*"+filepath.Ext(header.Filename))
	if err != nil {
		reqLog.WithError(err).Error("temp file create failed")
		http.Error(w, "server storage error", http.StatusInternalServerError)
		return
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		reqLog.WithError(err).Warn("upload copy failed")
		http.Error(w, "upload read error", http.StatusBadRequest)
		return
	}
	tmp.Close()

	candidate := s.pipe.Process(r.Context(), tmp.Name())

	reqLog.WithField("category", candidate.Category).
		WithField("duration_ms", time.Since(start).Milliseconds()).
		Info("process request finished")
	writeJSON(w, http.StatusOK, candidate)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
