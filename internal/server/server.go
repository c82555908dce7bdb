// Package server exposes the briefing service over HTTP: job submission,
// status polling, briefing download, health, and metrics.
package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/topicscout/scout/internal/artifact"
	"github.com/topicscout/scout/internal/jobs"
	"github.com/topicscout/scout/internal/report"
)

// maxTopicLen bounds submitted topics.
const maxTopicLen = 200

// Server wires HTTP handlers over the job table and runner.
type Server struct {
	store  *jobs.Store
	runner *jobs.Runner
	logger *slog.Logger
}

// NewRouter builds the chi router for the briefing service.
func NewRouter(store *jobs.Store, runner *jobs.Runner, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{store: store, runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Post("/research", s.handleSubmit)
	r.Get("/research/{id}", s.handleStatus)
	r.Get("/download/{id}", s.handleDownload)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Resource not found")
	})
	return r
}

type submitRequest struct {
	Topic string `json:"topic"`
}

type submitResponse struct {
	ResultID string `json:"result_id"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "No JSON data provided")
		return
	}

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		writeError(w, http.StatusBadRequest, "Topic is required")
		return
	}
	if len(topic) > maxTopicLen {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Topic too long (max %d characters)", maxTopicLen))
		return
	}

	id := s.runner.Start(topic)
	s.logger.Info("research job submitted", "job", id, "topic", topic)

	writeJSON(w, http.StatusOK, submitResponse{
		ResultID: id,
		Status:   string(jobs.StatusInitializing),
		Message:  "Research started",
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !artifact.SafeID(id) {
		writeError(w, http.StatusBadRequest, "Invalid research ID")
		return
	}

	job, ok := s.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Research not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !artifact.SafeID(id) {
		writeError(w, http.StatusBadRequest, "Invalid research ID")
		return
	}

	job, ok := s.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Research not found")
		return
	}
	if job.Status != jobs.StatusCompleted {
		writeError(w, http.StatusBadRequest, "Research not completed")
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", report.DownloadName(job.Topic)))
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	http.ServeFile(w, r, job.Filepath)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
