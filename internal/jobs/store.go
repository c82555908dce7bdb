// Package jobs tracks research jobs for the briefing server. The table is
// process-lifetime only: one writer per job id (that job's worker goroutine)
// and many readers (status polls).
package jobs

import (
	"fmt"
	"sync"
	"time"
)

// Status is a job lifecycle state.
type Status string

const (
	StatusInitializing Status = "initializing"
	StatusSearching    Status = "searching"
	StatusAnalyzing    Status = "analyzing"
	StatusCompleted    Status = "completed"
	StatusError        Status = "error"
)

// Job is one research job's status record. Completion fields are set only
// when Status is completed; Error only when Status is error.
type Job struct {
	ID           string `json:"result_id"`
	Topic        string `json:"topic"`
	Status       Status `json:"status"`
	Message      string `json:"message"`
	Timestamp    string `json:"timestamp"`
	Presentation string `json:"presentation,omitempty"`
	HTMLContent  string `json:"html_content,omitempty"`
	Filename     string `json:"filename,omitempty"`
	Filepath     string `json:"-"`
	Error        string `json:"error,omitempty"`
}

// Store is a concurrency-safe job table. Jobs are never deleted.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewStore creates an empty job table.
func NewStore() *Store {
	return &Store{jobs: make(map[string]*Job)}
}

// Create registers a new job in the initializing state.
func (s *Store) Create(id, topic string) *Job {
	job := &Job{
		ID:        id,
		Topic:     topic,
		Status:    StatusInitializing,
		Message:   "Initializing research...",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[id] = job
	return job
}

// Get returns a snapshot of the job, so readers never observe a concurrent
// mutation.
func (s *Store) Get(id string) (Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

// Update applies fn to the job under the write lock. Only the worker owning
// the job id may call Update.
func (s *Store) Update(id string, fn func(*Job)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return fmt.Errorf("unknown job %s", id)
	}
	fn(job)
	job.Timestamp = time.Now().Format(time.RFC3339)
	return nil
}

// Len reports how many jobs the table holds.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}
