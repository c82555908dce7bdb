package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/topicscout/scout/internal/artifact"
	"github.com/topicscout/scout/internal/metrics"
	"github.com/topicscout/scout/internal/pipeline"
	"github.com/topicscout/scout/internal/report"
	"github.com/topicscout/scout/internal/synth"
)

// Researcher runs the research pipeline for one topic
// (internal/pipeline.Agent).
type Researcher interface {
	Research(ctx context.Context, topic string, progress func(pipeline.Stage)) synth.Record
}

// Runner executes research jobs in background workers, one per job, and
// records progress in the Store. Started jobs run to completion; there is no
// cancellation.
type Runner struct {
	store     *Store
	agent     Researcher
	artifacts *artifact.Store
	logger    *slog.Logger
	group     errgroup.Group
	pending   sync.WaitGroup
}

// NewRunner creates a Runner. maxConcurrent <= 0 means unlimited workers.
func NewRunner(store *Store, agent Researcher, artifacts *artifact.Store, maxConcurrent int, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{
		store:     store,
		agent:     agent,
		artifacts: artifacts,
		logger:    logger,
	}
	if maxConcurrent > 0 {
		r.group.SetLimit(maxConcurrent)
	}
	return r
}

// NewID returns a timestamp-derived job id, safe for filenames and URL path
// segments: seconds plus microseconds, digits only.
func NewID(now time.Time) string {
	return now.Format("20060102150405") + fmt.Sprintf("%06d", now.Nanosecond()/1000)
}

// Start registers a job for topic and launches its worker. The call returns
// immediately with the job id.
func (r *Runner) Start(topic string) string {
	id := NewID(time.Now())
	// Microsecond ids can collide under concurrent submissions.
	for {
		if _, exists := r.store.Get(id); !exists {
			break
		}
		time.Sleep(time.Microsecond)
		id = NewID(time.Now())
	}
	r.store.Create(id, topic)

	// group.Go blocks while the pool is saturated; park that wait off the
	// caller's goroutine so a full pool queues the job instead of stalling
	// the submit request. The job stays in the initializing state until a
	// worker picks it up.
	r.pending.Add(1)
	go func() {
		r.group.Go(func() error {
			defer r.pending.Done()
			r.run(id, topic)
			return nil
		})
	}()
	return id
}

// Wait blocks until all started jobs, queued ones included, have finished.
// Used for drain on shutdown and in tests.
func (r *Runner) Wait() {
	r.pending.Wait()
}

// run executes one job start to finish. The pipeline itself cannot fail; a
// panic anywhere in the worker is the only way to reach the error status.
func (r *Runner) run(id, topic string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("research job panicked", "job", id, "panic", rec)
			metrics.JobsTotal.WithLabelValues(string(StatusError)).Inc()
			_ = r.store.Update(id, func(j *Job) {
				j.Status = StatusError
				j.Error = fmt.Sprint(rec)
				j.Message = "Research failed"
			})
		}
	}()

	r.logger.Info("research job started", "job", id, "topic", topic)

	record := r.agent.Research(context.Background(), topic, func(stage pipeline.Stage) {
		_ = r.store.Update(id, func(j *Job) {
			switch stage {
			case pipeline.StageSearching:
				j.Status = StatusSearching
				j.Message = "Searching for reliable sources..."
			case pipeline.StageAnalyzing:
				j.Status = StatusAnalyzing
				j.Message = "Analyzing content..."
			}
		})
	})

	markdown, err := report.Render(record, topic, time.Now())
	if err != nil {
		r.fail(id, fmt.Errorf("rendering briefing: %w", err))
		return
	}
	html, err := report.RenderHTML(markdown)
	if err != nil {
		r.fail(id, fmt.Errorf("rendering briefing HTML: %w", err))
		return
	}

	art, err := r.artifacts.Save(id, markdown)
	if err != nil {
		r.fail(id, fmt.Errorf("saving briefing: %w", err))
		return
	}

	_ = r.store.Update(id, func(j *Job) {
		j.Status = StatusCompleted
		j.Message = "Research completed"
		j.Presentation = markdown
		j.HTMLContent = html
		j.Filename = art.Filename
		j.Filepath = art.Filepath
	})
	metrics.JobsTotal.WithLabelValues(string(StatusCompleted)).Inc()
	r.logger.Info("research job completed", "job", id, "file", art.Filepath)
}

func (r *Runner) fail(id string, err error) {
	r.logger.Error("research job failed", "job", id, "error", err)
	metrics.JobsTotal.WithLabelValues(string(StatusError)).Inc()
	_ = r.store.Update(id, func(j *Job) {
		j.Status = StatusError
		j.Error = err.Error()
		j.Message = "Research failed"
	})
}
