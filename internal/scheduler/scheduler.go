package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"assistant-backend/internal/analytics"
	recengine "assistant-backend/internal/recommendation/engine"

	"github.com/robfig/cron/v3"
)

// Handler is one background job body. Jobs run to completion once started;
// shutdown only stops future ticks.
type Handler func(ctx context.Context) error

// Job pairs a cron cadence with its handler. Entries tick independently of
// each other.
type Job struct {
	Name     string
	Spec     string // cron expression
	Schedule string // human-readable cadence for status reporting
	Run      Handler
}

// JobStatus is one entry of the status report.
type JobStatus struct {
	Name     string `json:"name"`
	Schedule string `json:"schedule"`
}

// Status describes the scheduler's current state.
type Status struct {
	Running    bool        `json:"running"`
	ActiveJobs int         `json:"active_jobs"`
	Jobs       []JobStatus `json:"jobs"`
}

// Scheduler drives the periodic background jobs. Start and Stop are
// idempotent: repeating either is a warning-level no-op.
type Scheduler struct {
	mu      sync.Mutex
	cron    *cron.Cron
	jobs    []Job
	running bool
}

// New creates a scheduler over the given job table.
func New(jobs ...Job) *Scheduler {
	return &Scheduler{jobs: jobs}
}

// Jobs builds the standard job table wired to the analytics and
// recommendation engines.
func Jobs(analyticsEngine *analytics.Engine, recommendationEngine *recengine.Engine) []Job {
	return []Job{
		{
			Name:     "missed_meetings",
			Spec:     "*/30 * * * *",
			Schedule: "Every 30 minutes",
			Run:      analyticsEngine.DetectMissedMeetings,
		},
		{
			Name:     "daily_insights",
			Spec:     "0 9 * * *",
			Schedule: "Daily at 9 AM",
			Run:      analyticsEngine.GenerateDailyInsights,
		},
		{
			Name:     "focus_patterns",
			Spec:     "0 * * * *",
			Schedule: "Every hour",
			Run:      analyticsEngine.AnalyzeFocusPatterns,
		},
		{
			Name:     "recommendations",
			Spec:     "0 * * * *",
			Schedule: "Every hour",
			Run:      recommendationEngine.GenerateAll,
		},
		{
			Name:     "preference_learning",
			Spec:     "0 */6 * * *",
			Schedule: "Every 6 hours",
			Run:      analyticsEngine.UpdateUserPreferences,
		},
		{
			Name:     "cleanup",
			Spec:     "0 0 * * 0",
			Schedule: "Weekly (Sunday midnight)",
			Run:      analyticsEngine.CleanupOldInsights,
		},
	}
}

// Start registers every job and begins ticking. Calling Start on a running
// scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		log.Println("[Scheduler] Already running")
		return
	}

	s.cron = cron.New()
	for _, job := range s.jobs {
		job := job
		_, err := s.cron.AddFunc(job.Spec, func() {
			s.runJob(job)
		})
		if err != nil {
			log.Printf("[Scheduler] Failed to register job %s: %v", job.Name, err)
		}
	}

	s.cron.Start()
	s.running = true
	log.Printf("[Scheduler] Started with %d jobs", len(s.jobs))
}

// Stop stops scheduling future ticks; in-flight jobs finish on their own.
// Calling Stop on a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		log.Println("[Scheduler] Not running")
		return
	}

	s.cron.Stop()
	s.cron = nil
	s.running = false
	log.Println("[Scheduler] Stopped")
}

// GetStatus reports whether the scheduler runs and which jobs it carries.
func (s *Scheduler) GetStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := Status{
		Running:    s.running,
		ActiveJobs: len(s.jobs),
		Jobs:       make([]JobStatus, 0, len(s.jobs)),
	}
	for _, job := range s.jobs {
		status.Jobs = append(status.Jobs, JobStatus{Name: job.Name, Schedule: job.Schedule})
	}
	return status
}

// RunJob triggers one job by name, bypassing its schedule. Used by the manual
// trigger endpoint and tests.
func (s *Scheduler) RunJob(ctx context.Context, name string) error {
	for _, job := range s.jobs {
		if job.Name == name {
			return job.Run(ctx)
		}
	}
	return fmt.Errorf("unknown job: %s", name)
}

func (s *Scheduler) runJob(job Job) {
	start := time.Now()
	log.Printf("[Scheduler] Running job: %s", job.Name)
	if err := job.Run(context.Background()); err != nil {
		log.Printf("[Scheduler] Job %s failed after %s: %v", job.Name, time.Since(start).Round(time.Millisecond), err)
		return
	}
	log.Printf("[Scheduler] Job %s finished in %s", job.Name, time.Since(start).Round(time.Millisecond))
}
