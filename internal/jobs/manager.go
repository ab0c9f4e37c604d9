// Package jobs runs the background maintenance tasks on a gocron scheduler.
package jobs

import (
	"fmt"

	"dnl-site-backend-go/internal/logger"

	"github.com/go-co-op/gocron/v2"
)

// Job is one scheduled task.
type Job interface {
	Name() string
	Schedule() gocron.JobDefinition
	Execute()
}

type Manager struct {
	scheduler gocron.Scheduler
	jobs      []Job
}

func NewManager(jobs ...Job) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	m := &Manager{scheduler: s}
	for _, job := range jobs {
		if err := m.Register(job); err != nil {
			_ = s.Shutdown()
			return nil, err
		}
	}
	return m, nil
}

// Register adds a job. A job never overlaps with its own previous run.
func (m *Manager) Register(job Job) error {
	_, err := m.scheduler.NewJob(
		job.Schedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.Name()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("register job %s: %w", job.Name(), err)
	}
	m.jobs = append(m.jobs, job)
	return nil
}

func (m *Manager) Start() {
	m.scheduler.Start()
	logger.Info("[jobs] scheduler started with %d jobs", len(m.jobs))
}

func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Warn("[jobs] scheduler shutdown: %v", err)
		return
	}
	logger.Info("[jobs] scheduler stopped")
}
