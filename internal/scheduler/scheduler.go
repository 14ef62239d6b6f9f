package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Refresher is what the scheduler keeps fresh; weather.Gateway satisfies it.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler periodically refetches the weather for the current location.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	interval  time.Duration
}

// New creates a new Scheduler. An interval of zero or less disables it.
func New(interval time.Duration, refresher Refresher) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		refresher: refresher,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: refresh interval not set; periodic refresh disabled")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 1
	}

	_, err := s.scheduler.Every(minutes).Minutes().WaitForSchedule().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run() {
	log.Println("scheduler: running weather refresh job")

	if err := s.refresher.Refresh(context.Background()); err != nil {
		log.Printf("scheduler: refresh failed: %v", err)
		return
	}
	log.Println("scheduler: completed weather refresh job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
