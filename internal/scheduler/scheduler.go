package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"homeledger/internal/service"
)

// Scheduler runs the background price-refresh sweep on a cron spec.
type Scheduler struct {
	cron           *cron.Cron
	refreshService *service.RefreshService
}

// New creates a Scheduler that sweeps refresh-due households on the given
// cron spec (e.g. "@every 5m").
func New(refreshService *service.RefreshService, spec string) (*Scheduler, error) {
	s := &Scheduler{
		cron:           cron.New(),
		refreshService: refreshService,
	}

	_, err := s.cron.AddFunc(spec, func() {
		s.refreshService.RefreshDueHouseholds(context.Background())
	})
	if err != nil {
		return nil, fmt.Errorf("invalid refresh cron spec %q: %w", spec, err)
	}

	return s, nil
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	log.Println("Starting price refresh scheduler")
	s.cron.Start()
}

// Stop halts the cron loop and waits for any running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Price refresh scheduler stopped")
}
