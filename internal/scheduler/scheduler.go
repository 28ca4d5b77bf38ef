package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const reviewTimeout = 5 * time.Minute

// Reviewer re-evaluates stored assessments
type Reviewer interface {
	ReviewStoredAssessments(ctx context.Context) (int, error)
}

// Scheduler runs the periodic assessment review
type Scheduler struct {
	cron     *cron.Cron
	reviewer Reviewer
	log      *logrus.Logger
}

// NewScheduler initializes a new scheduler. Overlapping runs are skipped.
func NewScheduler(reviewer Reviewer, log *logrus.Logger) *Scheduler {
	logger := cron.PrintfLogger(log)
	return &Scheduler{
		cron:     cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger))),
		reviewer: reviewer,
		log:      log,
	}
}

// Start registers the review job on schedule and starts the cron loop
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.runReview); err != nil {
		return fmt.Errorf("failed to schedule review %q: %w", schedule, err)
	}
	s.cron.Start()
	s.log.Infof("Assessment review scheduled: %s", schedule)
	return nil
}

// Stop stops the cron loop and waits for a running review to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runReview() {
	ctx, cancel := context.WithTimeout(context.Background(), reviewTimeout)
	defer cancel()

	start := time.Now()
	sent, err := s.reviewer.ReviewStoredAssessments(ctx)
	if err != nil {
		s.log.Errorf("Assessment review failed: %v", err)
		return
	}
	s.log.Infof("Assessment review finished in %s, %d digests sent", time.Since(start), sent)
}
