package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const fallbackSpec = "@hourly"

// SubscriptionExpirer is implemented by service.JobService.
type SubscriptionExpirer interface {
	ExpireLapsedSubscriptions(ctx context.Context, now time.Time) (int64, error)
}

// Scheduler runs the periodic subscription maintenance.
type Scheduler struct {
	log     *zap.Logger
	expirer SubscriptionExpirer
	spec    string
	now     func() time.Time

	cron   *cron.Cron
	runCtx context.Context
	cancel context.CancelFunc
}

func NewScheduler(log *zap.Logger, expirer SubscriptionExpirer, spec string) *Scheduler {
	return &Scheduler{log: log, expirer: expirer, spec: spec, now: time.Now}
}

// Start schedules the job on spec, or hourly when spec does not parse.
func (s *Scheduler) Start(ctx context.Context) {
	s.runCtx, s.cancel = context.WithCancel(ctx)
	c := cron.New()
	if _, err := c.AddFunc(s.spec, s.runOnce); err != nil {
		s.log.Warn("jobs: invalid cron spec; falling back", zap.String("spec", s.spec), zap.String("fallback", fallbackSpec), zap.Error(err))
		c = cron.New()
		_, _ = c.AddFunc(fallbackSpec, s.runOnce)
	}
	c.Start()
	s.cron = c
}

// Stop cancels in-flight runs and waits for them to return.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *Scheduler) runOnce() {
	ctx := s.runCtx
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := s.expirer.ExpireLapsedSubscriptions(ctx, s.now().UTC()); err != nil {
		s.log.Error("jobs: subscription expiry failed", zap.Error(err))
	}
}
