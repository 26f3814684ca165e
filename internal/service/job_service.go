package service

import (
	"context"
	"fmt"
	"time"

	"beworking/internal/db"

	"go.uber.org/zap"
)

type JobRepository interface {
	GetLapsedSubscriptionUserIDs(ctx context.Context, now time.Time) ([]int64, error)
	UpdateSubscriptionStatuses(ctx context.Context, ids []int64, newStatus string) (int64, error)
}

type JobService struct {
	Repo JobRepository
	log  *zap.Logger
}

func NewJobService(repo JobRepository, log *zap.Logger) *JobService {
	return &JobService{Repo: repo, log: log}
}

// ExpireLapsedSubscriptions marks ACTIVE and PAST_DUE tenants whose billing period ended
// before now as EXPIRED. It returns how many tenants changed.
func (s *JobService) ExpireLapsedSubscriptions(ctx context.Context, now time.Time) (int64, error) {
	ids, err := s.Repo.GetLapsedSubscriptionUserIDs(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("cron job: failed to get lapsed subscriptions: %w", err)
	}
	if len(ids) == 0 {
		s.log.Debug("cron job: no lapsed subscriptions")
		return 0, nil
	}

	s.log.Info("cron job: expiring lapsed subscriptions", zap.Int("count", len(ids)), zap.Int64s("user_ids", ids))

	n, err := s.Repo.UpdateSubscriptionStatuses(ctx, ids, db.SubscriptionExpired)
	if err != nil {
		return 0, fmt.Errorf("cron job: failed to update subscription statuses: %w", err)
	}
	s.log.Info("cron job: subscriptions expired", zap.Int64("updated", n))
	return n, nil
}
