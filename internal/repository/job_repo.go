package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"beworking/internal/db"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{DB: db}
}

// GetLapsedSubscriptionUserIDs returns users still marked as subscribed whose paid
// period ended before now.
func (r *JobRepository) GetLapsedSubscriptionUserIDs(ctx context.Context, now time.Time) ([]int64, error) {
	query := `
		SELECT id FROM users
		WHERE subscription_status = ANY($1)
		  AND subscription_end_date IS NOT NULL
		  AND subscription_end_date < $2`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array([]string{db.SubscriptionActive, db.SubscriptionPastDue}), now)
	if err != nil {
		return nil, fmt.Errorf("error querying lapsed subscriptions: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning user ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

// UpdateSubscriptionStatuses sets newStatus on every listed user and returns how many rows changed.
func (r *JobRepository) UpdateSubscriptionStatuses(ctx context.Context, ids []int64, newStatus string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `UPDATE users SET subscription_status = $1, updated_at = NOW() WHERE id = ANY($2)`
	result, err := r.DB.ExecContext(ctx, query, newStatus, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("error updating subscription statuses: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not get rows affected: %w", err)
	}
	return n, nil
}
