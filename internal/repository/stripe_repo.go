package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"beworking/internal/db"
)

// SubscriptionRepository stores the Stripe side of a tenant: customer id, subscription id
// and the subscription lifecycle columns of the users table.
type SubscriptionRepository interface {
	SetStripeCustomerID(ctx context.Context, userID int64, customerID string) error
	GetByStripeCustomerID(ctx context.Context, customerID string) (*db.User, error)
	GetByStripeSubscriptionID(ctx context.Context, subscriptionID string) (*db.User, error)
	UpdateSubscription(ctx context.Context, user *db.User) error
}

type StripeRepository struct {
	DB *sql.DB
}

func NewStripeRepository(db *sql.DB) *StripeRepository {
	return &StripeRepository{DB: db}
}

func (r *StripeRepository) SetStripeCustomerID(ctx context.Context, userID int64, customerID string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE users SET stripe_customer_id = $2, updated_at = $3 WHERE id = $1`,
		userID, customerID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("error storing Stripe customer for user %d: %w", userID, err)
	}
	return expectAffected(result, fmt.Sprintf("user %d", userID))
}

func (r *StripeRepository) GetByStripeCustomerID(ctx context.Context, customerID string) (*db.User, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT"+userColumns+" FROM users WHERE stripe_customer_id = $1", customerID)
	return scanUser(row, fmt.Sprintf("user with Stripe customer '%s'", customerID))
}

func (r *StripeRepository) GetByStripeSubscriptionID(ctx context.Context, subscriptionID string) (*db.User, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT"+userColumns+" FROM users WHERE stripe_subscription_id = $1", subscriptionID)
	return scanUser(row, fmt.Sprintf("user with Stripe subscription '%s'", subscriptionID))
}

func (r *StripeRepository) UpdateSubscription(ctx context.Context, user *db.User) error {
	query := `
		UPDATE users
		SET
			stripe_subscription_id = NULLIF($2, ''),
			subscription_status = $3,
			subscription_start_date = $4,
			subscription_end_date = $5,
			updated_at = $6
		WHERE id = $1`

	user.UpdatedAt = time.Now().UTC()
	result, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.StripeSubscriptionID,
		user.SubscriptionStatus,
		nullTime(user.SubscriptionStartDate),
		nullTime(user.SubscriptionEndDate),
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error updating subscription of user %d: %w", user.ID, err)
	}
	return expectAffected(result, fmt.Sprintf("user %d", user.ID))
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
