package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"beworking/internal/db"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

const userColumns = `
	id, name, email, password_hash,
	COALESCE(phone, ''), COALESCE(company, ''),
	COALESCE(billing_address, ''), COALESCE(billing_city, ''),
	COALESCE(billing_country, ''), COALESCE(billing_postal_code, ''),
	COALESCE(stripe_customer_id, ''), COALESCE(stripe_subscription_id, ''),
	subscription_status, subscription_start_date, subscription_end_date,
	created_at, updated_at`

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*db.User, error)
	GetByEmail(ctx context.Context, email string) (*db.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *db.User) error
	UpdateProfile(ctx context.Context, user *db.User) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*db.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT"+userColumns+" FROM users WHERE id = $1", id)
	return scanUser(row, fmt.Sprintf("user %d", id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*db.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT"+userColumns+" FROM users WHERE email = $1", email)
	return scanUser(row, fmt.Sprintf("user with email '%s'", email))
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return exists, nil
}

func (r *userRepository) Create(ctx context.Context, user *db.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, subscription_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	if user.SubscriptionStatus == "" {
		user.SubscriptionStatus = db.SubscriptionNone
	}
	err := r.db.QueryRowContext(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.SubscriptionStatus,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *db.User) error {
	query := `
		UPDATE users
		SET
			name = $2,
			phone = NULLIF($3, ''),
			company = NULLIF($4, ''),
			billing_address = NULLIF($5, ''),
			billing_city = NULLIF($6, ''),
			billing_country = NULLIF($7, ''),
			billing_postal_code = NULLIF($8, ''),
			updated_at = $9
		WHERE id = $1`
	user.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Phone,
		user.Company,
		user.BillingAddress,
		user.BillingCity,
		user.BillingCountry,
		user.BillingPostalCode,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error updating profile of user %d: %w", user.ID, err)
	}
	return expectAffected(result, fmt.Sprintf("user %d", user.ID))
}

func scanUser(row *sql.Row, what string) (*db.User, error) {
	var u db.User
	var start, end sql.NullTime
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&u.Phone, &u.Company,
		&u.BillingAddress, &u.BillingCity,
		&u.BillingCountry, &u.BillingPostalCode,
		&u.StripeCustomerID, &u.StripeSubscriptionID,
		&u.SubscriptionStatus, &start, &end,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", what, ErrNotFound)
		}
		return nil, fmt.Errorf("error querying %s: %w", what, err)
	}
	if start.Valid {
		u.SubscriptionStartDate = &start.Time
	}
	if end.Valid {
		u.SubscriptionEndDate = &end.Time
	}
	return &u, nil
}

func expectAffected(result sql.Result, what string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected for %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
