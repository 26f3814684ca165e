package repository

import (
	"context"
	"database/sql"
	"fmt"

	"beworking/internal/db"
)

type MailboxRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]db.MailboxItem, error)
	Create(ctx context.Context, item *db.MailboxItem) error
}

type mailboxRepository struct {
	db *sql.DB
}

func NewMailboxRepository(db *sql.DB) MailboxRepository {
	return &mailboxRepository{db: db}
}

func (r *mailboxRepository) ListByUser(ctx context.Context, userID int64) ([]db.MailboxItem, error) {
	query := `
		SELECT id, user_id, subject, message, timestamp, COALESCE(pdf_url, '')
		FROM mailbox_items
		WHERE user_id = $1
		ORDER BY timestamp DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying mailbox of user %d: %w", userID, err)
	}
	defer rows.Close()

	items := []db.MailboxItem{}
	for rows.Next() {
		var it db.MailboxItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.Subject, &it.Message, &it.Timestamp, &it.PDFURL); err != nil {
			return nil, fmt.Errorf("error scanning mailbox item: %w", err)
		}
		items = append(items, it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating mailbox rows: %w", err)
	}
	return items, nil
}

func (r *mailboxRepository) Create(ctx context.Context, item *db.MailboxItem) error {
	query := `
		INSERT INTO mailbox_items (user_id, subject, message, timestamp, pdf_url)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, item.UserID, item.Subject, item.Message, item.Timestamp, item.PDFURL).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("error inserting mailbox item: %w", err)
	}
	return nil
}
