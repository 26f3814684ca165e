package db

import "time"

const (
	SubscriptionNone      = "NONE"
	SubscriptionActive    = "ACTIVE"
	SubscriptionPastDue   = "PAST_DUE"
	SubscriptionCancelled = "CANCELLED"
	SubscriptionExpired   = "EXPIRED"
)

type User struct {
	ID                    int64
	Name                  string
	Email                 string
	PasswordHash          string
	Phone                 string
	Company               string
	BillingAddress        string
	BillingCity           string
	BillingCountry        string
	BillingPostalCode     string
	StripeCustomerID      string
	StripeSubscriptionID  string
	SubscriptionStatus    string
	SubscriptionStartDate *time.Time
	SubscriptionEndDate   *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Booking dates are "YYYY-MM-DD" and hours "HH:MM", as read back from Postgres.
type Booking struct {
	ID        int64
	UserID    int64
	Product   string
	Date      string
	StartHour string
	EndHour   string
	Attendees int
	CreatedAt time.Time
}

type MailboxItem struct {
	ID        int64
	UserID    int64
	Subject   string
	Message   string
	Timestamp time.Time
	PDFURL    string
}
