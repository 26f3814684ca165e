package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"beworking/internal/db"
	"beworking/internal/repository"

	"github.com/stripe/stripe-go/v82"
)

type fakeUserRepo struct {
	users  map[int64]*db.User
	nextID int64
}

func newFakeUserRepo(users ...db.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[int64]*db.User{}, nextID: 100}
	for i := range users {
		u := users[i]
		r.users[u.ID] = &u
	}
	return r
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*db.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, repository.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*db.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user '%s': %w", email, repository.ErrNotFound)
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *db.User) error {
	r.nextID++
	user.ID = r.nextID
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *db.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

// fakeSubscriptionRepo shares storage with a fakeUserRepo.
type fakeSubscriptionRepo struct {
	users *fakeUserRepo
}

func (r *fakeSubscriptionRepo) SetStripeCustomerID(_ context.Context, userID int64, customerID string) error {
	u, ok := r.users.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.StripeCustomerID = customerID
	return nil
}

func (r *fakeSubscriptionRepo) GetByStripeCustomerID(_ context.Context, customerID string) (*db.User, error) {
	for _, u := range r.users.users {
		if u.StripeCustomerID == customerID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeSubscriptionRepo) GetByStripeSubscriptionID(_ context.Context, subscriptionID string) (*db.User, error) {
	for _, u := range r.users.users {
		if u.StripeSubscriptionID == subscriptionID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeSubscriptionRepo) UpdateSubscription(_ context.Context, user *db.User) error {
	if _, ok := r.users.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *user
	r.users.users[user.ID] = &cp
	return nil
}

type fakeBookingRepo struct {
	bookings  []db.Booking
	nextID    int64
	listErr   error
	createErr error
}

func (r *fakeBookingRepo) ListByUser(_ context.Context, userID int64) ([]db.Booking, error) {
	var out []db.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartHour < out[j].StartHour
	})
	return out, nil
}

func (r *fakeBookingRepo) ListByDateAndProduct(_ context.Context, date, product string) ([]db.Booking, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []db.Booking
	for _, b := range r.bookings {
		if b.Date == date && b.Product == product {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByDate(_ context.Context, date string) ([]db.Booking, error) {
	var out []db.Booking
	for _, b := range r.bookings {
		if b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *db.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	booking.ID = r.nextID
	booking.CreatedAt = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	r.bookings = append(r.bookings, *booking)
	return nil
}

func (r *fakeBookingRepo) DeleteByIDAndUser(_ context.Context, id, userID int64) error {
	for i, b := range r.bookings {
		if b.ID == id && b.UserID == userID {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("booking %d: %w", id, repository.ErrNotFound)
}

type fakeMailboxRepo struct {
	items []db.MailboxItem
}

func (r *fakeMailboxRepo) ListByUser(_ context.Context, userID int64) ([]db.MailboxItem, error) {
	var out []db.MailboxItem
	for _, it := range r.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (r *fakeMailboxRepo) Create(_ context.Context, item *db.MailboxItem) error {
	item.ID = int64(len(r.items) + 1)
	r.items = append(r.items, *item)
	return nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	emails []Email
	sms    []string
	err    error
}

func (n *fakeNotifier) SendEmail(_ context.Context, email Email) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emails = append(n.emails, email)
	return n.err
}

func (n *fakeNotifier) SendSMS(_ context.Context, toNumber, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sms = append(n.sms, toNumber+": "+body)
	return n.err
}

type fakeGateway struct {
	configured bool
	customers  int
	lastCust   string
	event      stripe.Event
	parseErr   error
}

func (g *fakeGateway) Configured() bool { return g.configured }

func (g *fakeGateway) CreateCustomer(email, name string, userID int64) (string, error) {
	g.customers++
	return fmt.Sprintf("cus_%d", userID), nil
}

func (g *fakeGateway) CreateSubscriptionCheckout(customerID string, userID int64) (string, error) {
	g.lastCust = customerID
	return "https://checkout.stripe.test/" + customerID, nil
}

func (g *fakeGateway) ParseWebhook(payload []byte, signature string) (stripe.Event, error) {
	if g.parseErr != nil {
		return stripe.Event{}, g.parseErr
	}
	return g.event, nil
}

type fakeJobRepo struct {
	lapsed  []int64
	updated []int64
	status  string
}

func (r *fakeJobRepo) GetLapsedSubscriptionUserIDs(_ context.Context, _ time.Time) ([]int64, error) {
	return r.lapsed, nil
}

func (r *fakeJobRepo) UpdateSubscriptionStatuses(_ context.Context, ids []int64, newStatus string) (int64, error) {
	r.updated = ids
	r.status = newStatus
	return int64(len(ids)), nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
