package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"beworking/internal/db"
	"beworking/internal/entities"
	httperrors "beworking/internal/errors"
	"beworking/internal/repository"

	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
)

type SubscriptionService interface {
	CreateCheckout(ctx context.Context, userID int64) (*entities.CheckoutResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type subscriptionService struct {
	gateway PaymentGateway
	users   repository.UserRepository
	subs    repository.SubscriptionRepository
	log     *zap.Logger
	now     func() time.Time
}

func NewSubscriptionService(gateway PaymentGateway, users repository.UserRepository, subs repository.SubscriptionRepository, log *zap.Logger, now func() time.Time) SubscriptionService {
	return &subscriptionService{gateway: gateway, users: users, subs: subs, log: log, now: now}
}

// CreateCheckout creates the tenant's Stripe customer on first use and returns the URL
// of a subscription Checkout Session.
func (s *subscriptionService) CreateCheckout(ctx context.Context, userID int64) (*entities.CheckoutResponse, error) {
	if !s.gateway.Configured() {
		return nil, httperrors.ErrInternal("Payments are not configured")
	}

	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, httperrors.ErrNotFound("User not found")
	}
	if err != nil {
		return nil, err
	}

	customerID := user.StripeCustomerID
	if customerID == "" {
		customerID, err = s.gateway.CreateCustomer(user.Email, user.Name, user.ID)
		if err != nil {
			return nil, err
		}
		if err := s.subs.SetStripeCustomerID(ctx, user.ID, customerID); err != nil {
			return nil, err
		}
		s.log.Info("stripe customer created", zap.Int64("user_id", user.ID), zap.String("customer_id", customerID))
	}

	url, err := s.gateway.CreateSubscriptionCheckout(customerID, user.ID)
	if err != nil {
		return nil, err
	}
	return &entities.CheckoutResponse{URL: url}, nil
}

// HandleWebhook verifies a Stripe event and applies it to the tenant it belongs to.
// Events for unknown tenants and unhandled event types are acknowledged and ignored.
func (s *subscriptionService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		s.log.Warn("stripe webhook signature verification failed", zap.Error(err))
		return httperrors.ErrBadRequest("Invalid signature")
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return httperrors.ErrBadRequest("Invalid checkout session payload")
		}
		return s.checkoutCompleted(ctx, &sess)

	case "customer.subscription.updated", "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return httperrors.ErrBadRequest("Invalid subscription payload")
		}
		return s.subscriptionChanged(ctx, &sub, event.Type == "customer.subscription.deleted")

	default:
		s.log.Debug("unhandled stripe event", zap.String("type", string(event.Type)))
		return nil
	}
}

func (s *subscriptionService) checkoutCompleted(ctx context.Context, sess *stripe.CheckoutSession) error {
	user, err := s.userForCheckout(ctx, sess)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Warn("checkout completed for unknown tenant", zap.String("session_id", sess.ID))
		return nil
	}
	if err != nil {
		return err
	}

	now := s.now().UTC()
	user.SubscriptionStatus = db.SubscriptionActive
	user.SubscriptionStartDate = &now
	if sess.Subscription != nil && sess.Subscription.ID != "" {
		user.StripeSubscriptionID = sess.Subscription.ID
	}
	if err := s.subs.UpdateSubscription(ctx, user); err != nil {
		return err
	}
	s.log.Info("subscription activated", zap.Int64("user_id", user.ID), zap.String("subscription_id", user.StripeSubscriptionID))
	return nil
}

func (s *subscriptionService) userForCheckout(ctx context.Context, sess *stripe.CheckoutSession) (*db.User, error) {
	if sess.Customer != nil && sess.Customer.ID != "" {
		user, err := s.subs.GetByStripeCustomerID(ctx, sess.Customer.ID)
		if !errors.Is(err, repository.ErrNotFound) {
			return user, err
		}
	}
	if id, err := strconv.ParseInt(sess.ClientReferenceID, 10, 64); err == nil && id > 0 {
		return s.users.GetByID(ctx, id)
	}
	return nil, fmt.Errorf("checkout session %s: %w", sess.ID, repository.ErrNotFound)
}

func (s *subscriptionService) subscriptionChanged(ctx context.Context, sub *stripe.Subscription, deleted bool) error {
	user, err := s.subs.GetByStripeSubscriptionID(ctx, sub.ID)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Warn("subscription event for unknown tenant", zap.String("subscription_id", sub.ID))
		return nil
	}
	if err != nil {
		return err
	}

	if deleted {
		user.SubscriptionStatus = db.SubscriptionExpired
	} else if status, ok := subscriptionStatus(sub.Status); ok {
		user.SubscriptionStatus = status
	}
	if start, end, ok := currentPeriod(sub); ok {
		user.SubscriptionStartDate = &start
		user.SubscriptionEndDate = &end
	}

	if err := s.subs.UpdateSubscription(ctx, user); err != nil {
		return err
	}
	s.log.Info("subscription updated",
		zap.Int64("user_id", user.ID),
		zap.String("stripe_status", string(sub.Status)),
		zap.String("status", user.SubscriptionStatus),
	)
	return nil
}

func subscriptionStatus(status stripe.SubscriptionStatus) (string, bool) {
	switch status {
	case stripe.SubscriptionStatusActive:
		return db.SubscriptionActive, true
	case stripe.SubscriptionStatusPastDue:
		return db.SubscriptionPastDue, true
	case stripe.SubscriptionStatusCanceled, stripe.SubscriptionStatusUnpaid:
		return db.SubscriptionCancelled, true
	default:
		return "", false
	}
}

// currentPeriod reads the billing period from the first subscription item.
func currentPeriod(sub *stripe.Subscription) (time.Time, time.Time, bool) {
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return time.Time{}, time.Time{}, false
	}
	item := sub.Items.Data[0]
	if item.CurrentPeriodStart == 0 || item.CurrentPeriodEnd == 0 {
		return time.Time{}, time.Time{}, false
	}
	return time.Unix(item.CurrentPeriodStart, 0).UTC(), time.Unix(item.CurrentPeriodEnd, 0).UTC(), true
}
