package service

import (
	"fmt"

	"beworking/internal/config"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/webhook"
)

// PaymentGateway is the part of Stripe the subscription flow talks to.
type PaymentGateway interface {
	Configured() bool
	CreateCustomer(email, name string, userID int64) (string, error)
	CreateSubscriptionCheckout(customerID string, userID int64) (string, error)
	ParseWebhook(payload []byte, signature string) (stripe.Event, error)
}

type StripeService struct {
	priceID       string
	webhookSecret string
	successURL    string
	cancelURL     string
}

// NewStripeService sets the process-wide Stripe key from cfg.
func NewStripeService(cfg *config.Config) *StripeService {
	stripe.Key = cfg.StripeSecretKey
	return &StripeService{
		priceID:       cfg.StripePriceID,
		webhookSecret: cfg.StripeWebhookSecret,
		successURL:    cfg.StripeSuccessURL,
		cancelURL:     cfg.StripeCancelURL,
	}
}

func (s *StripeService) Configured() bool {
	return stripe.Key != "" && s.priceID != ""
}

func (s *StripeService) CreateCustomer(email, name string, userID int64) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	params.AddMetadata("user_id", fmt.Sprint(userID))

	c, err := customer.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: create customer: %w", err)
	}
	return c.ID, nil
}

// CreateSubscriptionCheckout opens a subscription-mode Checkout Session for the
// configured price and returns the hosted page URL.
func (s *StripeService) CreateSubscriptionCheckout(customerID string, userID int64) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(customerID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.priceID),
				Quantity: stripe.Int64(1),
			},
		},
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL:        stripe.String(s.successURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(s.cancelURL),
		ClientReferenceID: stripe.String(fmt.Sprint(userID)),
	}

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: create checkout session: %w", err)
	}
	return sess.URL, nil
}

// ParseWebhook verifies the Stripe-Signature header against the webhook secret.
func (s *StripeService) ParseWebhook(payload []byte, signature string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
}
