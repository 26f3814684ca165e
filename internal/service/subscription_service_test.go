package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"beworking/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
)

var subscriptionNow = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

func newSubscriptionFixture(gw *fakeGateway, users ...db.User) (SubscriptionService, *fakeUserRepo) {
	repo := newFakeUserRepo(users...)
	svc := NewSubscriptionService(gw, repo, &fakeSubscriptionRepo{users: repo}, zap.NewNop(), fixedClock(subscriptionNow))
	return svc, repo
}

func stripeEvent(eventType, raw string) stripe.Event {
	return stripe.Event{Type: stripe.EventType(eventType), Data: &stripe.EventData{Raw: json.RawMessage(raw)}}
}

func TestSubscriptionService_CreateCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		svc, _ := newSubscriptionFixture(&fakeGateway{}, db.User{ID: 1})
		_, err := svc.CreateCheckout(ctx, 1)
		assertStatus(t, err, http.StatusInternalServerError, "Payments are not configured")
	})

	t.Run("creates the customer once", func(t *testing.T) {
		gw := &fakeGateway{configured: true}
		svc, repo := newSubscriptionFixture(gw, db.User{ID: 1, Name: "Ana", Email: "ana@example.com"})

		resp, err := svc.CreateCheckout(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "https://checkout.stripe.test/cus_1", resp.URL)
		assert.Equal(t, "cus_1", repo.users[1].StripeCustomerID)

		_, err = svc.CreateCheckout(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, gw.customers)
		assert.Equal(t, "cus_1", gw.lastCust)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		svc, _ := newSubscriptionFixture(&fakeGateway{configured: true})
		_, err := svc.CreateCheckout(ctx, 5)
		assertStatus(t, err, http.StatusNotFound, "User not found")
	})
}

func TestSubscriptionService_HandleWebhook(t *testing.T) {
	ctx := context.Background()

	t.Run("bad signature", func(t *testing.T) {
		svc, _ := newSubscriptionFixture(&fakeGateway{parseErr: errors.New("no signatures found")})
		err := svc.HandleWebhook(ctx, []byte(`{}`), "t=1,v1=bad")
		assertStatus(t, err, http.StatusBadRequest, "Invalid signature")
	})

	t.Run("checkout completed activates the tenant", func(t *testing.T) {
		gw := &fakeGateway{event: stripeEvent("checkout.session.completed",
			`{"id":"cs_1","object":"checkout.session","customer":"cus_1","subscription":"sub_1"}`)}
		svc, repo := newSubscriptionFixture(gw, db.User{ID: 1, StripeCustomerID: "cus_1", SubscriptionStatus: db.SubscriptionNone})

		require.NoError(t, svc.HandleWebhook(ctx, nil, "sig"))
		u := repo.users[1]
		assert.Equal(t, db.SubscriptionActive, u.SubscriptionStatus)
		assert.Equal(t, "sub_1", u.StripeSubscriptionID)
		require.NotNil(t, u.SubscriptionStartDate)
		assert.True(t, u.SubscriptionStartDate.Equal(subscriptionNow))
	})

	t.Run("checkout falls back to the client reference", func(t *testing.T) {
		gw := &fakeGateway{event: stripeEvent("checkout.session.completed",
			`{"id":"cs_2","object":"checkout.session","customer":"cus_other","client_reference_id":"1","subscription":"sub_2"}`)}
		svc, repo := newSubscriptionFixture(gw, db.User{ID: 1})

		require.NoError(t, svc.HandleWebhook(ctx, nil, "sig"))
		assert.Equal(t, db.SubscriptionActive, repo.users[1].SubscriptionStatus)
	})

	t.Run("checkout for an unknown tenant is ignored", func(t *testing.T) {
		gw := &fakeGateway{event: stripeEvent("checkout.session.completed",
			`{"id":"cs_3","object":"checkout.session","customer":"cus_zzz"}`)}
		svc, _ := newSubscriptionFixture(gw)
		assert.NoError(t, svc.HandleWebhook(ctx, nil, "sig"))
	})

	t.Run("subscription status mapping", func(t *testing.T) {
		cases := map[string]string{
			"active":             db.SubscriptionActive,
			"past_due":           db.SubscriptionPastDue,
			"canceled":           db.SubscriptionCancelled,
			"unpaid":             db.SubscriptionCancelled,
			"incomplete":         db.SubscriptionActive,
			"incomplete_expired": db.SubscriptionActive,
		}
		for stripeStatus, want := range cases {
			gw := &fakeGateway{event: stripeEvent("customer.subscription.updated",
				`{"id":"sub_1","object":"subscription","status":"`+stripeStatus+`"}`)}
			svc, repo := newSubscriptionFixture(gw, db.User{ID: 1, StripeSubscriptionID: "sub_1", SubscriptionStatus: db.SubscriptionActive})
			require.NoError(t, svc.HandleWebhook(ctx, nil, "sig"))
			assert.Equal(t, want, repo.users[1].SubscriptionStatus, stripeStatus)
		}
	})

	t.Run("subscription update stores the billing period", func(t *testing.T) {
		gw := &fakeGateway{event: stripeEvent("customer.subscription.updated",
			`{"id":"sub_1","object":"subscription","status":"active","items":{"object":"list","data":[{"id":"si_1","object":"subscription_item","current_period_start":1718000000,"current_period_end":1720592000}]}}`)}
		svc, repo := newSubscriptionFixture(gw, db.User{ID: 1, StripeSubscriptionID: "sub_1"})

		require.NoError(t, svc.HandleWebhook(ctx, nil, "sig"))
		u := repo.users[1]
		require.NotNil(t, u.SubscriptionStartDate)
		require.NotNil(t, u.SubscriptionEndDate)
		assert.Equal(t, int64(1718000000), u.SubscriptionStartDate.Unix())
		assert.Equal(t, int64(1720592000), u.SubscriptionEndDate.Unix())
	})

	t.Run("subscription deleted expires the tenant", func(t *testing.T) {
		gw := &fakeGateway{event: stripeEvent("customer.subscription.deleted",
			`{"id":"sub_1","object":"subscription","status":"canceled"}`)}
		svc, repo := newSubscriptionFixture(gw, db.User{ID: 1, StripeSubscriptionID: "sub_1", SubscriptionStatus: db.SubscriptionActive})

		require.NoError(t, svc.HandleWebhook(ctx, nil, "sig"))
		assert.Equal(t, db.SubscriptionExpired, repo.users[1].SubscriptionStatus)
	})

	t.Run("unhandled events are acknowledged", func(t *testing.T) {
		gw := &fakeGateway{event: stripeEvent("invoice.paid", `{"id":"in_1"}`)}
		svc, _ := newSubscriptionFixture(gw)
		assert.NoError(t, svc.HandleWebhook(ctx, nil, "sig"))
	})
}
