package paymentsvc

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"

	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/billing"
)

func sign(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

const completedEvent = `{
	"id": "evt_1",
	"object": "event",
	"type": "checkout.session.completed",
	"api_version": "2020-08-27",
	"data": {"object": {"id": "cs_1", "object": "checkout.session", "payment_status": "paid", "metadata": {"uid": "u1"}}}
}`

func TestParseWebhook(t *testing.T) {
	conf := core.NewTestConfig()
	provider := NewStripeProvider(conf)
	payload := []byte(completedEvent)

	t.Run("valid signature", func(t *testing.T) {
		ev, err := provider.ParseWebhook(payload, sign(payload, conf.Stripe.WebhookSecret, time.Now()))
		require.NoError(t, err)
		assert.Equal(t, "evt_1", ev.ID)
		assert.Equal(t, billing.EventCheckoutCompleted, ev.Type)
		require.NotNil(t, ev.Session)
		assert.Equal(t, billing.Session{ID: "cs_1", PaymentStatus: "paid", UserID: "u1"}, *ev.Session)
	})

	tests := []struct {
		name      string
		signature string
	}{
		{name: "wrong secret", signature: sign(payload, "whsec_other", time.Now())},
		{name: "expired timestamp", signature: sign(payload, conf.Stripe.WebhookSecret, time.Now().Add(-time.Hour))},
		{name: "garbage", signature: "nope"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := provider.ParseWebhook(payload, tc.signature)
			assert.Equal(t, billing.ErrInvalidSignature, errors.Cause(err))
		})
	}
}

func TestCheckoutSession(t *testing.T) {
	conf := core.NewTestConfig()
	provider := NewStripeProvider(conf)

	origNew, origGet := newSessionFunc, getSessionFunc
	defer func() { newSessionFunc, getSessionFunc = origNew, origGet }()

	var got *stripe.CheckoutSessionParams
	newSessionFunc = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		got = params
		return &stripe.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.test/cs_1", Metadata: params.Metadata}, nil
	}
	getSessionFunc = func(id string) (*stripe.CheckoutSession, error) {
		if id != "cs_1" {
			return nil, errors.New("no such checkout session")
		}
		return &stripe.CheckoutSession{
			ID:            id,
			PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
			Metadata:      map[string]string{"uid": "u1"},
		}, nil
	}

	sess, err := provider.CreateCheckoutSession(context.Background(), billing.CheckoutParams{
		UserID:     "u1",
		Email:      "jane@test.cd",
		SuccessURL: "http://localhost:3000/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  "http://localhost:3000/settings",
	})
	require.NoError(t, err)
	assert.Equal(t, billing.Session{ID: "cs_1", URL: "https://checkout.stripe.test/cs_1", UserID: "u1"}, sess)
	require.NotNil(t, got)
	assert.Equal(t, "payment", *got.Mode)
	assert.Equal(t, "jane@test.cd", *got.CustomerEmail)
	assert.Equal(t, conf.Stripe.PriceID, *got.LineItems[0].Price)

	sess, err = provider.GetSession(context.Background(), "cs_1")
	require.NoError(t, err)
	assert.Equal(t, billing.PaymentStatusPaid, sess.PaymentStatus)
	assert.Equal(t, "u1", sess.UserID)

	_, err = provider.GetSession(context.Background(), "cs_unknown")
	assert.Error(t, err)
}
