// Package paymentsvc implements the payment provider with Stripe Checkout.
package paymentsvc

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/billing"
)

// mockable
var (
	newSessionFunc = session.New
	getSessionFunc = func(id string) (*stripe.CheckoutSession, error) { return session.Get(id, nil) }
)

type stripeProvider struct {
	priceID       string
	webhookSecret string
}

var _ billing.Provider = (*stripeProvider)(nil)

func NewStripeProvider(conf *core.Config) billing.Provider {
	stripe.Key = conf.Stripe.SecretKey
	return &stripeProvider{
		priceID:       conf.Stripe.PriceID,
		webhookSecret: conf.Stripe.WebhookSecret,
	}
}

func toSession(s *stripe.CheckoutSession) billing.Session {
	if s == nil {
		return billing.Session{}
	}
	return billing.Session{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
		UserID:        s.Metadata["uid"],
	}
}

func (p *stripeProvider) CreateCheckoutSession(_ context.Context, params billing.CheckoutParams) (billing.Session, error) {
	sp := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail:     stripe.String(params.Email),
		ClientReferenceID: stripe.String(params.UserID),
		SuccessURL:        stripe.String(params.SuccessURL),
		CancelURL:         stripe.String(params.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(p.priceID), Quantity: stripe.Int64(1)},
		},
	}
	sp.AddMetadata("uid", params.UserID)

	s, err := newSessionFunc(sp)
	if err != nil {
		return billing.Session{}, errors.Wrap(err, "creating stripe checkout session")
	}
	return toSession(s), nil
}

func (p *stripeProvider) GetSession(_ context.Context, id string) (billing.Session, error) {
	s, err := getSessionFunc(id)
	if err != nil {
		return billing.Session{}, errors.Wrap(err, "retrieving stripe checkout session")
	}
	return toSession(s), nil
}

func (p *stripeProvider) ParseWebhook(payload []byte, signature string) (billing.Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, p.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return billing.Event{}, errors.Wrap(billing.ErrInvalidSignature, err.Error())
	}

	ev := billing.Event{ID: event.ID, Type: string(event.Type)}
	if ev.Type == billing.EventCheckoutCompleted && event.Data != nil {
		var s stripe.CheckoutSession
		if err = json.Unmarshal(event.Data.Raw, &s); err != nil {
			return billing.Event{}, errors.Wrap(err, "parsing checkout session")
		}
		sess := toSession(&s)
		ev.Session = &sess
	}
	return ev, nil
}
