// Package billing sells the full journey through a hosted checkout & upgrades the buyer's subscription.
package billing

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/subscription"
	"github.com/trezcool/dailysutra/core/user"
)

const (
	EventCheckoutCompleted = "checkout.session.completed"
	PaymentStatusPaid      = "paid"
)

var (
	// errors
	ErrInvalidSignature = errors.New("webhook signature verification failed")
	ErrMissingSignature = errors.New("missing stripe-signature header")
	ErrMissingSessionID = errors.New("missing session_id")
	ErrMissingUser      = errors.New("user ID and email are required")
	ErrMissingUID       = errors.New("missing uid in session metadata")
	ErrNotPaid          = errors.New("payment not completed")
)

type (
	CheckoutParams struct {
		UserID     string
		Email      string
		SuccessURL string
		CancelURL  string
	}

	Session struct {
		ID            string
		URL           string
		PaymentStatus string
		UserID        string // metadata.uid
	}

	// Event is a verified webhook event.
	Event struct {
		ID      string
		Type    string
		Session *Session // set for checkout session events
	}

	// Provider is a payment provider offering hosted checkout sessions.
	Provider interface {
		CreateCheckoutSession(ctx context.Context, params CheckoutParams) (Session, error)
		GetSession(ctx context.Context, id string) (Session, error)
		// ParseWebhook verifies the signature of `payload`; it returns ErrInvalidSignature when it does not match.
		ParseWebhook(payload []byte, signature string) (Event, error)
	}

	// EventLog remembers the webhook events already handled.
	EventLog interface {
		// Claim reports whether `eventID` was not claimed before, and claims it.
		Claim(ctx context.Context, eventID string) (bool, error)
		// Release forgets `eventID` so that a retry gets processed.
		Release(ctx context.Context, eventID string) error
	}

	CheckoutResponse struct {
		URL string `json:"url"`
	}

	VerifyResult struct {
		Verified      bool   `json:"verified"`
		UID           string `json:"uid,omitempty"`
		PaymentStatus string `json:"payment_status,omitempty"`
	}

	Service interface {
		// CreateCheckout creates a checkout session for the user; `origin` defaults to the app URL.
		CreateCheckout(ctx context.Context, usr user.User, origin string) (CheckoutResponse, error)
		// VerifySession upgrades the buyer of a paid session.
		VerifySession(ctx context.Context, sessionID string) (VerifyResult, error)
		HandleWebhook(ctx context.Context, payload []byte, signature string) error
	}

	service struct {
		provider Provider
		events   EventLog
		subSvc   subscription.Service
		usrSvc   user.Service
		logger   core.Logger
		appURL   string
	}
)

var _ Service = (*service)(nil)

func NewService(
	provider Provider,
	events EventLog,
	subSvc subscription.Service,
	usrSvc user.Service,
	logger core.Logger,
	conf *core.Config,
) Service {
	return &service{
		provider: provider,
		events:   events,
		subSvc:   subSvc,
		usrSvc:   usrSvc,
		logger:   logger,
		appURL:   conf.AppURL,
	}
}

func (svc *service) CreateCheckout(ctx context.Context, usr user.User, origin string) (CheckoutResponse, error) {
	if usr.ID == "" || usr.Email == "" {
		return CheckoutResponse{}, core.NewValidationError(ErrMissingUser)
	}
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	if origin == "" {
		origin = svc.appURL
	}

	sess, err := svc.provider.CreateCheckoutSession(ctx, CheckoutParams{
		UserID:     usr.ID,
		Email:      usr.Email,
		SuccessURL: origin + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  origin + "/settings",
	})
	if err != nil {
		return CheckoutResponse{}, errors.Wrap(err, "creating checkout session")
	}
	return CheckoutResponse{URL: sess.URL}, nil
}

func (svc *service) VerifySession(ctx context.Context, sessionID string) (VerifyResult, error) {
	if sessionID = strings.TrimSpace(sessionID); sessionID == "" {
		return VerifyResult{}, core.NewValidationError(ErrMissingSessionID)
	}

	sess, err := svc.provider.GetSession(ctx, sessionID)
	if err != nil {
		return VerifyResult{}, errors.Wrap(err, "retrieving checkout session")
	}
	if sess.PaymentStatus != PaymentStatusPaid {
		return VerifyResult{Verified: false, PaymentStatus: sess.PaymentStatus}, ErrNotPaid
	}
	if sess.UserID == "" {
		return VerifyResult{}, core.NewValidationError(ErrMissingUID)
	}

	if _, err = svc.subSvc.Upgrade(ctx, sess.UserID); err != nil {
		return VerifyResult{}, errors.Wrap(err, "upgrading subscription")
	}
	return VerifyResult{Verified: true, UID: sess.UserID, PaymentStatus: sess.PaymentStatus}, nil
}

func (svc *service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if signature == "" {
		return core.NewValidationError(ErrMissingSignature)
	}
	ev, err := svc.provider.ParseWebhook(payload, signature)
	if err != nil {
		if errors.Cause(err) == ErrInvalidSignature {
			return core.NewValidationError(ErrInvalidSignature)
		}
		return errors.Wrap(err, "parsing webhook")
	}

	if ev.ID != "" && svc.events != nil {
		first, err := svc.events.Claim(ctx, ev.ID)
		if err != nil {
			svc.logger.Warn("claiming webhook event", err, map[string]interface{}{"event_id": ev.ID})
		} else if !first {
			return nil // already handled
		}
	}

	if err = svc.handleEvent(ctx, ev); err != nil && ev.ID != "" && svc.events != nil {
		if rErr := svc.events.Release(ctx, ev.ID); rErr != nil {
			svc.logger.Warn("releasing webhook event", rErr, map[string]interface{}{"event_id": ev.ID})
		}
	}
	return err
}

func (svc *service) handleEvent(ctx context.Context, ev Event) error {
	if ev.Type != EventCheckoutCompleted || ev.Session == nil || ev.Session.PaymentStatus != PaymentStatusPaid {
		return nil // ignored
	}
	uid := ev.Session.UserID
	if uid == "" {
		return core.NewValidationError(ErrMissingUID)
	}

	if _, err := svc.subSvc.Upgrade(ctx, uid); err != nil {
		return errors.Wrap(err, "upgrading subscription")
	}

	usr, err := svc.usrSvc.GetByID(ctx, uid)
	if err != nil {
		svc.logger.Warn("sending upgrade receipt", errors.Wrap(err, "finding user by ID"), map[string]interface{}{"uid": uid})
		return nil
	}
	svc.usrSvc.SendUpgradeReceipt(usr)
	return nil
}
