package paymentsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/dailysutra/core/billing"
)

// MockSignature is the only webhook signature accepted by MockProvider.
const MockSignature = "t=0,v1=mock"

// MockProvider is a test double that records checkout sessions.
// Webhook payloads are JSON encoded billing.Event values.
type MockProvider struct {
	mu       sync.Mutex
	seq      int
	Sessions map[string]billing.Session
	Params   []billing.CheckoutParams

	// Error fields allow tests to inject failures.
	CreateErr error
	GetErr    error
}

var _ billing.Provider = (*MockProvider)(nil)

func NewMockProvider() *MockProvider {
	return &MockProvider{Sessions: make(map[string]billing.Session)}
}

func (m *MockProvider) CreateCheckoutSession(_ context.Context, params billing.CheckoutParams) (billing.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateErr != nil {
		return billing.Session{}, m.CreateErr
	}
	m.seq++
	id := fmt.Sprintf("cs_mock_%d", m.seq)
	sess := billing.Session{
		ID:            id,
		URL:           "https://checkout.stripe.test/" + id,
		PaymentStatus: "unpaid",
		UserID:        params.UserID,
	}
	m.Sessions[id] = sess
	m.Params = append(m.Params, params)
	return sess, nil
}

// Pay marks the session as paid.
func (m *MockProvider) Pay(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.Sessions[id]; ok {
		sess.PaymentStatus = billing.PaymentStatusPaid
		m.Sessions[id] = sess
	}
}

func (m *MockProvider) GetSession(_ context.Context, id string) (billing.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetErr != nil {
		return billing.Session{}, m.GetErr
	}
	sess, ok := m.Sessions[id]
	if !ok {
		return billing.Session{}, errors.Errorf("no such checkout session: %s", id)
	}
	return sess, nil
}

func (m *MockProvider) ParseWebhook(payload []byte, signature string) (billing.Event, error) {
	if signature != MockSignature {
		return billing.Event{}, billing.ErrInvalidSignature
	}
	var ev billing.Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return billing.Event{}, errors.Wrap(billing.ErrInvalidSignature, err.Error())
	}
	return ev, nil
}
