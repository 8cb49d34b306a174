package pushsvc

import (
	"context"
	"sync"

	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/notification"
)

// Delivery is a message sent to a single device.
type Delivery struct {
	Token   string
	Message notification.Message
}

// ConsoleSender logs push messages instead of sending them. Used in development & tests.
type ConsoleSender struct {
	logger  core.Logger
	invalid map[string]bool

	mu   sync.Mutex
	sent []Delivery
}

var _ notification.Sender = (*ConsoleSender)(nil)

func NewConsoleSender(logger core.Logger) *ConsoleSender {
	return &ConsoleSender{logger: logger, invalid: make(map[string]bool)}
}

// NewConsoleSenderMock returns a silent sender rejecting the `invalid` tokens as unregistered.
func NewConsoleSenderMock(invalid ...string) *ConsoleSender {
	s := &ConsoleSender{invalid: make(map[string]bool, len(invalid))}
	for _, tok := range invalid {
		s.invalid[tok] = true
	}
	return s
}

func (s *ConsoleSender) Send(_ context.Context, tokens []string, msg notification.Message) ([]error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	errs := make([]error, len(tokens))
	for i, tok := range tokens {
		if s.invalid[tok] {
			errs[i] = notification.ErrInvalidToken
			continue
		}
		s.sent = append(s.sent, Delivery{Token: tok, Message: msg})
		if s.logger != nil {
			s.logger.Info("push message", map[string]interface{}{"token": tok, "title": msg.Title, "body": msg.Body})
		}
	}
	return errs, nil
}

// Sent returns the deliveries made so far.
func (s *ConsoleSender) Sent() []Delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Delivery(nil), s.sent...)
}
