package cachesvc

import (
	"context"
	"sync"
	"time"

	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/billing"
)

// MemoryEventLog is the event log of a single API instance running without Redis.
// Claims are forgotten after the configured event TTL, as with Redis.
type MemoryEventLog struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	events map[string]time.Time // claim times
}

var _ billing.EventLog = (*MemoryEventLog)(nil)

func NewMemoryEventLog(conf *core.Config) *MemoryEventLog {
	return &MemoryEventLog{
		ttl:    conf.Redis.EventTTL,
		now:    time.Now,
		events: make(map[string]time.Time),
	}
}

func (l *MemoryEventLog) Claim(_ context.Context, eventID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for id, claimedAt := range l.events {
		if now.Sub(claimedAt) >= l.ttl {
			delete(l.events, id)
		}
	}
	if _, ok := l.events[eventID]; ok {
		return false, nil
	}
	l.events[eventID] = now
	return true, nil
}

func (l *MemoryEventLog) Release(_ context.Context, eventID string) error {
	l.mu.Lock()
	delete(l.events, eventID)
	l.mu.Unlock()
	return nil
}
