package client

import (
	"context"
	"sync"

	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/progress"
	"github.com/trezcool/dailysutra/core/subscription"
)

const SyncFailedBanner = "Failed to sync with server. Working from local copy."

// Mirror is the journey of the practitioner: the local copy is the source of truth,
// and every change is mirrored to their account when signed in.
// Remote failures never block local work; they surface through Banner.
type Mirror struct {
	store  *LocalStore
	api    *API
	logger core.Logger

	mu     sync.Mutex
	state  progress.State
	access subscription.Access
	me     *Me
	banner string
}

func NewMirror(store *LocalStore, api *API, logger core.Logger) *Mirror {
	return &Mirror{store: store, api: api, logger: logger, state: progress.Initial()}
}

// Hydrate loads the local journey, then, when signed in, adopts the remote one.
// When the account has no journey yet, the local one seeds it.
func (m *Mirror) Hydrate(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = m.store.Load()
	if !m.api.Authenticated() {
		return
	}

	me, err := m.api.Me(ctx)
	if err != nil {
		m.syncFailed("fetching account", err)
		return
	}
	m.me = &me
	m.access = subscription.Access{Status: me.Subscription.Status}

	remote, found, err := m.api.Journey(ctx)
	if err != nil {
		m.syncFailed("fetching remote journey", err)
		return
	}
	if found {
		m.state = progress.Reduce(m.state, progress.Action{Type: progress.Hydrate, State: &remote})
		if err = m.store.Save(m.state); err != nil {
			m.logger.Warn("failed to write the local journey", err)
		}
		m.banner = ""
		return
	}

	if !m.access.CanEditJourney() {
		return
	}
	if _, err = m.api.MergeJourney(ctx, progress.FilterEntitled(m.state, m.access.CanAccessDay)); err != nil {
		m.syncFailed("seeding remote journey", err)
		return
	}
	m.banner = ""
}

// Dispatch applies the action to the local journey, then mirrors the result.
// Only a local write failure is returned.
func (m *Mirror) Dispatch(ctx context.Context, action progress.Action) (progress.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = progress.Reduce(m.state, action)
	if err := m.store.Save(m.state); err != nil {
		return m.state.Clone(), err
	}

	if !m.api.Authenticated() || !m.access.CanEditJourney() {
		return m.state.Clone(), nil
	}

	filtered := progress.FilterEntitled(m.state, m.access.CanAccessDay)
	var err error
	switch action.Type {
	case progress.ResetAll, progress.Hydrate:
		// merging would keep the remote entries missing locally
		_, err = m.api.ReplaceJourney(ctx, filtered)
	default:
		_, err = m.api.MergeJourney(ctx, filtered)
	}
	if err != nil {
		m.syncFailed("mirroring journey", err)
	} else {
		m.banner = ""
	}
	return m.state.Clone(), nil
}

func (m *Mirror) syncFailed(msg string, err error) {
	m.logger.Warn(msg, err)
	m.banner = SyncFailedBanner
}

func (m *Mirror) State() progress.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Access returns the entitlement of the signed in practitioner.
// Without an account, the local journal is not gated.
func (m *Mirror) Access() (subscription.Access, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access, m.me != nil
}

// CanAccessDay reports whether the day may be viewed & edited.
func (m *Mirror) CanAccessDay(day int) bool {
	access, known := m.Access()
	return !known || access.CanAccessDay(day)
}

// Me returns the signed in account, when it could be fetched.
func (m *Mirror) Me() (Me, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.me == nil {
		return Me{}, false
	}
	return *m.me, true
}

// Banner returns the user-visible sync warning, if any.
func (m *Mirror) Banner() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.banner
}
