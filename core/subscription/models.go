// Package subscription derives a practitioner's entitlement to the curriculum.
package subscription

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/dailysutra/core/program"
)

type Status string

const (
	StatusNone    Status = "none"
	StatusTrial   Status = "trial"
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

// TrialWeeks of content are available before upgrading.
const (
	TrialWeeks = 4
	TrialDays  = TrialWeeks * program.DaysPerWeek
)

func (s Status) Valid() bool {
	switch s {
	case StatusNone, StatusTrial, StatusActive, StatusExpired:
		return true
	}
	return false
}

// Record is the stored subscription of a user.
type Record struct {
	UserID         string    `db:"user_id" json:"-"`
	Status         Status    `db:"status" json:"subscription_status"`
	TrialStartedAt null.Time `db:"trial_started_at" json:"trial_started_at"` // UTC
	UpgradedAt     null.Time `db:"upgraded_at" json:"upgraded_at"`           // UTC
	CreatedAt      time.Time `db:"created_at" json:"created_at"`             // UTC
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`             // UTC
}

// Access answers entitlement questions for a status. It holds no other state.
type Access struct {
	Status Status
}

// CanAccessDay reports whether `day` may be read & edited:
// every day when paid, the first TrialDays during the trial, none otherwise.
func (a Access) CanAccessDay(day int) bool {
	switch a.Status {
	case StatusActive:
		return true
	case StatusTrial:
		return day <= TrialDays
	default:
		return false
	}
}

// CanAccessWeek reports whether the first day of `week` is accessible.
func (a Access) CanAccessWeek(week int) bool {
	first, ok := program.FirstDayOfWeek(week)
	return ok && a.CanAccessDay(first)
}

func (a Access) IsTrialActive() bool { return a.Status == StatusTrial }
func (a Access) IsActivePaid() bool  { return a.Status == StatusActive }

func (a Access) IsExpired() bool {
	return a.Status == StatusExpired || !(a.IsActivePaid() || a.IsTrialActive())
}

func (a Access) CanEditJourney() bool { return a.IsActivePaid() || a.IsTrialActive() }

// View is the public representation of a user's subscription.
type View struct {
	Status         Status    `json:"status"`
	IsTrialActive  bool      `json:"is_trial_active"`
	IsActivePaid   bool      `json:"is_active_paid"`
	IsExpired      bool      `json:"is_expired"`
	CanEditJourney bool      `json:"can_edit_journey"`
	TrialDays      int       `json:"trial_days"`
	TrialStartedAt null.Time `json:"trial_started_at"`
	UpgradedAt     null.Time `json:"upgraded_at"`
}

func NewView(status Status, rec Record) View {
	a := Access{Status: status}
	return View{
		Status:         status,
		IsTrialActive:  a.IsTrialActive(),
		IsActivePaid:   a.IsActivePaid(),
		IsExpired:      a.IsExpired(),
		CanEditJourney: a.CanEditJourney(),
		TrialDays:      TrialDays,
		TrialStartedAt: rec.TrialStartedAt,
		UpgradedAt:     rec.UpgradedAt,
	}
}
