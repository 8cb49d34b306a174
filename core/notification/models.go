// Package notification keeps the push tokens & reminder preferences of practitioners, and sends them push messages.
package notification

import (
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // reminders run in containers without a zoneinfo database

	"github.com/go-playground/validator/v10"
)

const (
	DefaultTitle = "Daily Sutra"
	DefaultBody  = "Time for your daily practice"

	PlatformWeb = "web"
)

type Token struct {
	UserID    string    `db:"user_id"`
	Token     string    `db:"token"`
	Platform  string    `db:"platform"`
	CreatedAt time.Time `db:"created_at"` // UTC
	UpdatedAt time.Time `db:"updated_at"` // UTC
}

type Message struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

func (m Message) withDefaults() Message {
	if strings.TrimSpace(m.Title) == "" {
		m.Title = DefaultTitle
	}
	if strings.TrimSpace(m.Body) == "" {
		m.Body = DefaultBody
	}
	return m
}

// SendResult reports a fan-out to the devices of a user.
type SendResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	SuccessCount int    `json:"successCount"`
	FailureCount int    `json:"failureCount"`
}

// Preferences are the reminder settings of a user.
// ReminderDays are weekdays, 0 being Sunday. ReminderTime is HH:MM in Timezone.
type Preferences struct {
	UserID        string    `json:"-"`
	Enabled       bool      `json:"enabled"`
	DailyReminder bool      `json:"daily_reminder"`
	ReminderTime  string    `json:"reminder_time" validate:"required,hhmm"`
	ReminderDays  []int     `json:"reminder_days" validate:"dive,min=0,max=6"`
	Timezone      string    `json:"timezone" validate:"required,tzname"`
	UpdatedAt     time.Time `json:"updated_at"` // UTC
}

func DefaultPreferences(userID string) Preferences {
	return Preferences{
		UserID:        userID,
		Enabled:       false,
		DailyReminder: true,
		ReminderTime:  "09:00",
		ReminderDays:  []int{0, 1, 2, 3, 4, 5, 6},
		Timezone:      "UTC",
	}
}

func (p *Preferences) Validate(validate *validator.Validate) error {
	if p.ReminderDays == nil {
		p.ReminderDays = []int{}
	}
	return validate.Struct(p)
}

// dueAt reports whether a reminder should be sent during the hour of `now`.
func (p Preferences) dueAt(now time.Time) bool {
	if !(p.Enabled && p.DailyReminder) {
		return false
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		loc = time.UTC
	}
	local := now.In(loc)

	hour, err := strconv.Atoi(strings.SplitN(p.ReminderTime, ":", 2)[0])
	if err != nil || local.Hour() != hour {
		return false
	}
	for _, day := range p.ReminderDays {
		if day == int(local.Weekday()) {
			return true
		}
	}
	return false
}
