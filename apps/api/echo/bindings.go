package echoapi

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/program"
	"github.com/trezcool/dailysutra/core/progress"
	"github.com/trezcool/dailysutra/core/subscription"
	"github.com/trezcool/dailysutra/core/user"
)

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	PasswordResetRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}

	OKResponse struct {
		Success bool `json:"success"`
	}

	MeResponse struct {
		User         user.User         `json:"user"`
		Subscription subscription.View `json:"subscription"`
	}

	DeleteAccountRequest struct {
		UID string `json:"uid"`
	}

	DayResponse struct {
		program.Day
		Date     string                `json:"date,omitempty"` // YYYY-MM-DD, when the journey has a start date
		Progress *progress.DayProgress `json:"progress,omitempty"`
	}

	TodayResponse struct {
		Started   bool         `json:"started"`
		StartDate string       `json:"start_date,omitempty"`
		Today     string       `json:"today"`
		Entitled  bool         `json:"entitled"`
		Day       *program.Day `json:"day,omitempty"`
	}

	StatsResponse struct {
		Stats      progress.Stats            `json:"stats"`
		Streak     progress.Streak           `json:"streak"`
		History    []progress.DayHistoryItem `json:"history"`
		CurrentDay int                       `json:"current_day,omitempty"`
	}

	CheckoutRequest struct {
		Origin string `json:"origin"`
	}

	VerifySessionRequest struct {
		SessionID string `json:"session_id"`
	}

	RegisterTokenRequest struct {
		Token    string `json:"token"`
		Platform string `json:"platform"`
	}

	SendNotificationRequest struct {
		UserID string            `json:"user_id"`
		Title  string            `json:"title"`
		Body   string            `json:"body"`
		Data   map[string]string `json:"data"`
	}

	ReceivedResponse struct {
		Received bool `json:"received"`
	}
)

func (lr *LoginRequest) Clean() {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
}

func (pr *PasswordResetRequest) Clean() {
	pr.Email = core.CleanString(pr.Email, true /* lower */)
}

// intParam returns the path parameter `name` as an int; a malformed value is reported as not found.
func intParam(ctx echo.Context, name string) (int, error) {
	n, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, errHttpNotFound
	}
	return n, nil
}

// clientLocation returns the time zone of the `tz` query parameter, UTC by default.
// The calendar is computed in the practitioner's own time zone.
func clientLocation(ctx echo.Context) *time.Location {
	if name := ctx.QueryParam("tz"); name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.UTC
}
