package echoapi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/dailysutra/core/journey"
	"github.com/trezcool/dailysutra/core/program"
	"github.com/trezcool/dailysutra/core/progress"
	"github.com/trezcool/dailysutra/core/share"
)

const maxImportSize = 1 << 20

var errNothingToShare = echo.NewHTTPError(http.StatusNotFound, "nothing to share yet")

type journeyApi struct {
	resolver *accessResolver
	svc      journey.Service
}

func registerJourneyAPI(g *echo.Group, jwt echo.MiddlewareFunc, resolver *accessResolver, svc journey.Service) {
	api := journeyApi{resolver: resolver, svc: svc}

	jg := g.Group("/journey", jwt)
	jg.GET("", api.retrieve)
	jg.PUT("", api.merge)
	jg.POST("/actions", api.dispatch)
	jg.GET("/stats", api.stats)
	jg.GET("/export", api.export)
	jg.POST("/import", api.restore)

	sg := jg.Group("/share")
	sg.GET("/days/:day", api.shareDay)
	sg.GET("/weeks/:week", api.shareWeek)
	sg.GET("/progress", api.shareProgress)
}

// loadJourney returns the stored journey of the user, or the initial one.
func loadJourney(ctx echo.Context, svc journey.Service, userID string) (progress.State, error) {
	state, err := svc.Get(ctx.Request().Context(), userID)
	if err != nil {
		if errors.Cause(err) == journey.ErrNotFound {
			return progress.Initial(), nil
		}
		return progress.State{}, errors.Wrap(err, "getting journey")
	}
	return state, nil
}

func (api *journeyApi) retrieve(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	state, err := api.svc.Get(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "getting journey")
	}
	return ctx.JSON(http.StatusOK, state)
}

func (api *journeyApi) merge(ctx echo.Context) error {
	usr, access, err := api.resolver.access(ctx)
	if err != nil {
		return err
	}

	var data progress.State
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to State")
	}

	state, err := api.svc.Merge(ctx.Request().Context(), usr.ID, data, access)
	if err != nil {
		return errors.Wrap(err, "merging journey")
	}
	return ctx.JSON(http.StatusOK, state)
}

func (api *journeyApi) dispatch(ctx echo.Context) error {
	usr, access, err := api.resolver.access(ctx)
	if err != nil {
		return err
	}

	var action progress.Action
	if err = ctx.Bind(&action); err != nil {
		return errors.Wrap(err, "binding to Action")
	}

	state, err := api.svc.Apply(ctx.Request().Context(), usr.ID, action, access)
	if err != nil {
		return errors.Wrap(err, "applying action")
	}
	return ctx.JSON(http.StatusOK, state)
}

func (api *journeyApi) stats(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	state, err := loadJourney(ctx, api.svc, claims.Subject)
	if err != nil {
		return err
	}

	count := progress.DefaultHistoryCount
	if n, err := strconv.Atoi(ctx.QueryParam("count")); err == nil && n > 0 {
		count = n
	}
	currentDay, _ := program.CurrentDayNumber(state.StartDate(), NowFunc().In(clientLocation(ctx)))

	return ctx.JSON(http.StatusOK, StatsResponse{
		Stats:      progress.ComputeStats(state),
		Streak:     progress.CalculateStreak(state, currentDay),
		History:    progress.RecentDayHistory(state, count),
		CurrentDay: currentDay,
	})
}

func (api *journeyApi) export(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	state, err := loadJourney(ctx, api.svc, claims.Subject)
	if err != nil {
		return err
	}

	data, err := progress.Export(state)
	if err != nil {
		return errors.Wrap(err, "exporting journey")
	}
	filename := fmt.Sprintf("raja-yoga-progress-%s.json", NowFunc().UTC().Format(dateLayout))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

// restore replaces the journey with an export file.
func (api *journeyApi) restore(ctx echo.Context) error {
	usr, access, err := api.resolver.access(ctx)
	if err != nil {
		return err
	}

	data, err := io.ReadAll(io.LimitReader(ctx.Request().Body, maxImportSize))
	if err != nil {
		return errors.Wrap(err, "reading export file")
	}
	imported, err := progress.Import(data)
	if err != nil {
		return err
	}

	state, err := api.svc.Replace(ctx.Request().Context(), usr.ID, imported, access)
	if err != nil {
		return errors.Wrap(err, "importing journey")
	}
	return ctx.JSON(http.StatusOK, state)
}

func (api *journeyApi) shareDay(ctx echo.Context) error {
	n, err := intParam(ctx, "day")
	if err != nil {
		return err
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	state, err := loadJourney(ctx, api.svc, claims.Subject)
	if err != nil {
		return err
	}

	dp, ok := state.DayProgress[n]
	if !ok {
		return errNothingToShare
	}
	var dateLabel string
	if date, ok := program.DateForDayNumber(state.StartDate(), n, clientLocation(ctx)); ok {
		dateLabel = date.Format("Monday, January 2, 2006")
	}
	text, ok := share.DayNote(n, dateLabel, dp)
	if !ok {
		return errHttpNotFound
	}
	return ctx.String(http.StatusOK, text)
}

func (api *journeyApi) shareWeek(ctx echo.Context) error {
	n, err := intParam(ctx, "week")
	if err != nil {
		return err
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	state, err := loadJourney(ctx, api.svc, claims.Subject)
	if err != nil {
		return err
	}

	wp, ok := state.WeekProgress[n]
	if !ok {
		return errNothingToShare
	}
	wp.Week = n
	text, ok := share.WeekReflection(wp)
	if !ok {
		return errHttpNotFound
	}
	return ctx.String(http.StatusOK, text)
}

func (api *journeyApi) shareProgress(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	state, err := loadJourney(ctx, api.svc, claims.Subject)
	if err != nil {
		return err
	}
	return ctx.String(http.StatusOK, share.Progress(progress.ComputeStats(state), state.StartDate()))
}
