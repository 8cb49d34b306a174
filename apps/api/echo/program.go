package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/dailysutra/core/journey"
	"github.com/trezcool/dailysutra/core/program"
)

const dateLayout = "2006-01-02"

type programApi struct {
	resolver   *accessResolver
	journeySvc journey.Service
}

func registerProgramAPI(g *echo.Group, jwt echo.MiddlewareFunc, resolver *accessResolver, journeySvc journey.Service) {
	api := programApi{resolver: resolver, journeySvc: journeySvc}

	pg := g.Group("/program")
	pg.GET("", api.weeks)
	pg.GET("/weeks/:week", api.week)
	pg.GET("/days/:day", api.day, jwt)
	pg.GET("/today", api.today, jwt)
}

func (api *programApi) weeks(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, program.Weeks())
}

func (api *programApi) week(ctx echo.Context) error {
	n, err := intParam(ctx, "week")
	if err != nil {
		return err
	}
	week, ok := program.GetWeek(n)
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, week)
}

func (api *programApi) day(ctx echo.Context) error {
	n, err := intParam(ctx, "day")
	if err != nil {
		return err
	}
	day, ok := program.GetDay(n)
	if !ok {
		return errHttpNotFound
	}

	usr, access, err := api.resolver.access(ctx)
	if err != nil {
		return err
	}
	if !access.CanAccessDay(n) {
		return journey.ErrNotEntitled
	}

	state, err := loadJourney(ctx, api.journeySvc, usr.ID)
	if err != nil {
		return err
	}
	resp := DayResponse{Day: day}
	if date, ok := program.DateForDayNumber(state.StartDate(), n, clientLocation(ctx)); ok {
		resp.Date = date.Format(dateLayout)
	}
	if dp, ok := state.DayProgress[n]; ok {
		resp.Progress = &dp
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *programApi) today(ctx echo.Context) error {
	usr, access, err := api.resolver.access(ctx)
	if err != nil {
		return err
	}
	state, err := loadJourney(ctx, api.journeySvc, usr.ID)
	if err != nil {
		return err
	}

	now := NowFunc().In(clientLocation(ctx))
	resp := TodayResponse{StartDate: state.StartDate(), Today: now.Format(dateLayout)}
	if n, ok := program.CurrentDayNumber(state.StartDate(), now); ok {
		day, _ := program.GetDay(n)
		resp.Started = true
		resp.Day = &day
		resp.Entitled = access.CanAccessDay(n)
	}
	return ctx.JSON(http.StatusOK, resp)
}
