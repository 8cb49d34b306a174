package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/dailysutra/core/content"
)

type contentApi struct {
	svc content.Service
}

func registerContentAPI(g *echo.Group, svc content.Service) {
	api := contentApi{svc: svc}

	g.GET("/sutras", api.sutras)
	g.GET("/sutras/:id/share", api.shareSutra)
	g.GET("/glossary", api.glossary)
	g.GET("/glossary/:id/share", api.shareTerm)
}

func (api *contentApi) sutras(ctx echo.Context) error {
	book, _ := strconv.Atoi(ctx.QueryParam("book")) // 0 is rejected as out of range

	sutras, err := api.svc.SutrasByBook(ctx.Request().Context(), book)
	if err != nil {
		return errors.Wrap(err, "querying sutras")
	}
	return ctx.JSON(http.StatusOK, sutras)
}

func (api *contentApi) glossary(ctx echo.Context) error {
	terms, err := api.svc.Glossary(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying glossary")
	}
	return ctx.JSON(http.StatusOK, terms)
}

func (api *contentApi) shareSutra(ctx echo.Context) error {
	sutra, err := api.svc.Sutra(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.String(http.StatusOK, sutra.ShareText())
}

func (api *contentApi) shareTerm(ctx echo.Context) error {
	term, err := api.svc.Term(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.String(http.StatusOK, term.ShareText())
}
