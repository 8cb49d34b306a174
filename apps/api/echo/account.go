package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/dailysutra/core/account"
)

type accountApi struct {
	svc account.Service
}

func registerAccountAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc account.Service) {
	api := accountApi{svc: svc}

	ag := g.Group("/account", jwt)
	ag.POST("/delete", api.destroy)
}

func (api *accountApi) destroy(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data DeleteAccountRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DeleteAccountRequest")
	}

	if err = api.svc.Delete(ctx.Request().Context(), claims.Subject, data.UID); err != nil {
		return errors.Wrap(err, "deleting account")
	}
	return ctx.JSON(http.StatusOK, OKResponse{Success: true})
}
