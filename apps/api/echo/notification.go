package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/dailysutra/core/notification"
)

type notificationApi struct {
	svc      notification.Service
	validate *validator.Validate
}

func registerNotificationAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc notification.Service, validate *validator.Validate) {
	api := notificationApi{svc: svc, validate: validate}

	ng := g.Group("/notifications", jwt)
	ng.POST("/register", api.registerToken)
	ng.GET("/preferences", api.preferences)
	ng.PUT("/preferences", api.updatePreferences)
	ng.POST("/send", api.send, adminMiddleware())
}

func (api *notificationApi) registerToken(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data RegisterTokenRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RegisterTokenRequest")
	}

	if err = api.svc.RegisterToken(ctx.Request().Context(), claims.Subject, data.Token, data.Platform); err != nil {
		return errors.Wrap(err, "registering push token")
	}
	return ctx.JSON(http.StatusOK, OKResponse{Success: true})
}

func (api *notificationApi) preferences(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	prefs, err := api.svc.Preferences(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "getting notification preferences")
	}
	return ctx.JSON(http.StatusOK, prefs)
}

func (api *notificationApi) updatePreferences(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	// absent fields keep their current value
	prefs, err := api.svc.Preferences(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "getting notification preferences")
	}
	if err = ctx.Bind(&prefs); err != nil {
		return errors.Wrap(err, "binding to Preferences")
	}
	if err = prefs.Validate(api.validate); err != nil {
		return err
	}

	if prefs, err = api.svc.UpdatePreferences(ctx.Request().Context(), claims.Subject, prefs); err != nil {
		return errors.Wrap(err, "updating notification preferences")
	}
	return ctx.JSON(http.StatusOK, prefs)
}

func (api *notificationApi) send(ctx echo.Context) error {
	var data SendNotificationRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SendNotificationRequest")
	}

	result, err := api.svc.Send(ctx.Request().Context(), data.UserID, notification.Message{
		Title: data.Title,
		Body:  data.Body,
		Data:  data.Data,
	})
	if err != nil {
		return errors.Wrap(err, "sending notification")
	}
	return ctx.JSON(http.StatusOK, result)
}
