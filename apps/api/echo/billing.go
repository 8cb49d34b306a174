package echoapi

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/dailysutra/core/billing"
	"github.com/trezcool/dailysutra/core/user"
)

const (
	stripeSignatureHeader = "Stripe-Signature"
	maxWebhookSize        = 64 << 10
)

type billingApi struct {
	svc    billing.Service
	usrSvc user.Service
}

func registerBillingAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc billing.Service, usrSvc user.Service) {
	api := billingApi{svc: svc, usrSvc: usrSvc}

	bg := g.Group("/billing", jwt)
	bg.POST("/checkout", api.checkout)
	bg.POST("/verify-session", api.verifySession)

	// signed by Stripe, no JWT
	g.POST("/webhooks/stripe", api.webhook)
}

func (api *billingApi) checkout(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data CheckoutRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CheckoutRequest")
	}
	if data.Origin == "" {
		data.Origin = ctx.Request().Header.Get(echo.HeaderOrigin)
	}

	resp, err := api.svc.CreateCheckout(ctx.Request().Context(), usr, data.Origin)
	if err != nil {
		return errors.Wrap(err, "creating checkout")
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *billingApi) verifySession(ctx echo.Context) error {
	var data VerifySessionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to VerifySessionRequest")
	}

	result, err := api.svc.VerifySession(ctx.Request().Context(), data.SessionID)
	if err != nil {
		if errors.Cause(err) == billing.ErrNotPaid {
			return &notPaidError{result: result}
		}
		return errors.Wrap(err, "verifying checkout session")
	}
	return ctx.JSON(http.StatusOK, result)
}

// webhook needs the raw body: the signature is computed over the exact bytes sent.
func (api *billingApi) webhook(ctx echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(ctx.Request().Body, maxWebhookSize))
	if err != nil {
		return errors.Wrap(err, "reading webhook payload")
	}

	signature := ctx.Request().Header.Get(stripeSignatureHeader)
	if err = api.svc.HandleWebhook(ctx.Request().Context(), payload, signature); err != nil {
		return errors.Wrap(err, "handling webhook")
	}
	return ctx.JSON(http.StatusOK, ReceivedResponse{Received: true})
}
