package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/dailysutra/core/subscription"
	"github.com/trezcool/dailysutra/core/user"
)

const contextAccessKey = "access"

func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsAdmin {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// accessResolver derives the entitlement of the context user from their subscription.
type accessResolver struct {
	usrSvc user.Service
	subSvc subscription.Service
}

func newAccessResolver(usrSvc user.Service, subSvc subscription.Service) *accessResolver {
	return &accessResolver{usrSvc: usrSvc, subSvc: subSvc}
}

// access is computed once per request; the subscription may change between requests.
func (r *accessResolver) access(ctx echo.Context) (user.User, subscription.Access, error) {
	usr, err := getContextUser(ctx, r.usrSvc)
	if err != nil {
		return user.User{}, subscription.Access{}, errors.Wrap(err, "getting context user")
	}
	if access, ok := ctx.Get(contextAccessKey).(subscription.Access); ok {
		return usr, access, nil
	}

	status, _, err := r.subSvc.StatusFor(ctx.Request().Context(), usr.ID, usr.EmailVerified)
	if err != nil {
		return user.User{}, subscription.Access{}, errors.Wrap(err, "getting subscription status")
	}
	access := subscription.Access{Status: status}
	ctx.Set(contextAccessKey, access)
	return usr, access, nil
}
