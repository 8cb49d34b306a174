package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/account"
	"github.com/trezcool/dailysutra/core/billing"
	"github.com/trezcool/dailysutra/core/content"
	"github.com/trezcool/dailysutra/core/journey"
	"github.com/trezcool/dailysutra/core/notification"
	"github.com/trezcool/dailysutra/core/subscription"
	"github.com/trezcool/dailysutra/core/user"
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator
		Registry   prometheus.Registerer // optional

		UserSvc         user.Service
		SubscriptionSvc subscription.Service
		JourneySvc      journey.Service
		ContentSvc      content.Service
		BillingSvc      billing.Service
		NotificationSvc notification.Service
		AccountSvc      account.Service
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		auth     *Authenticator
		limiter  *rateLimiterStore
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		auth:     NewAuthenticator(deps.Conf),
		limiter:  newRateLimiterStore(deps.Conf.Server.RateLimit, deps.Conf.Server.RateBurst),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Server.ReadTimeout = conf.Server.ReadTimeout
	s.app.Server.WriteTimeout = conf.Server.WriteTimeout

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	registry := s.deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	s.app.Use(newMetrics(registry).middleware())
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{conf.AppURL},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.SignalShutdown)
	s.app.Debug = conf.Debug && !conf.TestMode

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := s.auth.Middleware()
	limit := s.limiter.middleware()
	entitlement := newAccessResolver(s.deps.UserSvc, s.deps.SubscriptionSvc)

	registerUserAPI(v1, jwt, limit, s.auth, s.deps.UserSvc, s.deps.SubscriptionSvc, s.deps.Validate, s.deps.Logger)
	registerAccountAPI(v1, jwt, s.deps.AccountSvc)
	registerProgramAPI(v1, jwt, entitlement, s.deps.JourneySvc)
	registerJourneyAPI(v1, jwt, entitlement, s.deps.JourneySvc)
	registerContentAPI(v1, s.deps.ContentSvc)
	registerBillingAPI(v1, jwt, s.deps.BillingSvc, s.deps.UserSvc)
	registerNotificationAPI(v1, jwt, s.deps.NotificationSvc, s.deps.Validate)
}

// Start blocks until the server stops. Startup & serving errors are reported on Errors().
func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Host); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error { return s.errors }

func (s *Server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

// SignalShutdown asks the process to shut down gracefully.
func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already signaled
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	defer s.limiter.stop()
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	defer s.limiter.stop()
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Daily Sutra API!")
}
