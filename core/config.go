package core

import (
	"fmt"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
)

type (
	ServerConfig struct {
		Host                      string
		DebugHost                 string
		ReadTimeout               time.Duration
		WriteTimeout              time.Duration
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
		DisableReqLogs            bool
		RateLimit                 float64 // requests per second, per client IP
		RateBurst                 int
	}

	DatabaseConfig struct {
		Engine        string // postgres | sqlite
		Host          string
		Port          string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
		Path          string // sqlite only
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
		CacheTTL time.Duration
		EventTTL time.Duration
	}

	StripeConfig struct {
		SecretKey     string
		PriceID       string
		WebhookSecret string
	}

	NotificationConfig struct {
		FirebaseServiceAccount string // JSON credentials
		VapidKey               string
	}

	Config struct {
		AppName                   string
		Env                       string
		Build                     string
		Debug                     bool
		TestMode                  bool
		SecretKey                 string
		AppURL                    string
		DefaultFromEmail          mail.Address
		SendgridApiKey            string
		RollbarToken              string
		PasswordResetTimeoutDelta time.Duration

		Server       ServerConfig
		Database     DatabaseConfig
		Redis        RedisConfig
		Stripe       StripeConfig
		Notification NotificationConfig
	}
)

const devSecretKey = "ds-dev-0xq7)q=h3!w2n@k9$+lz8r^t5v#c1y&f6p*m4e-insecure"

// NewConfig reads the configuration from the environment.
// Variables are prefixed by ENV (DEV by default), e.g. DEV_DATABASE_ENGINE.
// `config/.env.<env>` is loaded first, when it exists.
func NewConfig() (*Config, error) {
	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}

	if err := loadDotEnv(env); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, env)

	conf := &Config{
		AppName:                   v.GetString("app_name"),
		Env:                       env,
		Build:                     v.GetString("build"),
		Debug:                     v.GetBool("debug"),
		TestMode:                  v.GetBool("test_mode"),
		SecretKey:                 v.GetString("secret_key"),
		AppURL:                    strings.TrimRight(v.GetString("app_url"), "/"),
		SendgridApiKey:            v.GetString("sendgrid_api_key"),
		RollbarToken:              v.GetString("rollbar_token"),
		PasswordResetTimeoutDelta: v.GetDuration("password_reset_timeout_delta"),
		Server: ServerConfig{
			Host:                      v.GetString("server.host"),
			DebugHost:                 v.GetString("server.debug_host"),
			ReadTimeout:               v.GetDuration("server.read_timeout"),
			WriteTimeout:              v.GetDuration("server.write_timeout"),
			ShutdownTimeout:           v.GetDuration("server.shutdown_timeout"),
			JWTExpirationDelta:        v.GetDuration("server.jwt_expiration_delta"),
			JWTRefreshExpirationDelta: v.GetDuration("server.jwt_refresh_expiration_delta"),
			DisableReqLogs:            v.GetBool("server.disable_req_logs"),
			RateLimit:                 v.GetFloat64("server.rate_limit"),
			RateBurst:                 v.GetInt("server.rate_burst"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("database.engine"),
			Host:          v.GetString("database.host"),
			Port:          v.GetString("database.port"),
			Name:          v.GetString("database.name"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.admin_user"),
			AdminPassword: v.GetString("database.admin_password"),
			DisableTLS:    v.GetBool("database.disable_tls"),
			Path:          v.GetString("database.path"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			CacheTTL: v.GetDuration("redis.cache_ttl"),
			EventTTL: v.GetDuration("redis.event_ttl"),
		},
		Stripe: StripeConfig{
			SecretKey:     v.GetString("stripe.secret_key"),
			PriceID:       v.GetString("stripe.price_id"),
			WebhookSecret: v.GetString("stripe.webhook_secret"),
		},
		Notification: NotificationConfig{
			FirebaseServiceAccount: v.GetString("firebase.service_account"),
			VapidKey:               v.GetString("firebase.vapid_key"),
		},
	}

	from, err := mail.ParseAddress(v.GetString("default_from_email"))
	if err != nil {
		return nil, errors.Wrap(err, "parsing DEFAULT_FROM_EMAIL")
	}
	conf.DefaultFromEmail = *from

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func setDefaults(v *viper.Viper, env string) {
	v.SetDefault("debug", env == "DEV" || env == "TEST")
	v.SetDefault("test_mode", env == "TEST")
	v.SetDefault("app_name", "Daily Sutra")
	v.SetDefault("build", "develop")
	v.SetDefault("secret_key", devSecretKey)
	v.SetDefault("app_url", "http://localhost:3000")
	v.SetDefault("default_from_email", "Daily Sutra <noreply@localhost>")
	v.SetDefault("password_reset_timeout_delta", 3*24*time.Hour)

	v.SetDefault("server.host", "0.0.0.0:8000")
	v.SetDefault("server.debug_host", "0.0.0.0:4000")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 5*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.jwt_expiration_delta", 7*24*time.Hour)
	v.SetDefault("server.jwt_refresh_expiration_delta", 30*24*time.Hour)
	v.SetDefault("server.rate_limit", 1.0)
	v.SetDefault("server.rate_burst", 5)

	v.SetDefault("database.engine", EngineSQLite)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "dailysutra")
	v.SetDefault("database.path", "dailysutra.db")

	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", 12*time.Hour)
	v.SetDefault("redis.event_ttl", 72*time.Hour)
}

func loadDotEnv(env string) error {
	dir := os.Getenv("CONFIG_DIR")
	if dir == "" {
		dir = "config"
	}
	path := filepath.Join(dir, ".env."+strings.ToLower(env))
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			return errors.Wrapf(err, "loading %s", path)
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "stat %s", path)
	}
	return nil
}

// Validate reports every missing credential at once.
// Third-party credentials are only required outside of debug mode.
func (c *Config) Validate() error {
	var missing []string
	if !c.Debug {
		if c.SecretKey == "" || c.SecretKey == devSecretKey {
			missing = append(missing, "SECRET_KEY")
		}
		required := map[string]string{
			"STRIPE_SECRET_KEY":        c.Stripe.SecretKey,
			"STRIPE_PRICE_ID":          c.Stripe.PriceID,
			"STRIPE_WEBHOOK_SECRET":    c.Stripe.WebhookSecret,
			"FIREBASE_SERVICE_ACCOUNT": c.Notification.FirebaseServiceAccount,
			"SENDGRID_API_KEY":         c.SendgridApiKey,
		}
		for _, name := range []string{
			"STRIPE_SECRET_KEY", "STRIPE_PRICE_ID", "STRIPE_WEBHOOK_SECRET", "FIREBASE_SERVICE_ACCOUNT", "SENDGRID_API_KEY",
		} {
			if required[name] == "" {
				missing = append(missing, name)
			}
		}
	}
	switch c.Database.Engine {
	case EngineSQLite, EnginePostgres:
	default:
		return fmt.Errorf("unsupported DATABASE_ENGINE %q", c.Database.Engine)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Address returns the database host:port.
func (db DatabaseConfig) Address() string {
	return net.JoinHostPort(db.Host, db.Port)
}

// NewTestConfig returns a configuration suitable for tests.
func NewTestConfig() *Config {
	return &Config{
		AppName:                   "Daily Sutra",
		Env:                       "TEST",
		Build:                     "test",
		Debug:                     true,
		TestMode:                  true,
		SecretKey:                 "test-secret",
		AppURL:                    "http://localhost:3000",
		DefaultFromEmail:          mail.Address{Name: "Daily Sutra", Address: "noreply@localhost"},
		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,
		Server: ServerConfig{
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 24 * time.Hour,
			DisableReqLogs:            true,
			RateLimit:                 100,
			RateBurst:                 100,
		},
		Database: DatabaseConfig{Engine: EngineSQLite},
		Redis:    RedisConfig{CacheTTL: time.Hour, EventTTL: time.Hour},
		Stripe: StripeConfig{
			SecretKey:     "sk_test",
			PriceID:       "price_test",
			WebhookSecret: "whsec_test",
		},
	}
}
