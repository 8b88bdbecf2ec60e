// Package config loads settings from the environment, an optional .env file
// and an optional config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Keys double as environment variable names once upper-cased.
const (
	KeyAppEnv             = "app_env"
	KeyConfigFile         = "config_file"
	KeyHTTPPort           = "http_port"
	KeyAPIBaseURL         = "api_base_url"
	KeyRequestTimeout     = "request_timeout"
	KeyShutdownTimeout    = "shutdown_timeout"
	KeyMaxRequestBodySize = "max_request_body_size"
	KeyAccountDelay       = "account_delay"
	KeyShippingDelay      = "shipping_delay"
	KeyPaymentDelay       = "payment_delay"
	KeyCompleteDelay      = "complete_delay"
	KeySummaryDelay       = "summary_delay"
	KeyRedirectDelay      = "redirect_delay"
	KeyLocale             = "locale"
	KeyBreakerMaxFailures = "breaker_max_failures"
	KeyBreakerOpenTimeout = "breaker_open_timeout"
)

type Config struct {
	AppEnv string

	HTTPPort           string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64

	AccountDelay  time.Duration
	ShippingDelay time.Duration
	PaymentDelay  time.Duration
	CompleteDelay time.Duration
	SummaryDelay  time.Duration

	APIBaseURL         string
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration

	RedirectDelay time.Duration
	Locale        string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyAppEnv, "dev")
	v.SetDefault(KeyHTTPPort, "8080")
	v.SetDefault(KeyAPIBaseURL, "http://localhost:8080")
	v.SetDefault(KeyRequestTimeout, 30*time.Second)
	v.SetDefault(KeyShutdownTimeout, 10*time.Second)
	v.SetDefault(KeyMaxRequestBodySize, int64(1<<20)) // 1MB
	v.SetDefault(KeyAccountDelay, 500*time.Millisecond)
	v.SetDefault(KeyShippingDelay, 600*time.Millisecond)
	v.SetDefault(KeyPaymentDelay, 700*time.Millisecond)
	v.SetDefault(KeyCompleteDelay, 800*time.Millisecond)
	v.SetDefault(KeySummaryDelay, 600*time.Millisecond)
	v.SetDefault(KeyRedirectDelay, 2*time.Second)
	v.SetDefault(KeyLocale, "en")
	v.SetDefault(KeyBreakerMaxFailures, 5)
	v.SetDefault(KeyBreakerOpenTimeout, 30*time.Second)
}

// Load reads envFile (when it exists) into the process environment, then
// resolves every key from flags bound on v, the environment, the file named
// by CONFIG_FILE and the defaults, in that order.
func Load(v *viper.Viper, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	setDefaults(v)
	v.AutomaticEnv()

	if path := v.GetString(KeyConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		AppEnv:             v.GetString(KeyAppEnv),
		HTTPPort:           v.GetString(KeyHTTPPort),
		RequestTimeout:     v.GetDuration(KeyRequestTimeout),
		ShutdownTimeout:    v.GetDuration(KeyShutdownTimeout),
		MaxRequestBodySize: v.GetInt64(KeyMaxRequestBodySize),
		AccountDelay:       v.GetDuration(KeyAccountDelay),
		ShippingDelay:      v.GetDuration(KeyShippingDelay),
		PaymentDelay:       v.GetDuration(KeyPaymentDelay),
		CompleteDelay:      v.GetDuration(KeyCompleteDelay),
		SummaryDelay:       v.GetDuration(KeySummaryDelay),
		APIBaseURL:         v.GetString(KeyAPIBaseURL),
		BreakerMaxFailures: v.GetUint32(KeyBreakerMaxFailures),
		BreakerOpenTimeout: v.GetDuration(KeyBreakerOpenTimeout),
		RedirectDelay:      v.GetDuration(KeyRedirectDelay),
		Locale:             v.GetString(KeyLocale),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.HTTPPort == "":
		return fmt.Errorf("%w: %s is empty", ErrInvalidConfig, KeyHTTPPort)
	case c.APIBaseURL == "":
		return fmt.Errorf("%w: %s is empty", ErrInvalidConfig, KeyAPIBaseURL)
	case c.RequestTimeout < 0, c.ShutdownTimeout < 0, c.RedirectDelay < 0:
		return fmt.Errorf("%w: timeouts must not be negative", ErrInvalidConfig)
	case c.AccountDelay < 0, c.ShippingDelay < 0, c.PaymentDelay < 0, c.CompleteDelay < 0, c.SummaryDelay < 0:
		return fmt.Errorf("%w: delays must not be negative", ErrInvalidConfig)
	case c.MaxRequestBodySize <= 0:
		return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, KeyMaxRequestBodySize)
	case c.BreakerMaxFailures == 0:
		return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, KeyBreakerMaxFailures)
	}
	return nil
}
