package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment keys read by Load.
const (
	EnvAppEnv            = "APP_ENV"
	EnvLogLevel          = "LOG_LEVEL"
	EnvSMSProvider       = "SMS_PROVIDER"
	EnvTwilioAccountSID  = "TWILIO_ACCOUNT_SID"
	EnvTwilioAuthToken   = "TWILIO_AUTH_TOKEN"
	EnvTwilioPhoneNumber = "TWILIO_PHONE_NUMBER"
)

// Supported values for SMS_PROVIDER.
const (
	SMSProviderTwilio = "twilio"
	SMSProviderMock   = "mock"
)

// Config captures all runtime configuration for the notifier. It is built once
// at startup and passed down explicitly.
type Config struct {
	App       AppConfig
	Providers ProviderConfig
}

// AppConfig contains generic application level settings.
type AppConfig struct {
	Env      string
	LogLevel string
}

// TwilioConfig stores the Twilio credentials used for SMS delivery.
type TwilioConfig struct {
	AccountSID  string
	AuthToken   string
	PhoneNumber string
}

// Missing returns the environment keys of the credentials that are empty, in a
// stable order. An empty result means the credentials are complete.
func (c TwilioConfig) Missing() []string {
	var missing []string
	if strings.TrimSpace(c.AccountSID) == "" {
		missing = append(missing, EnvTwilioAccountSID)
	}
	if strings.TrimSpace(c.AuthToken) == "" {
		missing = append(missing, EnvTwilioAuthToken)
	}
	if strings.TrimSpace(c.PhoneNumber) == "" {
		missing = append(missing, EnvTwilioPhoneNumber)
	}
	return missing
}

// Complete reports whether all three credentials are present.
func (c TwilioConfig) Complete() bool {
	return len(c.Missing()) == 0
}

// ProviderConfig wraps configuration for the SMS provider.
type ProviderConfig struct {
	SMSProvider string
	Twilio      TwilioConfig
}

// Load reads environment variables (after merging an optional .env file),
// applies defaults and validates the values it can. Twilio credentials are not
// required here; the notifier reports them when a send is attempted.
func Load() (*Config, error) {
	_ = godotenv.Load()

	ldr := &envLoader{}

	cfg := &Config{}
	cfg.App.Env = ldr.getString(EnvAppEnv, "development")
	cfg.App.LogLevel = ldr.getString(EnvLogLevel, "info")

	cfg.Providers.SMSProvider = strings.ToLower(ldr.getString(EnvSMSProvider, SMSProviderTwilio))
	switch cfg.Providers.SMSProvider {
	case SMSProviderTwilio, SMSProviderMock:
	default:
		ldr.addError(fmt.Sprintf("%s must be one of [%s %s]", EnvSMSProvider, SMSProviderTwilio, SMSProviderMock))
	}

	cfg.Providers.Twilio.AccountSID = ldr.getString(EnvTwilioAccountSID, "")
	cfg.Providers.Twilio.AuthToken = ldr.getString(EnvTwilioAuthToken, "")
	cfg.Providers.Twilio.PhoneNumber = ldr.getString(EnvTwilioPhoneNumber, "")

	if err := ldr.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

type envLoader struct {
	errs []string
}

func (l *envLoader) validate() error {
	if len(l.errs) == 0 {
		return nil
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(l.errs, "; "))
}

func (l *envLoader) getString(key, def string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	val = strings.TrimSpace(val)
	if val == "" {
		return def
	}
	return val
}

func (l *envLoader) addError(err string) {
	l.errs = append(l.errs, err)
}
