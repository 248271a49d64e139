//go:build !notwilio

package sms

import (
	"github.com/rs/zerolog"

	"github.com/example/sms-notifier/internal/config"
)

// TwilioSDK reports whether the Twilio SDK binding is compiled into this
// binary and, if so, returns the factory that builds Twilio clients.
func TwilioSDK() (Factory, bool) {
	return func(cfg config.TwilioConfig, logger zerolog.Logger) (Provider, error) {
		return NewTwilioProvider(cfg, logger)
	}, true
}
