package factory

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/example/sms-notifier/internal/config"
	smsprovider "github.com/example/sms-notifier/internal/providers/sms"
)

// SMSBackend is the resolved provider binding handed to the notifier.
// Available is false when the configured backend cannot be used in this
// binary; Factory is nil in that case.
type SMSBackend struct {
	Name      string
	Factory   smsprovider.Factory
	Available bool
}

// SMS resolves the configured SMS backend once at startup. The Twilio backend
// is only available when the SDK binding was compiled in.
func SMS(cfg config.ProviderConfig, logger zerolog.Logger) (SMSBackend, error) {
	backend := normalize(cfg.SMSProvider, config.SMSProviderTwilio)
	switch backend {
	case config.SMSProviderTwilio:
		factory, ok := twilioSDK()
		if !ok {
			logger.Warn().
				Str("backend", backend).
				Msg("twilio sdk not compiled into this build; sms sends will fail")
			return SMSBackend{Name: backend}, nil
		}
		logger.Info().
			Str("backend", backend).
			Msg("sms provider initialised")
		return SMSBackend{Name: backend, Factory: factory, Available: true}, nil
	case config.SMSProviderMock:
		provider := smsprovider.NewMockProvider(logger)
		logger.Info().
			Str("backend", backend).
			Msg("sms provider initialised")
		return SMSBackend{Name: backend, Factory: provider.Factory(), Available: true}, nil
	default:
		return SMSBackend{}, fmt.Errorf("factory: unsupported sms provider backend %q", cfg.SMSProvider)
	}
}

var twilioSDK = smsprovider.TwilioSDK

func normalize(value, def string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return def
	}
	return value
}
