package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/example/sms-notifier/internal/config"
	"github.com/example/sms-notifier/internal/logger"
	"github.com/example/sms-notifier/internal/notifier"
	"github.com/example/sms-notifier/internal/providers/factory"
)

// Set exampleRecipient to a real number and sendExample to true to send a test
// message on the next run.
const (
	sendExample      = false
	exampleRecipient = "+12345678901"
	exampleBody      = "Hello from the SMS notifier! This is a test message."
)

const guidance = "To test SMS functionality, edit cmd/sms-notifier/main.go with a valid phone number and set sendExample to true."

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout); err != nil {
		fail("startup", err)
	}
}

func run(ctx context.Context, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	log, err := logger.New(cfg.App, "sms-notifier")
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}

	backend, err := factory.SMS(cfg.Providers, log.With().Str("component", "sms-provider").Logger())
	if err != nil {
		return err
	}

	n := notifier.New(cfg.Providers.Twilio, notifier.Dependencies{
		Factory:      backend.Factory,
		SDKAvailable: backend.Available,
		Logger:       log.With().Str("component", "notifier").Logger(),
	})

	if sendExample {
		res := n.Send(ctx, exampleRecipient, exampleBody)
		fmt.Fprintln(out, res)
		return nil
	}

	fmt.Fprintln(out, guidance)
	return nil
}

func fail(stage string, err error) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	logger.Fatal().Err(err).Str("stage", stage).Msg("sms notifier init failed")
}
