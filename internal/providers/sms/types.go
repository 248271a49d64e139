package sms

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/sms-notifier/internal/config"
)

// Payload encapsulates the data required to send one SMS via a provider.
type Payload struct {
	RequestID string
	From      string
	To        string
	Body      string
}

// RawResponse describes the low-level provider response for a send attempt.
// On failure Code holds the HTTP status and ErrorCode the provider error code
// when the provider reported them.
type RawResponse struct {
	ID        string
	Code      int
	ErrorCode int
	Status    string
	Body      string
	Timestamp time.Time
}

// Provider represents an outbound SMS provider client.
type Provider interface {
	Send(ctx context.Context, payload *Payload) (*RawResponse, error)
}

// Factory constructs a provider client from credentials. The notifier calls it
// once per send attempt.
type Factory func(cfg config.TwilioConfig, logger zerolog.Logger) (Provider, error)
