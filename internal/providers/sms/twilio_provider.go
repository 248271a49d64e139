//go:build !notwilio

package sms

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/example/sms-notifier/internal/config"
)

// messageCreator is the slice of the Twilio REST API the provider uses.
// *openapi.ApiService satisfies it.
type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioOption customises the behaviour of the Twilio provider.
type TwilioOption func(*TwilioProvider)

// WithTwilioClock overrides the clock used for timestamps.
func WithTwilioClock(now func() time.Time) TwilioOption {
	return func(p *TwilioProvider) {
		if now != nil {
			p.now = now
		}
	}
}

func withMessageCreator(api messageCreator) TwilioOption {
	return func(p *TwilioProvider) {
		if api != nil {
			p.api = api
		}
	}
}

// TwilioProvider sends SMS through the Twilio Messages API using the official
// Go SDK.
type TwilioProvider struct {
	logger      zerolog.Logger
	accountSID  string
	defaultFrom string
	api         messageCreator
	now         func() time.Time
}

// NewTwilioProvider builds a Twilio REST client from the supplied credentials.
func NewTwilioProvider(cfg config.TwilioConfig, logger zerolog.Logger, opts ...TwilioOption) (*TwilioProvider, error) {
	if strings.TrimSpace(cfg.AccountSID) == "" {
		return nil, errors.New("twilio sms provider: account SID is required")
	}
	if strings.TrimSpace(cfg.AuthToken) == "" {
		return nil, errors.New("twilio sms provider: auth token is required")
	}
	if strings.TrimSpace(cfg.PhoneNumber) == "" {
		return nil, errors.New("twilio sms provider: phone number is required")
	}
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}

	provider := &TwilioProvider{
		logger:      logger,
		accountSID:  strings.TrimSpace(cfg.AccountSID),
		defaultFrom: strings.TrimSpace(cfg.PhoneNumber),
		now:         time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(provider)
		}
	}

	if provider.api == nil {
		client := twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: provider.accountSID,
			Password: strings.TrimSpace(cfg.AuthToken),
		})
		provider.api = client.Api
	}

	return provider, nil
}

// Send issues a single create-message request. The call blocks for one HTTP
// round trip and relies on the SDK's default timeout.
func (p *TwilioProvider) Send(ctx context.Context, payload *Payload) (*RawResponse, error) {
	if payload == nil {
		return nil, errors.New("twilio sms provider: payload is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	from := payload.From
	if strings.TrimSpace(from) == "" {
		from = p.defaultFrom
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(payload.To)
	params.SetFrom(from)
	params.SetBody(payload.Body)

	p.logger.Debug().
		Str("request_id", payload.RequestID).
		Str("account_sid", p.accountSID).
		Msg("creating twilio message")

	msg, err := p.api.CreateMessage(params)
	if err != nil {
		return failureResponse(err, p.now()), fmt.Errorf("twilio sms provider: create message: %w", err)
	}

	raw := &RawResponse{
		Code:      http.StatusCreated,
		Status:    "accepted",
		Timestamp: p.now(),
	}
	if msg != nil && msg.Sid != nil {
		raw.ID = *msg.Sid
	}
	if raw.ID == "" {
		return raw, errors.New("twilio sms provider: response did not include a message sid")
	}
	return raw, nil
}

func failureResponse(err error, ts time.Time) *RawResponse {
	raw := &RawResponse{Timestamp: ts}
	var restErr *twilioclient.TwilioRestError
	if errors.As(err, &restErr) {
		raw.Code = restErr.Status
		raw.ErrorCode = restErr.Code
		raw.Status = http.StatusText(restErr.Status)
		raw.Body = restErr.Message
		return raw
	}
	raw.Body = err.Error()
	return raw
}
