package sms

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/sms-notifier/internal/config"
)

// Scenario enumerates the mock behaviours supported by the SMS provider.
type Scenario string

const (
	ScenarioSuccess   Scenario = "success"
	ScenarioTransient Scenario = "transient"
	ScenarioPermanent Scenario = "permanent"
)

// Option customises the mock provider.
type Option func(*MockProvider)

// WithScenario sets the scenario every send follows.
func WithScenario(s Scenario) Option {
	return func(p *MockProvider) {
		p.scenario = s
	}
}

// WithMessageID fixes the identifier returned on success.
func WithMessageID(id string) Option {
	return func(p *MockProvider) {
		p.messageID = id
	}
}

// WithSendError makes every send fail with err, as if the provider SDK raised
// it. It takes precedence over the scenario.
func WithSendError(err error) Option {
	return func(p *MockProvider) {
		p.sendErr = err
	}
}

// WithConstructError makes the factory returned by Factory fail.
func WithConstructError(err error) Option {
	return func(p *MockProvider) {
		p.constructErr = err
	}
}

// WithClock overrides the clock used to timestamp responses.
func WithClock(now func() time.Time) Option {
	return func(p *MockProvider) {
		if now != nil {
			p.now = now
		}
	}
}

// MockProvider is a deterministic in-memory SMS provider. It records every
// construction and send so callers can assert on them, and never touches the
// network.
type MockProvider struct {
	logger       zerolog.Logger
	scenario     Scenario
	messageID    string
	sendErr      error
	constructErr error
	now          func() time.Time

	mu          sync.Mutex
	rnd         *rand.Rand
	constructed []config.TwilioConfig
	sent        []Payload
}

// NewMockProvider constructs a mock SMS provider.
func NewMockProvider(logger zerolog.Logger, opts ...Option) *MockProvider {
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}
	p := &MockProvider{
		logger:   logger,
		scenario: ScenarioSuccess,
		now:      time.Now,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- ids only need to be unique in tests.
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Factory returns a Factory that hands out this provider and records the
// credentials it was built with.
func (p *MockProvider) Factory() Factory {
	return func(cfg config.TwilioConfig, _ zerolog.Logger) (Provider, error) {
		p.mu.Lock()
		p.constructed = append(p.constructed, cfg)
		p.mu.Unlock()
		if p.constructErr != nil {
			return nil, p.constructErr
		}
		return p, nil
	}
}

// Constructions returns the credentials of every factory invocation.
func (p *MockProvider) Constructions() []config.TwilioConfig {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]config.TwilioConfig(nil), p.constructed...)
}

// Sent returns a copy of every payload passed to Send.
func (p *MockProvider) Sent() []Payload {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Payload(nil), p.sent...)
}

// Send simulates sending an SMS payload according to the configured scenario.
func (p *MockProvider) Send(ctx context.Context, payload *Payload) (*RawResponse, error) {
	if payload == nil {
		return nil, errors.New("sms mock: payload is required")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	p.mu.Lock()
	p.sent = append(p.sent, *payload)
	p.mu.Unlock()

	response := &RawResponse{
		ID:        p.generateID(),
		Code:      201,
		Status:    "accepted",
		Body:      "mock: message accepted",
		Timestamp: p.now(),
	}

	if p.sendErr != nil {
		response.ID = ""
		response.Code = 400
		response.Status = "error"
		response.Body = p.sendErr.Error()
		return response, p.sendErr
	}

	switch p.scenario {
	case ScenarioSuccess:
		p.logger.Debug().Str("provider_id", response.ID).Msg("sms mock accepted message")
		return response, nil
	case ScenarioTransient:
		response.ID = ""
		response.Code = 429
		response.Status = "transient_failure"
		response.Body = "mock: transient failure"
		return response, errors.New("sms mock transient error: rate limited")
	case ScenarioPermanent:
		response.ID = ""
		response.Code = 400
		response.ErrorCode = 21211
		response.Status = "permanent_failure"
		response.Body = "mock: permanent failure"
		return response, errors.New("sms mock permanent error: invalid recipient")
	default:
		response.ID = ""
		response.Status = "unknown"
		response.Body = "mock: unknown scenario"
		return response, fmt.Errorf("sms mock unknown scenario: %s", p.scenario)
	}
}

func (p *MockProvider) generateID() string {
	if strings.TrimSpace(p.messageID) != "" {
		return p.messageID
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return fmt.Sprintf("SM%032x", p.rnd.Uint64())
}
