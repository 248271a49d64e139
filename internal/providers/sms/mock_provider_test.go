package sms_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/sms-notifier/internal/config"
	smsprovider "github.com/example/sms-notifier/internal/providers/sms"
)

func TestMockProviderSuccess(t *testing.T) {
	fixed := time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC)
	provider := smsprovider.NewMockProvider(zerolog.Nop(),
		smsprovider.WithClock(func() time.Time { return fixed }),
		smsprovider.WithMessageID("SM123"),
	)

	payload := &smsprovider.Payload{
		RequestID: "req-1",
		From:      "+10000000000",
		To:        "+10000000001",
		Body:      "hello",
	}

	resp, err := provider.Send(context.Background(), payload)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if resp.ID != "SM123" || resp.Code != 201 || resp.Status != "accepted" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Timestamp != fixed {
		t.Fatalf("expected fixed timestamp, got %v", resp.Timestamp)
	}

	sent := provider.Sent()
	if len(sent) != 1 || sent[0] != *payload {
		t.Fatalf("expected payload to be recorded, got %+v", sent)
	}
}

func TestMockProviderGeneratesIDs(t *testing.T) {
	provider := smsprovider.NewMockProvider(zerolog.Nop())

	resp, err := provider.Send(context.Background(), &smsprovider.Payload{To: "+10000000001", Body: "hi"})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(resp.ID) < 3 || resp.ID[:2] != "SM" {
		t.Fatalf("expected SM-prefixed id, got %q", resp.ID)
	}
}

func TestMockProviderScenarios(t *testing.T) {
	tests := []struct {
		name     string
		scenario smsprovider.Scenario
		code     int
		status   string
	}{
		{name: "transient", scenario: smsprovider.ScenarioTransient, code: 429, status: "transient_failure"},
		{name: "permanent", scenario: smsprovider.ScenarioPermanent, code: 400, status: "permanent_failure"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			provider := smsprovider.NewMockProvider(zerolog.Nop(), smsprovider.WithScenario(tc.scenario))
			resp, err := provider.Send(context.Background(), &smsprovider.Payload{To: "+10000000001", Body: "hi"})
			if err == nil {
				t.Fatalf("expected error for %s scenario", tc.name)
			}
			if resp.Code != tc.code || resp.Status != tc.status {
				t.Fatalf("unexpected response: %+v", resp)
			}
			if resp.ID != "" {
				t.Fatalf("expected no message id on failure, got %q", resp.ID)
			}
		})
	}
}

func TestMockProviderSendError(t *testing.T) {
	sendErr := errors.New("Invalid 'To' Phone Number")
	provider := smsprovider.NewMockProvider(zerolog.Nop(), smsprovider.WithSendError(sendErr))

	resp, err := provider.Send(context.Background(), &smsprovider.Payload{To: "nope", Body: "hi"})
	if !errors.Is(err, sendErr) {
		t.Fatalf("expected configured error, got %v", err)
	}
	if resp.Body != sendErr.Error() {
		t.Fatalf("expected error text in body, got %q", resp.Body)
	}
}

func TestMockProviderFactoryRecordsConstructions(t *testing.T) {
	provider := smsprovider.NewMockProvider(zerolog.Nop())
	creds := config.TwilioConfig{AccountSID: "AC1", AuthToken: "tok", PhoneNumber: "+10000000000"}

	built, err := provider.Factory()(creds, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected factory error: %v", err)
	}
	if built != provider {
		t.Fatalf("expected factory to return the mock itself")
	}

	got := provider.Constructions()
	if len(got) != 1 || got[0] != creds {
		t.Fatalf("expected one recorded construction, got %+v", got)
	}
}

func TestMockProviderFactoryConstructError(t *testing.T) {
	constructErr := errors.New("bad credentials")
	provider := smsprovider.NewMockProvider(zerolog.Nop(), smsprovider.WithConstructError(constructErr))

	if _, err := provider.Factory()(config.TwilioConfig{}, zerolog.Nop()); !errors.Is(err, constructErr) {
		t.Fatalf("expected construct error, got %v", err)
	}
	if len(provider.Constructions()) != 1 {
		t.Fatalf("expected failed construction to be recorded")
	}
}

func TestMockProviderRespectsContextCancellation(t *testing.T) {
	provider := smsprovider.NewMockProvider(zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := provider.Send(ctx, &smsprovider.Payload{To: "+10000000001"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation error, got %v", err)
	}
	if len(provider.Sent()) != 0 {
		t.Fatalf("expected cancelled send not to be recorded")
	}
}
