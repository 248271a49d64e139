package notifier

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/example/sms-notifier/internal/config"
	smsprovider "github.com/example/sms-notifier/internal/providers/sms"
)

// Dependencies groups the collaborators of a Notifier. SDKAvailable is the
// capability flag resolved at startup; when it is false, or Factory is nil,
// every send fails without touching the provider.
type Dependencies struct {
	Factory      smsprovider.Factory
	SDKAvailable bool
	Logger       zerolog.Logger
	Now          func() time.Time
	NewRequestID func() string
}

// Notifier sends single SMS notifications. It never returns an error or
// panics past Send; callers inspect the returned Result.
type Notifier struct {
	creds     config.TwilioConfig
	factory   smsprovider.Factory
	available bool
	logger    zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// New constructs a Notifier. The SDK availability check happens here, once,
// and its result is reused by every send.
func New(creds config.TwilioConfig, deps Dependencies) *Notifier {
	logger := deps.Logger
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}
	n := &Notifier{
		creds:     creds,
		factory:   deps.Factory,
		available: deps.SDKAvailable && deps.Factory != nil,
		logger:    logger,
		now:       deps.Now,
		newID:     deps.NewRequestID,
	}
	if n.now == nil {
		n.now = time.Now
	}
	if n.newID == nil {
		n.newID = uuid.NewString
	}
	return n
}

// Available reports whether the provider SDK could be resolved at startup.
func (n *Notifier) Available() bool {
	return n.available
}

// Send submits body to recipient. Checks run in order: SDK availability,
// credential presence, then one client construction and one create-message
// request.
func (n *Notifier) Send(ctx context.Context, recipient, body string) Result {
	return n.send(ctx, SendRequest{To: recipient, Body: body})
}

// SendBulk sends body to each recipient in turn. Failures do not stop the
// remaining sends.
func (n *Notifier) SendBulk(ctx context.Context, recipients []string, body string) BulkResult {
	out := BulkResult{Results: make([]Result, 0, len(recipients))}
	for _, to := range recipients {
		res := n.Send(ctx, to, body)
		if res.OK {
			out.Sent++
		} else {
			out.Failed++
		}
		out.Results = append(out.Results, res)
	}
	return out
}

func (n *Notifier) send(ctx context.Context, req SendRequest) (res Result) {
	requestID := n.newID()
	log := n.logger.With().Str("request_id", requestID).Str("to", req.To).Logger()

	if !n.available {
		res = n.failure(requestID, CategoryDependencyMissing, string(CategoryDependencyMissing), nil,
			"twilio sdk not compiled into this build (built with -tags notwilio)")
		log.Error().Str("category", string(res.Category)).Msg(res.Error)
		return res
	}

	if missing := n.creds.Missing(); len(missing) > 0 {
		res = n.failure(requestID, CategoryConfigMissing, string(CategoryConfigMissing), nil,
			"twilio credentials not configured: missing "+strings.Join(missing, ", "))
		log.Warn().Str("category", string(res.Category)).Strs("missing", missing).Msg(res.Error)
		return res
	}

	// A panicking SDK still yields a structured outcome.
	defer func() {
		if r := recover(); r != nil {
			res = n.failure(requestID, CategoryProviderFailure, StatusUnknown, nil, fmt.Sprintf("provider panic: %v", r))
			log.Error().Str("category", string(res.Category)).Msg("sms send failed")
		}
	}()

	provider, err := n.factory(n.creds, n.logger)
	if err != nil {
		res = n.failure(requestID, CategoryProviderFailure, classifyError(nil, err), nil, err.Error())
		log.Error().Err(err).Str("category", string(res.Category)).Msg("sms client construction failed")
		return res
	}

	raw, err := provider.Send(ctx, &smsprovider.Payload{
		RequestID: requestID,
		From:      n.creds.PhoneNumber,
		To:        req.To,
		Body:      req.Body,
	})
	if err != nil {
		res = n.failure(requestID, CategoryProviderFailure, classifyError(raw, err), responseCode(raw), err.Error())
		log.Warn().
			Err(err).
			Str("category", string(res.Category)).
			Str("provider_status", res.Status).
			Msg("sms send failed")
		return res
	}

	res = Result{
		OK:        true,
		RequestID: requestID,
		Status:    StatusSent,
		Code:      responseCode(raw),
		Timestamp: n.now(),
	}
	if raw != nil {
		res.MessageID = raw.ID
		if !raw.Timestamp.IsZero() {
			res.Timestamp = raw.Timestamp
		}
	}
	log.Info().
		Str("provider_id", res.MessageID).
		Int("body_len", len(req.Body)).
		Msg("sms sent")
	return res
}

func (n *Notifier) failure(requestID string, category Category, status string, code *int, msg string) Result {
	return Result{
		RequestID: requestID,
		Category:  category,
		Status:    status,
		Code:      code,
		Error:     msg,
		Timestamp: n.now(),
	}
}

func responseCode(raw *smsprovider.RawResponse) *int {
	if raw == nil || raw.Code == 0 {
		return nil
	}
	c := raw.Code
	return &c
}

// classifyError maps a provider failure onto rejected, rate_limited or unknown
// using the Twilio error code first, then the HTTP status, then the error text.
func classifyError(raw *smsprovider.RawResponse, err error) string {
	if raw != nil {
		switch raw.ErrorCode {
		case 21211, 21610, 21612, 21614:
			return StatusRejected
		case 30001, 30002, 30003, 30004, 30005:
			return StatusRateLimited
		}
		switch {
		case raw.Code == http.StatusTooManyRequests:
			return StatusRateLimited
		case raw.Code >= http.StatusInternalServerError:
			return StatusRateLimited
		case raw.Code >= http.StatusBadRequest:
			return StatusRejected
		}
	}
	if isTimeout(err) {
		return StatusRateLimited
	}
	return StatusUnknown
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}
