package notifier

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Result.Err, one per failure category.
var (
	ErrDependencyMissing = errors.New("sms dependency missing")
	ErrConfigMissing     = errors.New("sms configuration missing")
	ErrProvider          = errors.New("sms provider failure")
)

// ErrTransient and ErrPermanent further classify provider failures.
var (
	ErrTransient = errors.New("transient error")
	ErrPermanent = errors.New("permanent error")
)

// Err converts a failed Result into an error that wraps the sentinel for its
// category. It returns nil for successful results.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	switch r.Category {
	case CategoryDependencyMissing:
		return fmt.Errorf("%w: %s", ErrDependencyMissing, r.Error)
	case CategoryConfigMissing:
		return fmt.Errorf("%w: %s", ErrConfigMissing, r.Error)
	default:
		class := ErrTransient
		if r.Status == StatusRejected {
			class = ErrPermanent
		}
		return fmt.Errorf("%w: %w: %s", ErrProvider, class, r.Error)
	}
}
