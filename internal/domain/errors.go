package domain

import "errors"

// Terminal outcomes. None of these change on a blind retry; the caller has to
// re-read state and decide.
var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrDrawNotActive       = errors.New("draw not active")
	ErrDrawNotReady        = errors.New("draw not ready")
	ErrNoEntries           = errors.New("no entries")
	ErrAlreadySettled      = errors.New("draw already settled")
	ErrAlreadyCredited     = errors.New("payment already credited")
	ErrInvalidSelection    = errors.New("invalid winner selection")
	ErrSpinCooldown        = errors.New("daily spin not available yet")
	ErrInvalidDraw         = errors.New("invalid draw definition")

	ErrAccountNotFound = errors.New("account not found")
	ErrDrawNotFound    = errors.New("draw not found")
)

// ErrTransient marks storage failures (lock timeouts, serialization
// failures, deadlocks) that are safe to retry as-is.
var ErrTransient = errors.New("transient storage failure")

// IsTransient reports whether err is safe to retry without re-reading state.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}
