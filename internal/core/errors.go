// server/internal/core/errors.go
package core

import (
	"errors"
	"fmt"
)

var (
	ErrAssetNotFound         = errors.New("asset not found")
	ErrEmployerNotFound      = errors.New("employer not found")
	ErrRequestNotFound       = errors.New("request not found")
	ErrAssignmentNotFound    = errors.New("assignment not found")
	ErrOutOfStock            = errors.New("asset out of stock")
	ErrPackageLimitReached   = errors.New("package limit reached")
	ErrRequestAlreadyDecided = errors.New("request already decided")
	ErrAlreadyReturned       = errors.New("assignment already returned")
	ErrInvalidQuantity       = errors.New("invalid quantity")
	ErrInvalidOutcome        = errors.New("invalid decision outcome")
)

// PartialFailureError means a saga step succeeded but a later step or its
// compensation did not, leaving state that needs manual reconciliation.
// It is never returned for outcomes the caller can recover from on its own.
type PartialFailureError struct {
	RequestID string
	Step      string
	Err       error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("partial failure on request %s at step %q: %v", e.RequestID, e.Step, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}
