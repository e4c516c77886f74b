package answer

import (
	"fmt"

	"github.com/KirkDiggler/closest/internal/common/errs"
)

// AnswerError is a custom error type for answer service construction errors
type AnswerError string

// Error implements the error interface
func (e AnswerError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig     AnswerError = "config cannot be nil"
	ErrNilAnswerRepo AnswerError = "answer repository cannot be nil"
	ErrNilClock      AnswerError = "clock cannot be nil"
)

// BatchError reports the first item of a batch that failed validation.
// Nothing from the batch was stored.
type BatchError struct {
	Index int
	Err   *errs.Error
}

// Error implements the error interface
func (e *BatchError) Error() string {
	return fmt.Sprintf("item %d: %s", e.Index, e.Err.Message)
}

// Unwrap exposes the item error so errs.KindOf sees its kind
func (e *BatchError) Unwrap() error {
	return e.Err
}
