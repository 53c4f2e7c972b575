package agent

import (
	"errors"
	"fmt"
)

// ErrNotFoundOrForbidden covers both a task that does not exist and a task
// owned by someone else. The two cases are deliberately indistinguishable so
// a caller can never probe for other users' task ids.
var ErrNotFoundOrForbidden = errors.New("task not found or does not belong to user")

// ErrModelFailure indicates the language model call itself failed or
// returned output this layer cannot parse. It is not retried here.
var ErrModelFailure = errors.New("model request failed")

// ValidationError reports malformed or out-of-range tool arguments. These
// are user-correctable and map to a 4xx at the HTTP boundary.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
