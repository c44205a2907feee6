package usecases

import "errors"

// ErrValidation marks a malformed or missing payload field, detected
// before any store access. Wrapped errors carry the field-level message.
var ErrValidation = errors.New("validation failed")
