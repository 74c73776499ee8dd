package services

import "errors"

// ErrInvalidArgument is matched by every ValidationError.
var ErrInvalidArgument = errors.New("invalid argument")

// ValidationError reports input rejected before any store access.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrInvalidArgument) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func invalidArgument(message string) error {
	return &ValidationError{Message: message}
}
