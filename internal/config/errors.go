package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// LoadError is returned when a config file cannot be read or parsed.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s %s", e.Message, e.Path)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ValidationError reports the first invalid config field.
type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config error: '%s' %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func newValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{
			Field:   fe.Namespace(),
			Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
			Cause:   err,
		}
	}
	return &ValidationError{Field: "config", Message: err.Error(), Cause: err}
}
