package estimation

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrPredictorNotConfigured = errors.New("count predictor not configured")
)

// InvalidInputError indica qué campo no se pudo interpretar.
// errors.Is(err, ErrInvalidInput) es true.
type InvalidInputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid input: %s=%q %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }
