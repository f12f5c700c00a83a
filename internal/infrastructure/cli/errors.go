package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/ricemill/pkg/application"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known workspace errors into CLIErrors with actionable
// hints. Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, application.ErrNoScores):
		return NewCLIError("no scores computed yet", "Run 'ricemill score' first", err)
	case errors.Is(err, application.ErrNoIntake):
		return NewCLIError("no intake data to score", "Add feedback with 'ricemill add feedback' or 'ricemill seed'", err)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "does not match the feedback schema"):
		return NewCLIError("import file rejected", "Each entry needs customer_id and feature; see 'ricemill import json --help'", err)
	case strings.Contains(msg, "is not allowed while the feature is"):
		return NewCLIError("invalid lifecycle transition", "Run 'ricemill lifecycle list' to see current states", err)
	}

	return err
}
