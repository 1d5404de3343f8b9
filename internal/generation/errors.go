package generation

import (
	"errors"
	"fmt"

	"github.com/jonathan/resumate/internal/types"
)

// User-facing messages. Causes are logged, never shown.
const (
	GenericFailureMessage   = "Failed to generate tailored bullets. Please try again later."
	InsufficientInfoMessage = "Not enough information to generate tailored bullets. Please add more detail to the job description and resume."
	InvalidRequestMessage   = "Job description and resume must each be more than 10 characters."
)

// UpstreamError represents a failure talking to the model provider
// (transport, authentication, quota, timeout).
type UpstreamError struct {
	Message string
	Cause   error
}

func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upstream call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("upstream call failed: %s", e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// ReplyKind classifies an unusable model reply.
type ReplyKind string

// Reply kinds
const (
	ReplyEmpty          ReplyKind = "empty"
	ReplyMalformed      ReplyKind = "malformed"
	ReplySchemaMismatch ReplyKind = "schema_mismatch"
	ReplyMissingBullets ReplyKind = "missing_bullets"
)

// ReplyError represents a model reply that could not be used.
type ReplyError struct {
	Kind    ReplyKind
	Message string
	Cause   error
}

func (e *ReplyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unusable reply (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("unusable reply (%s): %s", e.Kind, e.Message)
}

func (e *ReplyError) Unwrap() error {
	return e.Cause
}

// InsufficientInfoError is returned when the model produced no usable bullets.
// Reason carries the model's own explanation, if it gave one.
type InsufficientInfoError struct {
	Reason string
}

func (e *InsufficientInfoError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("insufficient information: %s", e.Reason)
	}
	return "insufficient information"
}

// UserMessage returns the message shown to the user.
func (e *InsufficientInfoError) UserMessage() string {
	if e.Reason != "" {
		return e.Reason
	}
	return InsufficientInfoMessage
}

// InvalidRequestError is returned when the inputs fail the minimum-length check.
type InvalidRequestError struct {
	Cause error
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %v", e.Cause)
}

func (e *InvalidRequestError) Unwrap() error {
	return e.Cause
}

// resultFromError maps any generation error to a result with a user-safe message.
func resultFromError(err error) types.GenerationResult {
	var insufficient *InsufficientInfoError
	var invalid *InvalidRequestError

	switch {
	case errors.As(err, &insufficient):
		return types.GenerationResult{Bullets: []string{}, Error: insufficient.UserMessage()}
	case errors.As(err, &invalid):
		return types.GenerationResult{Bullets: []string{}, Error: InvalidRequestMessage}
	default:
		return types.GenerationResult{Bullets: []string{}, Error: GenericFailureMessage}
	}
}
