package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/jonathan/resumate/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrBadRequest indicates a body that could not be decoded
type ErrBadRequest struct {
	Cause error
}

func (e *ErrBadRequest) Error() string {
	return fmt.Sprintf("invalid request body: %v", e.Cause)
}

func (e *ErrBadRequest) Unwrap() error {
	return e.Cause
}

// ErrorResponse is the JSON body for API errors
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validation *ErrValidation
	var badRequest *ErrBadRequest
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &validation), errors.As(err, &badRequest):
		return http.StatusBadRequest
	case errors.As(err, &httpErr):
		return httpErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// errorCode returns the machine-readable code for an error response
func errorCode(err error) string {
	var validation *ErrValidation
	var badRequest *ErrBadRequest

	switch {
	case errors.As(err, &validation):
		return "validation_failed"
	case errors.As(err, &badRequest):
		return "invalid_request"
	default:
		return "internal_error"
	}
}

// formFields maps request struct fields to their form/JSON names
var formFields = map[string]string{
	"JobDescription": "job_description",
	"ResumeText":     "resume_text",
}

// validateRequest checks the minimum-length rule and converts the first failure to ErrValidation
func validateRequest(req *types.GenerationRequest) error {
	err := req.Validate()
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	field := formFields[verrs[0].Field()]
	if field == "" {
		field = verrs[0].Field()
	}
	return &ErrValidation{
		Field:   field,
		Message: fmt.Sprintf("must be more than %d characters", types.MinInputLength),
	}
}
