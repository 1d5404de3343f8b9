// Package types provides type definitions for structured data shared between the adapter, the UI and the API.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// MinInputLength is the number of characters each input must exceed, after trimming, before submission is allowed.
const MinInputLength = 10

// GenerationRequest is the pair of free-text inputs submitted for tailoring.
type GenerationRequest struct {
	JobDescription string `json:"job_description" form:"job_description" validate:"trimmed_gt=10"`
	ResumeText     string `json:"resume_text" form:"resume_text" validate:"trimmed_gt=10"`
}

// GenerationResult is what the adapter hands back: bullets on success, a user-safe message otherwise.
type GenerationResult struct {
	Bullets []string `json:"bullets"`
	Error   string   `json:"error,omitempty"`
}

// Failed reports whether the result carries an error instead of bullets.
func (r GenerationResult) Failed() bool {
	return r.Error != "" || len(r.Bullets) == 0
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the custom tags registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		if err := RegisterValidators(validate); err != nil {
			panic(fmt.Sprintf("failed to register validators: %v", err))
		}
	})
	return validate
}

// RegisterValidators registers the custom validation tags used by request types.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("trimmed_gt", validateTrimmedGreaterThan); err != nil {
		return fmt.Errorf("trimmed_gt: %w", err)
	}
	return nil
}

// validateTrimmedGreaterThan checks that the trimmed rune count of a string exceeds the tag parameter.
func validateTrimmedGreaterThan(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) > limit
}

// MeetsMinimumLength is the submission predicate applied to each input.
func MeetsMinimumLength(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) > MinInputLength
}

// Validate validates the GenerationRequest using the validator.
func (r *GenerationRequest) Validate() error {
	return Validator().Struct(r)
}

// Ready reports whether both inputs satisfy the minimum-length predicate.
func (r GenerationRequest) Ready() bool {
	return MeetsMinimumLength(r.JobDescription) && MeetsMinimumLength(r.ResumeText)
}
