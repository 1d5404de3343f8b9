package types

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationRequest_Validate(t *testing.T) {
	long := "Senior Go engineer building payment APIs"

	tests := []struct {
		name        string
		req         GenerationRequest
		wantErr     bool
		failedField string
	}{
		{"both valid", GenerationRequest{JobDescription: long, ResumeText: long}, false, ""},
		{"empty job description", GenerationRequest{JobDescription: "", ResumeText: long}, true, "JobDescription"},
		{"short resume", GenerationRequest{JobDescription: long, ResumeText: "Go dev"}, true, "ResumeText"},
		{"exactly ten characters", GenerationRequest{JobDescription: "0123456789", ResumeText: long}, true, "JobDescription"},
		{"eleven characters", GenerationRequest{JobDescription: "0123456789a", ResumeText: long}, false, ""},
		{"padding does not count", GenerationRequest{JobDescription: "   short    \n\t  ", ResumeText: long}, true, "JobDescription"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				assert.True(t, tt.req.Ready())
				return
			}

			require.Error(t, err)
			assert.False(t, tt.req.Ready())

			var validationErrs validator.ValidationErrors
			require.True(t, errors.As(err, &validationErrs))
			assert.Equal(t, tt.failedField, validationErrs[0].Field())
			assert.Equal(t, "trimmed_gt", validationErrs[0].Tag())
		})
	}
}

func TestMeetsMinimumLength_CountsRunes(t *testing.T) {
	// ten multi-byte runes are still only ten characters
	assert.False(t, MeetsMinimumLength(strings.Repeat("é", 10)))
	assert.True(t, MeetsMinimumLength(strings.Repeat("é", 11)))
}

func TestGenerationResult_Failed(t *testing.T) {
	assert.False(t, GenerationResult{Bullets: []string{"Built things"}}.Failed())
	assert.True(t, GenerationResult{Error: "nope"}.Failed())
	assert.True(t, GenerationResult{}.Failed())
}

func TestGenerationResult_JSONOmitsEmptyError(t *testing.T) {
	data, err := json.Marshal(GenerationResult{Bullets: []string{"a", "b"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"bullets":["a","b"]}`, string(data))

	data, err = json.Marshal(GenerationResult{Bullets: []string{}, Error: "X"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"bullets":[],"error":"X"}`, string(data))
}

func TestRegisterValidators(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterValidators(v))

	type input struct {
		Text string `validate:"trimmed_gt=3"`
	}
	assert.NoError(t, v.Struct(input{Text: " abcd "}))
	assert.Error(t, v.Struct(input{Text: "  abc  "}))
}
