package llm

import (
	"testing"
)

func TestCleanJSONBlock_MarkdownCodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"bullets\": [\"Built APIs\"]}\n```",
			expected: `{"bullets": ["Built APIs"]}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"bullets\": []}\n```",
			expected: `{"bullets": []}`,
		},
		{
			name:     "code block with language",
			input:    "```javascript\n{\"bullets\": []}\n```",
			expected: `{"bullets": []}`,
		},
		{
			name:     "plain JSON",
			input:    `{"bullets": [], "error": null}`,
			expected: `{"bullets": [], "error": null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestCleanJSONBlock_PreambleText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "preamble before JSON object",
			input:    "Here are your tailored bullets:\n{\"bullets\": [\"Led migrations\"]}",
			expected: `{"bullets": ["Led migrations"]}`,
		},
		{
			name:     "JSON with trailing text",
			input:    "{\"bullets\": [\"Led migrations\"]}\n\nLet me know if you need anything else!",
			expected: `{"bullets": ["Led migrations"]}`,
		},
		{
			name:     "braces inside strings",
			input:    "Result: {\"bullets\": [\"Templated {name} fields\"]}",
			expected: `{"bullets": ["Templated {name} fields"]}`,
		},
		{
			name:     "escaped quotes",
			input:    "Result: {\"error\": \"Resume says \\\"TBD\\\"\"}",
			expected: `{"error": "Resume says \"TBD\""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestCleanJSONBlock_NonJSONPassesThrough(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace", "  \n ", ""},
		{"apology", "  Sorry, I cannot help with that.  ", "Sorry, I cannot help with that."},
		{"unbalanced", `{"bullets": ["cut off`, `{"bullets": ["cut off`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple object",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "nested objects",
			input:    `{"outer": {"inner": "value"}}`,
			expected: `{"outer": {"inner": "value"}}`,
		},
		{
			name:     "object with trailing text",
			input:    `{"key": "value"} and some more text`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "not starting with brace",
			input:    "not json",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractJSONObject(tt.input)
			if result != tt.expected {
				t.Errorf("extractJSONObject() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	if got := extractJSONArray(`["a", ["b"]] tail`); got != `["a", ["b"]]` {
		t.Errorf("extractJSONArray() = %q", got)
	}
	if got := extractJSONArray("nope"); got != "" {
		t.Errorf("extractJSONArray() = %q, want empty", got)
	}
}
