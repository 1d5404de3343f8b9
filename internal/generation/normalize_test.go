package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBullet(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Built APIs in Go", "Built APIs in Go"},
		{"surrounding whitespace", "  Built APIs in Go \n", "Built APIs in Go"},
		{"dash marker", "- Built APIs", "Built APIs"},
		{"asterisk marker", "* Built APIs", "Built APIs"},
		{"bullet glyph", "• Built APIs", "Built APIs"},
		{"bullet glyph no space", "•Built APIs", "Built APIs"},
		{"middle dot", "· Built APIs", "Built APIs"},
		{"en dash", "– Built APIs", "Built APIs"},
		{"numbered dot", "1. Built APIs", "Built APIs"},
		{"numbered paren", "2) Built APIs", "Built APIs"},
		{"only one marker stripped", "- • Built APIs", "• Built APIs"},
		{"internal whitespace", "Built\tAPIs   in\nGo", "Built APIs in Go"},
		{"leading number kept", "30% faster builds after CI rewrite", "30% faster builds after CI rewrite"},
		{"negative metric kept", "-20% p99 latency via caching", "-20% p99 latency via caching"},
		{"markdown bold kept", "**Led** migration of billing to Go", "**Led** migration of billing to Go"},
		{"markdown italic kept", "*Kubernetes* rollout across 3 regions", "*Kubernetes* rollout across 3 regions"},
		{"decimal kept", "3.5x throughput from batching", "3.5x throughput from batching"},
		{"hyphen inside kept", "Built event-driven services", "Built event-driven services"},
		{"marker only", "-", ""},
		{"blank", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeBullet(tt.input))
		})
	}
}

func TestNormalizeBullets_KeepsCountAndOrder(t *testing.T) {
	got := NormalizeBullets([]string{"• Second", "", "  ", "1. First", "-"})
	assert.Equal(t, []string{"Second", "", "", "First", ""}, got)
}

func TestNormalizeBullets_Empty(t *testing.T) {
	got := NormalizeBullets(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestHasText(t *testing.T) {
	assert.False(t, hasText(nil))
	assert.False(t, hasText([]string{"", ""}))
	assert.True(t, hasText([]string{"", "Built APIs"}))
}
