package generation

import (
	"regexp"
	"strings"
)

// listMarker matches one leading list marker. Dashes and asterisks need
// trailing whitespace (or nothing after them) so "-20%" and "**Led**" survive.
var listMarker = regexp.MustCompile(`^(?:[•·▪◦‣]\s*|[-*–—](?:\s+|$)|\(?\d{1,2}[.)]\s+)`)

// NormalizeBullets cleans model output for display. The result has one entry
// per input bullet in the same order; entries with no text become "".
func NormalizeBullets(bullets []string) []string {
	out := make([]string, len(bullets))
	for i, b := range bullets {
		out[i] = normalizeBullet(b)
	}
	return out
}

// hasText reports whether any bullet is non-blank
func hasText(bullets []string) bool {
	for _, b := range bullets {
		if b != "" {
			return true
		}
	}
	return false
}

// normalizeBullet strips a single list marker and collapses internal whitespace
func normalizeBullet(bullet string) string {
	text := listMarker.ReplaceAllString(strings.TrimSpace(bullet), "")
	return strings.Join(strings.Fields(text), " ")
}
