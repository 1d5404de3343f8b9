package generation

import (
	"fmt"
	"strings"
)

// Bullet count the prompt asks for.
const (
	MinBullets = 3
	MaxBullets = 6
)

// Review rules
const (
	RuleCount      = "count"
	RuleWeakOpener = "weak_opener"
	RuleFiller     = "filler_phrase"
	RuleBlank      = "blank"
)

// Openers that signal a duty rather than an action
var weakOpeners = map[string]bool{
	"responsible": true, "helped": true, "assisted": true, "worked": true,
	"participated": true, "involved": true, "tasked": true, "duties": true,
	"i": true, "we": true, "my": true, "was": true,
}

// fillerPhrases are the phrases the prompt tells the model to avoid.
var fillerPhrases = []string{
	"utilized strong skills",
	"demonstrated ability",
	"team player",
	"hard-working",
	"detail-oriented",
	"results-driven",
	"proven track record",
	"think outside the box",
	"go-getter",
	"synergy",
}

// Finding is a single guideline deviation. Index is -1 for list-level findings.
type Finding struct {
	Index  int
	Rule   string
	Detail string
}

// Review checks normalized bullets against the prompt's guidelines.
// Findings are advisory and never change the result.
func Review(bullets []string) []Finding {
	var findings []Finding

	if n := len(bullets); n < MinBullets || n > MaxBullets {
		findings = append(findings, Finding{
			Index:  -1,
			Rule:   RuleCount,
			Detail: fmt.Sprintf("got %d bullets, want %d to %d", n, MinBullets, MaxBullets),
		})
	}

	for i, bullet := range bullets {
		if bullet == "" {
			findings = append(findings, Finding{Index: i, Rule: RuleBlank, Detail: "bullet has no text"})
			continue
		}

		textLower := strings.ToLower(bullet)

		if word := firstWord(textLower); weakOpeners[word] {
			findings = append(findings, Finding{Index: i, Rule: RuleWeakOpener, Detail: word})
		}

		for _, phrase := range findPhrases(textLower, fillerPhrases) {
			findings = append(findings, Finding{Index: i, Rule: RuleFiller, Detail: phrase})
		}
	}

	return findings
}

func firstWord(textLower string) string {
	words := strings.Fields(textLower)
	if len(words) == 0 {
		return ""
	}
	return strings.TrimRight(words[0], ".,!?;:")
}

// findPhrases returns the phrases present in text, case-insensitive, without duplicates
func findPhrases(textLower string, phrases []string) []string {
	var found []string
	seen := make(map[string]bool)

	for _, phrase := range phrases {
		normalized := strings.ToLower(strings.TrimSpace(phrase))
		if normalized == "" || seen[normalized] {
			continue
		}
		if strings.Contains(textLower, normalized) {
			found = append(found, phrase)
			seen[normalized] = true
		}
	}

	return found
}
