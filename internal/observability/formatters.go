// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resumate/internal/generation"
	"github.com/jonathan/resumate/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// textWidth is the usable width inside a box
	textWidth = boxWidth - 4
	// previewLength is how much of each input the request summary shows
	previewLength = 40
)

// Printer handles formatted output for the generate command
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, textWidth)))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRequest outputs a short summary of the inputs being sent.
func (p *Printer) PrintRequest(req types.GenerationRequest) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job description: %d chars\n", utf8.RuneCountInString(strings.TrimSpace(req.JobDescription))))
	sb.WriteString(fmt.Sprintf("  %s\n", preview(req.JobDescription)))
	sb.WriteString(fmt.Sprintf("Resume:          %d chars\n", utf8.RuneCountInString(strings.TrimSpace(req.ResumeText))))
	sb.WriteString(fmt.Sprintf("  %s", preview(req.ResumeText)))

	p.printBox("REQUEST", sb.String())
}

// PrintResult outputs the generated bullets, or the error message.
// Bullets are wrapped rather than truncated so they can be copied in full.
func (p *Printer) PrintResult(result types.GenerationResult) {
	if result.Failed() {
		message := result.Error
		if message == "" {
			message = "No bullets were generated."
		}
		p.printBox("❌ GENERATION FAILED", strings.Join(wrap(message, textWidth), "\n"))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generated %d bullets:\n", len(result.Bullets)))
	for _, bullet := range result.Bullets {
		sb.WriteString("\n")
		for i, line := range wrap(bullet, textWidth-2) {
			if i == 0 {
				sb.WriteString(fmt.Sprintf("• %s\n", line))
			} else {
				sb.WriteString(fmt.Sprintf("  %s\n", line))
			}
		}
	}

	p.printBox("TAILORED BULLETS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReview outputs guideline findings for the generated bullets.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReview(findings []generation.Finding) {
	if len(findings) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("✅ ALL GUIDELINE CHECKS PASSED"))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d deviations:\n\n", len(findings)))

	for i, f := range findings {
		if f.Index >= 0 {
			sb.WriteString(fmt.Sprintf("⚠ %s (bullet %d)\n", f.Rule, f.Index+1))
		} else {
			sb.WriteString(fmt.Sprintf("⚠ %s\n", f.Rule))
		}
		sb.WriteString(fmt.Sprintf("  %s", f.Detail))
		if i < len(findings)-1 {
			sb.WriteString("\n\n")
		}
	}

	p.printBox("GUIDELINE CHECKS", sb.String())
}

// preview returns the first line of s, shortened for display
func preview(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return truncate(s, previewLength)
}

// truncate shortens s to width runes, ending with "..." when cut
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// pad right-pads s with spaces to the box text width, counting runes
func pad(s string) string {
	if n := utf8.RuneCountInString(s); n < textWidth {
		return s + strings.Repeat(" ", textWidth-n)
	}
	return s
}

// wrap breaks s into lines of at most width runes on word boundaries.
// Words longer than width are left to truncate.
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}
