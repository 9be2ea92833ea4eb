// Package observability provides boxed CLI output for match results and logger setup.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-match/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted CLI output
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
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrap(line, boxWidth-4) {
			fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, wrapped)
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// wrap splits line on spaces so that no piece exceeds width bytes.
// Continuation lines are indented by two extra spaces; overlong words are truncated.
func wrap(line string, width int) []string {
	if len(line) <= width {
		return []string{line}
	}

	indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
	var out []string
	current := ""
	for _, word := range strings.Fields(line) {
		if limit := width - len(indent) - 2; len(word) > limit {
			word = word[:limit-3] + "..."
		}
		switch {
		case current == "":
			current = indent + word
		case len(current)+1+len(word) <= width:
			current += " " + word
		default:
			out = append(out, current)
			current = indent + "  " + word
		}
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}

// PrintMatchResult outputs a human-readable summary of one analysis.
func (p *Printer) PrintMatchResult(label string, result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	o := result.OverallMatch
	sb.WriteString(fmt.Sprintf("Overall:  %d%% (%s)\n", o.Percentage, o.Grade))
	sb.WriteString(fmt.Sprintf("Summary:  %s\n", o.Summary))
	sb.WriteString("\n")

	if len(result.Skills.Matching) > 0 {
		sb.WriteString("Matching Skills:\n")
		for _, s := range result.Skills.Matching {
			sb.WriteString(fmt.Sprintf("  + %s\n", s.Name))
		}
		sb.WriteString("\n")
	}

	if len(result.Skills.Missing) > 0 {
		sb.WriteString("Missing Skills:\n")
		count := min(len(result.Skills.Missing), maxItemsToShow)
		for i := 0; i < count; i++ {
			s := result.Skills.Missing[i]
			sb.WriteString(fmt.Sprintf("  - %s (%s)\n", s.Name, s.Importance))
		}
		if len(result.Skills.Missing) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Skills.Missing)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	e := result.Experience
	sb.WriteString(fmt.Sprintf("Experience:  %s\n", types.FormatYears(float64(e.TotalExperienceYears))))
	sb.WriteString(fmt.Sprintf("Avg tenure:  %s\n", e.AverageTenure))
	if len(e.Gaps) > 0 {
		sb.WriteString("Gaps:\n")
		for _, g := range e.Gaps {
			sb.WriteString(fmt.Sprintf("  %s (%s)\n", g.Period, g.Duration))
		}
	}

	if len(result.ScreeningQuestions) > 0 {
		sb.WriteString("\nScreening Questions:\n")
		for i, q := range result.ScreeningQuestions {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, q))
		}
	}

	title := "MATCH RESULT"
	if label != "" {
		title += ": " + label
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintError outputs a failed analysis in the same box layout.
func (p *Printer) PrintError(label string, err error) {
	title := "ANALYSIS FAILED"
	if label != "" {
		title += ": " + label
	}
	p.printBox(title, err.Error())
}

// PrintAnswer outputs a chat question and its answer.
func (p *Printer) PrintAnswer(question, answer string) {
	p.printBox("Q: "+question, answer)
}

// PrintVocabulary outputs the active skill vocabulary.
func (p *Printer) PrintVocabulary(source string, skills []string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source: %s\n", source))
	sb.WriteString(fmt.Sprintf("Skills: %d\n\n", len(skills)))
	sb.WriteString(strings.Join(skills, ", "))

	p.printBox("SKILL VOCABULARY", sb.String())
}
