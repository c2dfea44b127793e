// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/skill-profiler/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
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

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintBlockScores outputs a human-readable summary of per-block scores.
func (p *Printer) PrintBlockScores(blockScores []types.BlockScore) {
	if len(blockScores) == 0 {
		return
	}

	var sb strings.Builder
	for _, bs := range blockScores {
		sb.WriteString(fmt.Sprintf("%-32s %5.1f%%\n", bs.BlockName, bs.Score*100))
	}

	p.printBox("BLOCK SCORES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the ranked role shortlist with tiers and gaps.
func (p *Printer) PrintRecommendations(recommendations []types.Recommendation) {
	if len(recommendations) == 0 {
		return
	}

	var sb strings.Builder
	for i, rec := range recommendations {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, rec.Role.Title))
		sb.WriteString(fmt.Sprintf("    Score: %.2f (%s)\n", rec.Score, rec.Compatibility))
		if len(rec.MissingCompetencies) > 0 {
			missing := strings.Join(rec.MissingCompetencies, ", ")
			if len(missing) > 40 {
				missing = missing[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Gaps: %s\n", missing))
		}
	}

	p.printBox("ROLE RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary outputs the global score and strong/weak competency lists.
func (p *Printer) PrintSummary(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Global score: %.0f%%\n", result.GlobalScore*100))

	if len(result.StrongCompetencies) > 0 {
		sb.WriteString("\nStrengths:\n")
		count := min(len(result.StrongCompetencies), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.StrongCompetencies[i]))
		}
	}

	if len(result.WeakCompetencies) > 0 {
		sb.WriteString("\nAreas to improve:\n")
		count := min(len(result.WeakCompetencies), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.WeakCompetencies[i]))
		}
	}

	p.printBox("ANALYSIS SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}
