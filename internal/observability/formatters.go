// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/types"
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

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// Progress returns a callback printing one line per finished analysis step.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) Progress() pipeline.ProgressCallback {
	return func(e pipeline.ProgressEvent) {
		fmt.Fprintf(p.out, "→ %s: %s\n", e.Step, e.Message)
	}
}

// PrintAnalysis outputs a human-readable summary of an analysis result.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Text length: %d characters\n", result.TextLength))
	sb.WriteString(fmt.Sprintf("Skills:      %s\n", joinOrNone(result.ExtractedSkills)))
	sb.WriteString(fmt.Sprintf("Roles:       %s\n", joinOrNone(result.PredictedRoles)))
	sb.WriteString(fmt.Sprintf("ATS score:   %d/100\n", result.ATS.Score))

	if len(result.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		for _, s := range result.Suggestions {
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
	}

	p.printBox("RESUME ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
	p.PrintATS(&result.ATS)
	p.PrintProvenance(result.SkillsProvenance)
}

// PrintATS outputs the ATS score breakdown.
func (p *Printer) PrintATS(ats *types.ATSBreakdown) {
	if ats == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:        %d\n", ats.Score))
	sb.WriteString(fmt.Sprintf("Skill match:  %.0f%%\n", ats.SkillMatchRatio*100))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Skill:       %.3f × %.2f\n", ats.ComponentScores.Skill, ats.Weights.Skill))
	sb.WriteString(fmt.Sprintf("Experience:  %.3f × %.2f\n", ats.ComponentScores.Experience, ats.Weights.Experience))
	sb.WriteString(fmt.Sprintf("Education:   %.3f × %.2f\n", ats.ComponentScores.Education, ats.Weights.Education))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Matched: %s\n", joinOrNone(ats.MatchedSkills)))
	sb.WriteString(fmt.Sprintf("Missing: %s", joinOrNone(ats.MissingSkills)))

	p.printBox("ATS BREAKDOWN", sb.String())
}

// PrintProvenance outputs the first snippet found for each skill.
func (p *Printer) PrintProvenance(provenance map[string][]string) {
	if len(provenance) == 0 {
		return
	}

	skills := make([]string, 0, len(provenance))
	for skill := range provenance {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	var sb strings.Builder
	count := min(len(skills), maxItemsToShow)
	for i := 0; i < count; i++ {
		snippets := provenance[skills[i]]
		sb.WriteString(fmt.Sprintf("%s (%d)\n", skills[i], len(snippets)))
		if len(snippets) > 0 {
			sb.WriteString(fmt.Sprintf("  \"%s\"\n", flatten(snippets[0])))
		}
	}
	if len(skills) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more skills\n", len(skills)-maxItemsToShow))
	}

	p.printBox("SKILL PROVENANCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatchReport outputs the summary and top scores of a batch run.
func (p *Printer) PrintBatchReport(report *types.BatchReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:      %s\n", report.RunID))
	sb.WriteString(fmt.Sprintf("Total:    %d\n", report.Summary.Total))
	sb.WriteString(fmt.Sprintf("Scored:   %d\n", report.Summary.Scored))
	sb.WriteString(fmt.Sprintf("Skipped:  %d\n", report.Summary.Skipped))
	sb.WriteString(fmt.Sprintf("Mean:     %.2f\n", report.Summary.MeanScore))

	shown := 0
	for _, item := range report.Items {
		if item.ATSScore == nil {
			continue
		}
		if shown == 0 {
			sb.WriteString("\n")
		}
		if shown == maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more\n", report.Summary.Scored-maxItemsToShow))
			break
		}
		label := item.CandidateID
		if item.Name != "" {
			label = fmt.Sprintf("%s (%s)", item.Name, item.CandidateID)
		}
		sb.WriteString(fmt.Sprintf("%3d  %s\n", *item.ATSScore, label))
		shown++
	}

	p.printBox("BATCH SCORES", strings.TrimSuffix(sb.String(), "\n"))
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

// flatten collapses whitespace runs so multi-line snippets fit on one line.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
