package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := pipeline.New().AnalyzeText("Python, AWS,\nDocker", types.CandidateProfile{Skills: "python,aws,docker,kubernetes"})

	p.PrintAnalysis(result)
	output := buf.String()

	assert.Contains(t, output, "RESUME ANALYSIS")
	assert.Contains(t, output, "ATS BREAKDOWN")
	assert.Contains(t, output, "SKILL PROVENANCE")
	assert.Contains(t, output, "aws, docker, python")
	assert.Contains(t, output, "backend, devops, data_scientist")
	assert.Contains(t, output, "52/100")
	assert.Contains(t, output, "Missing: kubernetes")
	assert.Contains(t, output, "Skill match:  75%")
	assert.Contains(t, output, pipeline.SuggestionKeywords)
	assert.Contains(t, output, `"Python, AWS, Docker"`)
}

func TestPrintAnalysis_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(nil)
	p.PrintATS(nil)
	p.PrintProvenance(nil)
	p.PrintBatchReport(nil)

	assert.Empty(t, buf.String())
}

func TestPrintAnalysis_EmptyResume(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(pipeline.New().AnalyzeText("", types.CandidateProfile{}))
	output := buf.String()

	assert.Contains(t, output, "Skills:      (none)")
	assert.Contains(t, output, "0/100")
	assert.NotContains(t, output, "SKILL PROVENANCE")
}

func TestPrintProvenance_Truncates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	provenance := map[string][]string{}
	for _, s := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		provenance[s] = []string{strings.Repeat(s, 100)}
	}

	p.PrintProvenance(provenance)
	output := buf.String()

	assert.Contains(t, output, "... and 2 more skills")
	assert.NotContains(t, output, "g (1)")
	assert.Contains(t, output, "...")
}

func TestPrintBatchReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	score := 73
	report := &types.BatchReport{
		RunID: uuid.New(),
		Items: []types.BatchItem{
			{CandidateID: "7", Name: "Ada", HasResume: true, ATSScore: &score},
			{CandidateID: "8", HasResume: false},
		},
		Summary: types.BatchSummary{Total: 2, Scored: 1, Skipped: 1, MeanScore: 73},
	}

	p.PrintBatchReport(report)
	output := buf.String()

	assert.Contains(t, output, "BATCH SCORES")
	assert.Contains(t, output, report.RunID.String())
	assert.Contains(t, output, " 73  Ada (7)")
	assert.Contains(t, output, "Skipped:  1")
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	pipeline.New(pipeline.WithProgress(p.Progress())).AnalyzeText("linux", types.CandidateProfile{})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"→ extract_skills: skills extracted",
		"→ predict_roles: roles predicted",
		"→ score_ats: ats computed",
	}, lines)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "ééééééé...", truncate(strings.Repeat("é", 20), 10))
}
