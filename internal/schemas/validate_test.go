package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const testSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name", "score"],
	"properties": {
		"name": {"type": "string"},
		"score": {"type": "integer", "minimum": 0}
	}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSON_Files(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", testSchema)

	tests := []struct {
		name      string
		document  string
		wantError bool
	}{
		{name: "valid", document: `{"name": "go", "score": 3}`},
		{name: "missing field", document: `{"name": "go"}`, wantError: true},
		{name: "wrong type", document: `{"name": "go", "score": "high"}`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonPath := writeFile(t, dir, tt.name+".json", tt.document)
			err := ValidateJSON(schemaPath, jsonPath)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			validationErr, ok := err.(*ValidationError)
			require.True(t, ok, "error should be ValidationError type")
			assert.Greater(t, len(validationErr.Errors), 0)
		})
	}
}

func TestValidateJSON_NonExistentFiles(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", testSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"name": "go", "score": 1}`)

	err := ValidateJSON(filepath.Join(dir, "missing.json"), jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = ValidateJSON(schemaPath, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString_InvalidSchema(t *testing.T) {
	err := ValidateJSONString(`{ invalid`, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidationError_Message(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"score": -1}`)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "validation failed:")
	assert.Contains(t, err.Error(), "score")
}

func TestValidateAnalysisResult(t *testing.T) {
	a := pipeline.New()
	profile := types.CandidateProfile{Skills: "go, kubernetes, rust", ExperienceYears: "4", Education: "Master of Science"}

	for _, text := range []string{"", "Go and Kubernetes on Linux with c++ and C# tooling"} {
		result := a.AnalyzeText(text, profile)
		assert.NoError(t, ValidateAnalysisResult(result), "text %q", text)
	}
}

func TestValidateAnalysisResult_RejectsOutOfRange(t *testing.T) {
	result := pipeline.New().AnalyzeText("python", types.CandidateProfile{})
	result.ATS.Score = 140

	err := ValidateAnalysisResult(result)
	require.Error(t, err)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "ats.ats_score", validationErr.Errors[0].Field)
}

func TestValidateAnalysisResult_RejectsNullSlices(t *testing.T) {
	result := pipeline.New().AnalyzeText("python", types.CandidateProfile{})
	result.PredictedRoles = nil

	assert.Error(t, ValidateAnalysisResult(result))
}

func TestValidateBatchReport(t *testing.T) {
	score := 42
	report := &types.BatchReport{
		RunID:     uuid.New(),
		StartedAt: time.Now().UTC(),
		Items: []types.BatchItem{
			{CandidateID: "1", HasResume: true, ATSScore: &score, TextLength: 120},
			{CandidateID: "2", HasResume: false},
		},
		Scores:  map[string]int{"1": 42},
		Summary: types.BatchSummary{Total: 2, Scored: 1, Skipped: 1, MeanScore: 42},
	}

	assert.NoError(t, ValidateBatchReport(report))

	report.Scores = nil
	assert.Error(t, ValidateBatchReport(report))
}

func TestValidateEmbedded_UnknownSchema(t *testing.T) {
	err := ValidateEmbedded("nope.schema.json", []byte(`{}`))

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "nope.schema.json", loadErr.Path)
}
