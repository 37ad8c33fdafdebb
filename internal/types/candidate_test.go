package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExperience_Years(t *testing.T) {
	tests := []struct {
		name string
		in   Experience
		want float64
	}{
		{"empty", "", 0},
		{"integer", "3", 3},
		{"decimal with spaces", " 2.5 ", 2.5},
		{"negative", "-5", -5},
		{"malformed", "three years", 0},
		{"nan", "NaN", 0},
		{"large", "1000", 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Years())
		})
	}
}

func TestExperience_YearsInfinity(t *testing.T) {
	assert.True(t, math.IsInf(Experience("inf").Years(), 1))
}

func TestExperienceYears(t *testing.T) {
	assert.Equal(t, Experience("3"), ExperienceYears(3))
	assert.Equal(t, Experience("1.5"), ExperienceYears(1.5))
}

func TestExperience_UnmarshalJSON(t *testing.T) {
	var p CandidateProfile
	require.NoError(t, json.Unmarshal([]byte(`{"experience_years": 4}`), &p))
	assert.Equal(t, 4.0, p.ExperienceYears.Years())

	require.NoError(t, json.Unmarshal([]byte(`{"experience_years": "7.5"}`), &p))
	assert.Equal(t, 7.5, p.ExperienceYears.Years())

	require.NoError(t, json.Unmarshal([]byte(`{"experience_years": null}`), &p))
	assert.Equal(t, Experience(""), p.ExperienceYears)
}

func TestCandidate_UnmarshalYAMLInline(t *testing.T) {
	data := `
id: c-1
name: Ada
resume: /tmp/ada.txt
profile_skills: python, go
experience_years: 6
education: Master of Science
`
	var c Candidate
	require.NoError(t, yaml.Unmarshal([]byte(data), &c))
	assert.Equal(t, "c-1", c.ID)
	assert.Equal(t, "python, go", c.Skills)
	assert.Equal(t, 6.0, c.ExperienceYears.Years())
	assert.Equal(t, "Master of Science", c.Education)
}
