package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// CandidateProfile is what the hosting system knows about a candidate besides the resume itself.
type CandidateProfile struct {
	Skills          string     `json:"profile_skills,omitempty" yaml:"profile_skills,omitempty"` // comma separated
	ExperienceYears Experience `json:"experience_years,omitempty" yaml:"experience_years,omitempty"`
	Education       string     `json:"education,omitempty" yaml:"education,omitempty"`
}

// Candidate is one entry of a batch scoring run.
type Candidate struct {
	ID               string `json:"id" yaml:"id" validate:"required"`
	Name             string `json:"name,omitempty" yaml:"name,omitempty"`
	Email            string `json:"email,omitempty" yaml:"email,omitempty"`
	Resume           string `json:"resume,omitempty" yaml:"resume,omitempty"` // file path or s3:// URI, empty if none on file
	CandidateProfile `yaml:",inline"`
}

// Experience is a years-of-experience value as supplied by the caller. It may hold a
// number, a numeric string, or anything else; only Years interprets it.
type Experience string

// ExperienceYears builds an Experience from a number.
func ExperienceYears(years float64) Experience {
	return Experience(strconv.FormatFloat(years, 'f', -1, 64))
}

// Years returns the numeric value. Empty, malformed and NaN values are 0.
// Infinities are returned as is and left to the scorer to clamp.
func (e Experience) Years() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(e)), 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}

// UnmarshalJSON accepts JSON numbers, strings and null.
func (e *Experience) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*e = ""
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*e = Experience(s)
	default:
		*e = Experience(trimmed)
	}
	return nil
}

// UnmarshalYAML accepts any scalar.
func (e *Experience) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		*e = ""
		return nil
	}
	*e = Experience(value.Value)
	return nil
}
