package types

import (
	"time"

	"github.com/google/uuid"
)

// BatchReport is the outcome of scoring many candidates in one run.
type BatchReport struct {
	RunID     uuid.UUID      `json:"run_id"`
	StartedAt time.Time      `json:"started_at"`
	Items     []BatchItem    `json:"items"`
	Scores    map[string]int `json:"scores"` // candidate ID -> ats_score, scored candidates only
	Summary   BatchSummary   `json:"summary"`
}

// BatchItem is the per-candidate line of a BatchReport.
type BatchItem struct {
	CandidateID    string   `json:"candidate_id"`
	Name           string   `json:"name,omitempty"`
	Resume         string   `json:"resume,omitempty"`
	HasResume      bool     `json:"has_resume"`
	ATSScore       *int     `json:"ats_score,omitempty"`
	TextLength     int      `json:"text_length"`
	PredictedRoles []string `json:"predicted_roles,omitempty"`
	MissingSkills  []string `json:"missing_skills,omitempty"`
}

// BatchSummary aggregates a BatchReport.
type BatchSummary struct {
	Total     int     `json:"total"`
	Scored    int     `json:"scored"`
	Skipped   int     `json:"skipped"`
	MeanScore float64 `json:"mean_score"`
}
