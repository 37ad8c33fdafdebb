// Package types provides type definitions for the structured data produced and consumed by the resume analyzer.
//
//nolint:revive // types is a standard Go package name pattern
package types

// AnalysisResult is the outcome of analyzing a single resume. It is created fresh for
// every call and owned by the caller.
type AnalysisResult struct {
	TextLength       int                 `json:"text_length"`
	ExtractedSkills  []string            `json:"extracted_skills"`
	SkillsProvenance map[string][]string `json:"skills_provenance"`
	PredictedRoles   []string            `json:"predicted_roles"`
	ATS              ATSBreakdown        `json:"ats"`
	Suggestions      []string            `json:"suggestions"`
}

// ATSBreakdown is the applicant tracking score together with the components it was built from.
type ATSBreakdown struct {
	Score           int             `json:"ats_score"`         // 0-100
	SkillMatchRatio float64         `json:"skill_match_ratio"` // 0-1, rounded to 2 decimals
	MissingSkills   []string        `json:"missing_skills"`
	MatchedSkills   []string        `json:"matched_skills"`
	ComponentScores ComponentScores `json:"component_scores"`
	Weights         Weights         `json:"weights"`
}

// ComponentScores holds the per-component scores, each in 0-1 and rounded to 3 decimals.
type ComponentScores struct {
	Skill      float64 `json:"skill_score"`
	Experience float64 `json:"experience_score"`
	Education  float64 `json:"education_score"`
}

// Weights controls how the ATS components are blended into the final score.
type Weights struct {
	Skill      float64 `json:"skill" yaml:"skill" validate:"gte=0"`
	Experience float64 `json:"experience" yaml:"experience" validate:"gte=0"`
	Education  float64 `json:"education" yaml:"education" validate:"gte=0"`
}
