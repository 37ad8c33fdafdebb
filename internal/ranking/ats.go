package ranking

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// saturationYears is the experience at which the experience component reaches 1.
const saturationYears = 20.0

// DefaultWeights returns the default component weights.
func DefaultWeights() types.Weights {
	return types.Weights{Skill: 0.7, Experience: 0.2, Education: 0.1}
}

// ScoreInput is everything the ATS calculation looks at.
type ScoreInput struct {
	ProfileSkills string   // comma separated, may be empty
	ResumeSkills  []string // canonical skills found in the resume
	Experience    types.Experience
	Education     string
}

// Scorer computes ATS breakdowns. It is immutable and safe for concurrent use.
type Scorer struct {
	weights        types.Weights
	vocabularySize int
}

// NewScorer returns a scorer using weights. vocabularySize is the number of known
// canonical skills and is the denominator when no profile skills are declared.
func NewScorer(weights types.Weights, vocabularySize int) *Scorer {
	return &Scorer{weights: weights, vocabularySize: vocabularySize}
}

// Weights returns the weights the scorer applies.
func (s *Scorer) Weights() types.Weights {
	return s.weights
}

// Score computes the ATS breakdown for in.
//
// With declared profile skills the skill component is the share of them found in the
// resume. Without, it is the share of the whole vocabulary found, capped at 1.
func (s *Scorer) Score(in ScoreInput) types.ATSBreakdown {
	profile := SplitSkills(in.ProfileSkills)
	resume := normalizeSet(in.ResumeSkills)

	var ratio float64
	missing := []string{}
	var matched []string
	if len(profile) > 0 {
		for skill := range profile {
			if _, ok := resume[skill]; ok {
				matched = append(matched, skill)
			} else {
				missing = append(missing, skill)
			}
		}
		ratio = float64(len(matched)) / float64(len(profile))
	} else {
		for skill := range resume {
			matched = append(matched, skill)
		}
		ratio = math.Min(1.0, float64(len(resume))/float64(max(s.vocabularySize, 1)))
	}
	sort.Strings(matched)
	sort.Strings(missing)
	if matched == nil {
		matched = []string{}
	}

	components := types.ComponentScores{
		Skill:      round(ratio, 3),
		Experience: round(ExperienceScore(in.Experience.Years()), 3),
		Education:  round(EducationScore(in.Education), 3),
	}

	// Explicit conversions keep each product rounded, so the sum is never fused.
	weighted := float64(components.Skill*s.weights.Skill) +
		float64(components.Experience*s.weights.Experience) +
		float64(components.Education*s.weights.Education)

	return types.ATSBreakdown{
		Score:           clampScore(weighted),
		SkillMatchRatio: round(ratio, 2),
		MissingSkills:   missing,
		MatchedSkills:   matched,
		ComponentScores: components,
		Weights:         s.weights,
	}
}

// ExperienceScore ramps linearly from 0 at zero years to 1 at saturationYears.
// Negative years score 0.
func ExperienceScore(years float64) float64 {
	if math.IsNaN(years) {
		return 0
	}
	return math.Max(0, math.Min(years/saturationYears, 1.0))
}

// SplitSkills turns a comma separated skill list into a lower-cased, trimmed set.
func SplitSkills(list string) map[string]struct{} {
	return normalizeSet(strings.Split(list, ","))
}

func normalizeSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			set[s] = struct{}{}
		}
	}
	return set
}

// clampScore truncates the raw weighted*100 product with no rounding, so
// 0.7*0.1*100 = 6.999... scores 6.
func clampScore(weighted float64) int {
	if math.IsNaN(weighted) {
		return 0
	}
	score := math.Floor(float64(weighted * 100))
	return int(math.Max(0, math.Min(100, score)))
}

// round rounds half to even at the given number of decimal places.
func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.RoundToEven(v*p) / p
}
