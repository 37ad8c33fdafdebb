package ranking

import (
	"testing"

	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
)

const vocabularySize = 21

func newTestScorer() *Scorer {
	return NewScorer(DefaultWeights(), vocabularySize)
}

func TestScore_PartialProfileMatch(t *testing.T) {
	ats := newTestScorer().Score(ScoreInput{
		ProfileSkills: "python,aws,docker,kubernetes",
		ResumeSkills:  []string{"aws", "docker", "python"},
	})

	assert.Equal(t, []string{"aws", "docker", "python"}, ats.MatchedSkills)
	assert.Equal(t, []string{"kubernetes"}, ats.MissingSkills)
	assert.Equal(t, 0.75, ats.SkillMatchRatio)
	assert.Equal(t, 0.75, ats.ComponentScores.Skill)
	assert.Equal(t, 52, ats.Score)
}

func TestScore_AbsoluteModeWithoutProfile(t *testing.T) {
	ats := newTestScorer().Score(ScoreInput{
		ProfileSkills: "",
		Experience:    "3",
		Education:     "Bachelor of Science",
	})

	assert.Equal(t, 0.7, ats.ComponentScores.Education)
	assert.Equal(t, 0.15, ats.ComponentScores.Experience)
	assert.Equal(t, 0.0, ats.ComponentScores.Skill)
	assert.Equal(t, []string{}, ats.MissingSkills)
	assert.Equal(t, []string{}, ats.MatchedSkills)
	assert.Equal(t, 10, ats.Score)
}

func TestScore_AbsoluteModeUsesVocabulary(t *testing.T) {
	ats := newTestScorer().Score(ScoreInput{
		ResumeSkills: []string{"go", "python", "sql"},
	})

	assert.Equal(t, 0.14, ats.SkillMatchRatio)
	assert.Equal(t, 0.143, ats.ComponentScores.Skill)
	assert.Equal(t, []string{"go", "python", "sql"}, ats.MatchedSkills)
	assert.Empty(t, ats.MissingSkills)
	assert.Equal(t, 10, ats.Score)
}

func TestScore_AbsoluteModeCapsAtOne(t *testing.T) {
	ats := NewScorer(DefaultWeights(), 2).Score(ScoreInput{
		ResumeSkills: []string{"go", "python", "sql"},
	})
	assert.Equal(t, 1.0, ats.SkillMatchRatio)
}

func TestScore_ZeroVocabulary(t *testing.T) {
	ats := NewScorer(DefaultWeights(), 0).Score(ScoreInput{})
	assert.Equal(t, 0.0, ats.SkillMatchRatio)
	assert.Equal(t, 0, ats.Score)
}

func TestScore_SupersetMatchesFully(t *testing.T) {
	ats := newTestScorer().Score(ScoreInput{
		ProfileSkills: " Python , AWS,,",
		ResumeSkills:  []string{"aws", "docker", "python"},
	})

	assert.Equal(t, 1.0, ats.SkillMatchRatio)
	assert.Empty(t, ats.MissingSkills)
	assert.Equal(t, []string{"aws", "python"}, ats.MatchedSkills)
	assert.Equal(t, 70, ats.Score)
}

func TestScore_AlwaysWithinRange(t *testing.T) {
	experiences := []types.Experience{"-5", "0", "1000", "abc", "", "NaN", "inf", "-inf"}
	educations := []string{"", "PhD", "some college"}
	profiles := []string{"", "python", "python,go,rust"}

	for _, exp := range experiences {
		for _, edu := range educations {
			for _, profile := range profiles {
				ats := newTestScorer().Score(ScoreInput{
					ProfileSkills: profile,
					ResumeSkills:  []string{"python", "go"},
					Experience:    exp,
					Education:     edu,
				})
				assert.GreaterOrEqual(t, ats.Score, 0, "exp=%q edu=%q profile=%q", exp, edu, profile)
				assert.LessOrEqual(t, ats.Score, 100, "exp=%q edu=%q profile=%q", exp, edu, profile)
				assert.GreaterOrEqual(t, ats.ComponentScores.Experience, 0.0)
				assert.LessOrEqual(t, ats.ComponentScores.Experience, 1.0)
			}
		}
	}
}

func TestScore_PerfectCandidate(t *testing.T) {
	ats := newTestScorer().Score(ScoreInput{
		ProfileSkills: "go",
		ResumeSkills:  []string{"go"},
		Experience:    "25",
		Education:     "PhD in Computer Science",
	})
	// 0.7 + 0.2 + 0.1 sums to 0.9999999999999999
	assert.Equal(t, 99, ats.Score)
}

func TestScore_TruncatesWithoutRounding(t *testing.T) {
	tests := []struct {
		name       string
		profile    string
		resume     []string
		experience types.Experience
		education  string
		want       int
	}{
		{"bachelor only", "go", nil, "", "Bachelor of Science", 6},
		{"full match and bachelor", "go", []string{"go"}, "", "Bachelor of Science", 76},
		{"full match, bachelor, two years", "go", []string{"go"}, "2", "Bachelor of Science", 78},
		{"three of four skills", "go,python,sql,rust", []string{"go", "python", "sql"}, "", "", 52},
		{"three of four, three years, bachelor", "go,python,sql,rust", []string{"go", "python", "sql"}, "3", "Bachelor", 62},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ats := newTestScorer().Score(ScoreInput{
				ProfileSkills: tt.profile,
				ResumeSkills:  tt.resume,
				Experience:    tt.experience,
				Education:     tt.education,
			})
			assert.Equal(t, tt.want, ats.Score)
		})
	}
}

func TestScore_CustomWeightsClamped(t *testing.T) {
	scorer := NewScorer(types.Weights{Skill: 2, Experience: 0, Education: 0}, vocabularySize)

	ats := scorer.Score(ScoreInput{ProfileSkills: "go", ResumeSkills: []string{"go"}})

	assert.Equal(t, 100, ats.Score)
	assert.Equal(t, types.Weights{Skill: 2}, ats.Weights)
}

func TestScore_ReportsWeights(t *testing.T) {
	ats := newTestScorer().Score(ScoreInput{})
	assert.Equal(t, types.Weights{Skill: 0.7, Experience: 0.2, Education: 0.1}, ats.Weights)
}

func TestExperienceScore(t *testing.T) {
	tests := []struct {
		years float64
		want  float64
	}{
		{-5, 0},
		{0, 0},
		{3, 0.15},
		{10, 0.5},
		{20, 1},
		{1000, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ExperienceScore(tt.years), 1e-12, "years=%v", tt.years)
	}
}

func TestEducationScore(t *testing.T) {
	tests := []struct {
		education string
		want      float64
	}{
		{"", 0},
		{"   ", 0.5},
		{"PhD", 1.0},
		{"Master and PhD", 1.0},
		{"MASTERS in Statistics", 0.85},
		{"Bachelor of Science", 0.7},
		{"bachelor's, master's", 0.85},
		{"High school diploma", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.education, func(t *testing.T) {
			assert.Equal(t, tt.want, EducationScore(tt.education))
		})
	}
}

func TestSplitSkills(t *testing.T) {
	set := SplitSkills(" Go, python ,, GO ,")
	assert.Len(t, set, 2)
	assert.Contains(t, set, "go")
	assert.Contains(t, set, "python")
	assert.Empty(t, SplitSkills(""))
}

func TestRound_HalfToEven(t *testing.T) {
	assert.Equal(t, 0.12, round(0.125, 2))
	assert.Equal(t, 0.5, round(0.5, 3))
	assert.Equal(t, 0.667, round(2.0/3.0, 3))
}
