package pipeline

// Suggestion texts and the scores below which they are given.
const (
	SuggestionKeywords = "Add relevant keywords and metrics in your projects"
	SuggestionOutcomes = "Consider listing measurable outcomes and technologies used"

	keywordsBelow = 60
	outcomesBelow = 40
)

// Suggestions returns the improvement suggestions for an ATS score. Scores under 40
// get both.
func Suggestions(score int) []string {
	out := []string{}
	if score < keywordsBelow {
		out = append(out, SuggestionKeywords)
	}
	if score < outcomesBelow {
		out = append(out, SuggestionOutcomes)
	}
	return out
}
