package ranking

import "strings"

// educationLevels is checked in order; the first marker contained in the
// education text decides the score.
var educationLevels = []struct {
	marker string
	score  float64
}{
	{"phd", 1.0},
	{"master", 0.85},
	{"bachelor", 0.7},
}

// otherEducationScore applies to any stated education without a recognised degree.
const otherEducationScore = 0.5

// EducationScore maps a free-text education description to 0-1.
// Only the empty string scores 0; whitespace counts as stated education.
func EducationScore(education string) float64 {
	if education == "" {
		return 0
	}
	ed := strings.ToLower(education)
	for _, level := range educationLevels {
		if strings.Contains(ed, level.marker) {
			return level.score
		}
	}
	return otherEducationScore
}
