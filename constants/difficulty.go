package constants

import "strings"

type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

var allDifficulties = []Difficulty{Easy, Medium, Hard}

func DifficultiesAsStringSlice() []string {
	result := make([]string, len(allDifficulties))
	for i, d := range allDifficulties {
		result[i] = string(d)
	}
	return result
}

// Canonicalize maps a free-form label onto one of the three levels.
// Unrecognized input resolves to Medium with ok=false.
func Canonicalize(input string) (Difficulty, bool) {
	if input == "" {
		return Medium, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	synonyms := map[string]Difficulty{
		"beginner":     Easy,
		"basic":        Easy,
		"introductory": Easy,
		"intermediate": Medium,
		"moderate":     Medium,
		"advanced":     Hard,
		"difficult":    Hard,
		"expert":       Hard,
	}

	if d, ok := synonyms[normalized]; ok {
		return d, true
	}

	for _, d := range allDifficulties {
		if normalized == strings.ToLower(string(d)) {
			return d, true
		}
	}

	return Medium, false
}
