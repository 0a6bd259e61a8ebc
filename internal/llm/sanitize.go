package llm

import (
	"strings"
)

// ExtractJSONObject strips markdown code fences and any prose around the
// outermost JSON object of a model answer.
func ExtractJSONObject(content string) []byte {
	s := strings.TrimSpace(content)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < start {
		return []byte(strings.TrimSpace(s))
	}
	return []byte(s[start : end+1])
}
