package llm

import "strings"

// StripFences removes a leading/trailing markdown code fence that a model
// may emit despite instructions not to.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```markdown") {
		s = strings.Replace(s, "```markdown", "", 1)
	} else if strings.HasPrefix(s, "```json") {
		s = strings.Replace(s, "```json", "", 1)
	} else if strings.HasPrefix(s, "```") {
		s = strings.Replace(s, "```", "", 1)
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-3]
	}
	return strings.TrimSpace(s)
}
