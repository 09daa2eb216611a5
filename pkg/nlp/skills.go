package nlp

import "strings"

// aliases maps a normalized skill to its interchangeable spellings.
var aliases = map[string][]string{
	"postgres":   {"postgresql"},
	"postgresql": {"postgres"},
	"k8s":        {"kubernetes"},
	"kubernetes": {"k8s"},
	"golang":     {"go"},
	"go":         {"golang"},
	"js":         {"javascript"},
	"javascript": {"js"},
	"ts":         {"typescript"},
	"typescript": {"ts"},
	"rest":       {"rest api"},
	"rest api":   {"rest"},
	"ci cd":      {"cicd"},
	"cicd":       {"ci cd"},
	"node js":    {"nodejs", "node"},
	"nodejs":     {"node js"},
	"react":      {"react js", "reactjs"},
	"vue":        {"vue js", "vuejs"},
}

// SkillVariants returns normalized variants for matching (synonyms/aliases).
func SkillVariants(skill string) []string {
	base := NormalizeSkill(skill)
	if base == "" {
		return []string{}
	}
	out := []string{base}
	seen := map[string]struct{}{base: {}}
	add := func(s string) {
		s = NormalizeSkill(s)
		if _, ok := seen[s]; ok || s == "" {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, a := range aliases[base] {
		add(a)
	}
	// Token-level expansion for multi-word skills: "golang developer" -> "go developer".
	if parts := strings.Fields(base); len(parts) > 1 {
		expanded := make([]string, len(parts))
		for i, p := range parts {
			expanded[i] = p
			if alt := aliases[p]; len(alt) > 0 && !strings.Contains(alt[0], " ") {
				expanded[i] = alt[0]
			}
		}
		add(strings.Join(expanded, " "))
	}
	return out
}
