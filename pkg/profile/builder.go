// Package profile turns extracted CV text into a structured profile with tags and skills.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/artem13815/cvdesk/pkg/cv"
	"github.com/artem13815/cvdesk/pkg/llm"
	"github.com/artem13815/cvdesk/pkg/nlp"
)

const maxPromptChars = 12000

// Builder extracts profiles. An LLM is optional; heuristics are always the fallback.
type Builder struct {
	llm     llm.ChatModel
	catalog nlp.Catalog
	now     func() time.Time
}

func NewBuilder(model llm.ChatModel, catalog nlp.Catalog) *Builder {
	if catalog == nil {
		catalog = nlp.DefaultCatalog
	}
	return &Builder{llm: model, catalog: catalog, now: time.Now}
}

// Build returns the extraction for text. It never fails: an unusable LLM reply falls back to heuristics.
func (b *Builder) Build(ctx context.Context, text string) cv.Extraction {
	text = strings.TrimSpace(text)
	p, ok := b.fromLLM(ctx, text)
	if !ok {
		p = b.heuristic(text)
	}
	p.Skills = mergeSkills(p.Skills, b.catalog.Find(text))
	if p.YearsExperience == 0 {
		p.YearsExperience = TotalYears(p.Experience, b.now())
	}
	skills := b.skillLinks(text, p.Skills)
	return cv.Extraction{
		Text:    text,
		Profile: p,
		Skills:  skills,
		Tags:    Tags(skills, p.YearsExperience, len(p.Experience) > 0),
	}
}

type llmExperience struct {
	Company string `json:"company"`
	Role    string `json:"role"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

type llmProfile struct {
	FullName   string              `json:"full_name"`
	Email      string              `json:"email"`
	Title      string              `json:"title"`
	Location   string              `json:"location"`
	Summary    string              `json:"summary"`
	Skills     []string            `json:"skills"`
	Experience []llmExperience     `json:"experience"`
	Education  []cv.EducationEntry `json:"education"`
}

const systemPrompt = "You are an HR analyst. Return STRICT JSON only (no markdown, no code fences, no explanations). Always return empty arrays as [], never null. Do not invent facts."

const userPromptTemplate = "CV text:\n<<<\n%s\n>>>\n\nReturn exactly one JSON object with this schema:\n" +
	`{"full_name":string,"email":string,"title":string,"location":string,"summary":string,"skills":string[],` +
	`"experience":[{"company":string,"role":string,"start":"YYYY-MM","end":"YYYY-MM or empty if current"}],` +
	`"education":[{"institution":string,"degree":string,"start":string,"end":string}]}`

func (b *Builder) fromLLM(ctx context.Context, text string) (cv.Profile, bool) {
	if b.llm == nil || text == "" {
		return cv.Profile{}, false
	}
	raw, err := b.llm.Ask(ctx, systemPrompt, fmt.Sprintf(userPromptTemplate, nlp.Truncate(text, maxPromptChars)))
	if err != nil {
		log.Printf("profile llm: %v", err)
		return cv.Profile{}, false
	}
	var lp llmProfile
	if !decodeJSON(raw, &lp) {
		return cv.Profile{}, false
	}
	p := cv.Profile{
		FullName:  strings.TrimSpace(lp.FullName),
		Email:     strings.TrimSpace(lp.Email),
		Title:     strings.TrimSpace(lp.Title),
		Location:  strings.TrimSpace(lp.Location),
		Summary:   strings.TrimSpace(lp.Summary),
		Skills:    lp.Skills,
		Education: lp.Education,
	}
	for _, e := range lp.Experience {
		start, ok := parseMonth(e.Start)
		if !ok {
			continue
		}
		entry := cv.ExperienceEntry{Company: e.Company, Role: e.Role, Start: start}
		if end, ok := parseMonth(e.End); ok {
			entry.End = &end
		}
		p.Experience = append(p.Experience, entry)
	}
	if p.Summary == "" && len(p.Skills) == 0 && len(p.Experience) == 0 && len(p.Education) == 0 {
		return cv.Profile{}, false
	}
	normalize(&p)
	return p, true
}

// decodeJSON accepts a bare object or one wrapped in prose/code fences.
func decodeJSON(raw string, v any) bool {
	raw = strings.TrimSpace(raw)
	if json.Unmarshal([]byte(raw), v) == nil {
		return true
	}
	i := strings.Index(raw, "{")
	j := strings.LastIndex(raw, "}")
	if i < 0 || j <= i {
		return false
	}
	return json.Unmarshal([]byte(raw[i:j+1]), v) == nil
}

func parseMonth(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01", "2006-01-02", "2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func normalize(p *cv.Profile) {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []cv.ExperienceEntry{}
	}
	if p.Education == nil {
		p.Education = []cv.EducationEntry{}
	}
}

// mergeSkills appends catalog matches that the profile does not list yet.
func mergeSkills(skills []string, found []nlp.Match) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills)+len(found))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		key := nlp.NormalizeSkill(s)
		if _, ok := seen[key]; ok || key == "" {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	for _, m := range found {
		dup := false
		for _, v := range nlp.SkillVariants(m.Name) {
			if _, ok := seen[v]; ok {
				dup = true
				break
			}
		}
		if !dup {
			seen[nlp.NormalizeSkill(m.Name)] = struct{}{}
			out = append(out, m.Name)
		}
	}
	return out
}

func (b *Builder) skillLinks(text string, skills []string) []cv.SkillLink {
	normalized := nlp.NormalizeText(text)
	out := make([]cv.SkillLink, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		name, category := b.catalog.CategoryOf(s)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		hits := 0
		for _, v := range nlp.SkillVariants(name) {
			hits += nlp.CountPhrase(normalized, v)
		}
		out = append(out, cv.SkillLink{Name: name, Category: category, Proficiency: proficiency(hits)})
	}
	return out
}

func proficiency(hits int) string {
	switch {
	case hits >= 3:
		return "advanced"
	case hits == 2:
		return "intermediate"
	default:
		return "basic"
	}
}
