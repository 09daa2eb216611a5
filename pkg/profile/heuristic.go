package profile

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/artem13815/cvdesk/pkg/cv"
	"github.com/artem13815/cvdesk/pkg/nlp"
)

var (
	reEmail = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	// 2019 - present, 2015–2018, 03/2020 to now
	reYearRange = regexp.MustCompile(`(?i)(?:(\d{1,2})[./])?((?:19|20)\d{2})\s*(?:-|–|—|to|until)\s*(?:(?:(\d{1,2})[./])?((?:19|20)\d{2})|(present|current|now|today))`)
)

func (b *Builder) heuristic(text string) cv.Profile {
	p := cv.Profile{
		FullName: guessName(text),
		Email:    reEmail.FindString(text),
		Summary:  firstParagraph(text),
	}
	p.Experience = ParseRanges(text, b.now())
	normalize(&p)
	return p
}

// guessName takes the first short line made only of letters.
func guessName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			return ""
		}
		for _, r := range line {
			if !unicode.IsLetter(r) && r != ' ' && r != '-' && r != '.' {
				return ""
			}
		}
		return line
	}
	return ""
}

func firstParagraph(text string) string {
	const max = 400
	lines := strings.Split(text, "\n")
	var parts []string
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			parts = append(parts, l)
		}
		if len(parts) == 3 {
			break
		}
	}
	s := strings.Join(parts, " ")
	if len(s) > max {
		s = strings.TrimSpace(s[:max])
	}
	return s
}

// ParseRanges finds year ranges such as "2019 - present" and turns them into experience entries.
func ParseRanges(text string, now time.Time) []cv.ExperienceEntry {
	var out []cv.ExperienceEntry
	for _, m := range reYearRange.FindAllStringSubmatch(text, -1) {
		start, ok := monthYear(m[1], m[2])
		if !ok || start.After(now) {
			continue
		}
		entry := cv.ExperienceEntry{Start: start}
		if m[5] == "" {
			end, ok := monthYear(m[3], m[4])
			if !ok || end.Before(start) {
				continue
			}
			entry.End = &end
		}
		out = append(out, entry)
	}
	return out
}

func monthYear(month, year string) (time.Time, bool) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, false
	}
	mo := 1
	if month != "" {
		if mo, err = strconv.Atoi(month); err != nil || mo < 1 || mo > 12 {
			return time.Time{}, false
		}
	}
	return time.Date(y, time.Month(mo), 1, 0, 0, 0, 0, time.UTC), true
}

// TotalYears sums experience with overlapping ranges merged, rounded to one decimal.
func TotalYears(entries []cv.ExperienceEntry, now time.Time) float64 {
	type span struct{ from, to time.Time }
	spans := make([]span, 0, len(entries))
	for _, e := range entries {
		to := now
		if e.End != nil {
			to = *e.End
		}
		if !to.After(e.Start) {
			continue
		}
		spans = append(spans, span{e.Start, to})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].from.Before(spans[j].from) })
	var total time.Duration
	var cur *span
	for i := range spans {
		s := spans[i]
		if cur == nil || s.from.After(cur.to) {
			if cur != nil {
				total += cur.to.Sub(cur.from)
			}
			cur = &s
			continue
		}
		if s.to.After(cur.to) {
			cur.to = s.to
		}
	}
	if cur != nil {
		total += cur.to.Sub(cur.from)
	}
	years := total.Hours() / 24 / 365.25
	return float64(int(years*10+0.5)) / 10
}

// Tags derives category tags weighted by share of skills, plus a seniority tag.
func Tags(skills []cv.SkillLink, years float64, hasExperience bool) []cv.TagLink {
	counts := map[string]int{}
	for _, s := range skills {
		if s.Category != "" && s.Category != nlp.CategoryOther {
			counts[s.Category]++
		}
	}
	out := make([]cv.TagLink, 0, len(counts)+1)
	for name, n := range counts {
		out = append(out, cv.TagLink{Name: name, Score: float64(n) / float64(len(skills))})
	}
	if counts[nlp.CategoryFrontend] > 0 && counts[nlp.CategoryBackend] > 0 {
		out = append(out, cv.TagLink{Name: "fullstack", Score: 1})
	}
	if hasExperience {
		out = append(out, cv.TagLink{Name: seniority(years), Score: 1})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func seniority(years float64) string {
	switch {
	case years >= 5:
		return "senior"
	case years >= 2:
		return "middle"
	default:
		return "junior"
	}
}
