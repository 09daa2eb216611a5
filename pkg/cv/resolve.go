package cv

import (
	"bytes"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Restriction is the outcome of an id-resolution step.
// Inactive means the step did not apply; active with no ids matches nothing.
type Restriction struct {
	IDs    []uuid.UUID
	Active bool
}

// Unrestricted is the starting point of a resolution chain.
func Unrestricted() Restriction { return Restriction{} }

func (r Restriction) allows(id uuid.UUID) bool {
	if !r.Active {
		return true
	}
	for _, x := range r.IDs {
		if x == id {
			return true
		}
	}
	return false
}

// Links carries the owner's associations needed to resolve a Criteria.
type Links struct {
	Tags       []TagLink
	Skills     []SkillLink
	Experience []ExperienceLink
}

// ResolveTag returns the owner's CVs tagged with name, intersected with prior.
func ResolveTag(name string, ownerID uuid.UUID, links []TagLink, prior Restriction) Restriction {
	name = strings.TrimSpace(name)
	if name == "" {
		return prior
	}
	var ids []uuid.UUID
	for _, l := range links {
		if l.OwnerID != ownerID || !strings.EqualFold(strings.TrimSpace(l.Name), name) {
			continue
		}
		if prior.allows(l.CVID) {
			ids = append(ids, l.CVID)
		}
	}
	return Restriction{IDs: uniqueIDs(ids), Active: true}
}

// ResolveSkill returns the owner's CVs listing skill name, intersected with prior.
func ResolveSkill(name string, ownerID uuid.UUID, links []SkillLink, prior Restriction) Restriction {
	name = strings.TrimSpace(name)
	if name == "" {
		return prior
	}
	var ids []uuid.UUID
	for _, l := range links {
		if l.OwnerID != ownerID || !strings.EqualFold(strings.TrimSpace(l.Name), name) {
			continue
		}
		if prior.allows(l.CVID) {
			ids = append(ids, l.CVID)
		}
	}
	return Restriction{IDs: uniqueIDs(ids), Active: true}
}

// ExperienceRange is a parsed "min", "min+" or "min-max" filter, in years.
type ExperienceRange struct {
	Min    int
	Max    int
	HasMax bool
}

// ParseExperience parses an experience filter. ok is false for malformed input.
func ParseExperience(s string) (ExperienceRange, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ExperienceRange{}, false
	}
	if strings.HasSuffix(s, "+") {
		min, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(s, "+")))
		if err != nil || min < 0 {
			return ExperienceRange{}, false
		}
		return ExperienceRange{Min: min}, true
	}
	lo, hi, found := strings.Cut(s, "-")
	min, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil || min < 0 {
		return ExperienceRange{}, false
	}
	if !found {
		return ExperienceRange{Min: min}, true
	}
	max, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil || max < min {
		return ExperienceRange{}, false
	}
	return ExperienceRange{Min: min, Max: max, HasMax: true}, true
}

// Window returns the date window [from, to] the range covers relative to now.
// from is zero when the range is open-ended.
func (r ExperienceRange) Window(now time.Time) (from, to time.Time) {
	to = now.AddDate(-r.Min, 0, 0)
	if r.HasMax {
		from = now.AddDate(-r.Max, 0, 0)
	}
	return from, to
}

// ResolveExperience returns the owner's CVs with at least one experience entry
// inside the window of raw. Malformed input leaves prior untouched.
func ResolveExperience(raw string, ownerID uuid.UUID, links []ExperienceLink, prior Restriction, now time.Time) Restriction {
	rng, ok := ParseExperience(raw)
	if !ok {
		return prior
	}
	from, to := rng.Window(now)
	var ids []uuid.UUID
	for _, l := range links {
		if l.OwnerID != ownerID || !prior.allows(l.CVID) {
			continue
		}
		if l.Start.After(to) {
			continue
		}
		if rng.HasMax {
			end := now
			if l.End != nil {
				end = *l.End
			}
			if end.Before(from) {
				continue
			}
		}
		ids = append(ids, l.CVID)
	}
	return Restriction{IDs: uniqueIDs(ids), Active: true}
}

// BuildQuery composes a search for ownerID from criteria. It is pure: the same
// inputs always produce an equal spec.
func BuildQuery(c Criteria, ownerID uuid.UUID, links Links, now time.Time) Query {
	q := NewQuery(ownerID).Text(c.Q)
	r := Unrestricted()
	if strings.TrimSpace(c.Tag) != "" {
		r = ResolveTag(c.Tag, ownerID, links.Tags, r)
		q = q.Restrict("tag", r)
	}
	if strings.TrimSpace(c.Skill) != "" {
		r = ResolveSkill(c.Skill, ownerID, links.Skills, r)
		q = q.Restrict("skill", r)
	}
	// Malformed experience strings skip the filter rather than failing the search.
	if _, ok := ParseExperience(c.Experience); ok {
		r = ResolveExperience(c.Experience, ownerID, links.Experience, r, now)
		q = q.Restrict("experience", r)
	}
	return q.SortBy(ParseSort(c.Sort))
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return bytes.Compare(out[i][:], out[j][:]) < 0 })
	return out
}
