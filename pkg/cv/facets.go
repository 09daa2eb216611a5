package cv

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Facets are the distinct filter values available to one owner.
type Facets struct {
	Tags   []string `json:"tags"`
	Skills []string `json:"skills"`
}

// AggregateFacets reduces the owner's associations to sorted distinct names.
func AggregateFacets(ownerID uuid.UUID, tags []TagLink, skills []SkillLink) Facets {
	return Facets{
		Tags:   distinctTags(ownerID, tags),
		Skills: distinctSkills(ownerID, skills),
	}
}

func distinctTags(ownerID uuid.UUID, links []TagLink) []string {
	names := make([]string, 0, len(links))
	for _, l := range links {
		if l.OwnerID == ownerID {
			names = append(names, l.Name)
		}
	}
	return sortedSet(names)
}

func distinctSkills(ownerID uuid.UUID, links []SkillLink) []string {
	names := make([]string, 0, len(links))
	for _, l := range links {
		if l.OwnerID == ownerID {
			names = append(names, l.Name)
		}
	}
	return sortedSet(names)
}

// sortedSet folds names case-insensitively, the way tag and skill filters match.
// Of several spellings the smallest one is kept so the result does not depend on input order.
func sortedSet(in []string) []string {
	byKey := make(map[string]string, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if prev, ok := byKey[key]; ok && prev <= s {
			continue
		}
		byKey[key] = s
	}
	out := make([]string, 0, len(byKey))
	for _, s := range byKey {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i]), strings.ToLower(out[j])
		if a != b {
			return a < b
		}
		return out[i] < out[j]
	})
	return out
}
