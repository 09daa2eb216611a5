package cv_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvdesk/pkg/cv"
)

func month(y int, m time.Month) time.Time { return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC) }

func TestParseExperience(t *testing.T) {
	tests := []struct {
		in   string
		want cv.ExperienceRange
		ok   bool
	}{
		{"3", cv.ExperienceRange{Min: 3}, true},
		{"3+", cv.ExperienceRange{Min: 3}, true},
		{" 2 - 5 ", cv.ExperienceRange{Min: 2, Max: 5, HasMax: true}, true},
		{"0-1", cv.ExperienceRange{Min: 0, Max: 1, HasMax: true}, true},
		{"", cv.ExperienceRange{}, false},
		{"abc", cv.ExperienceRange{}, false},
		{"5-2", cv.ExperienceRange{}, false},
		{"-3", cv.ExperienceRange{}, false},
		{"3-x", cv.ExperienceRange{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := cv.ParseExperience(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTag(t *testing.T) {
	owner, other := uuid.New(), uuid.New()
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	links := []cv.TagLink{
		{CVID: a, OwnerID: owner, Name: "Golang"},
		{CVID: b, OwnerID: owner, Name: "golang"},
		{CVID: b, OwnerID: owner, Name: "backend"},
		{CVID: c, OwnerID: other, Name: "golang"},
	}

	t.Run("case insensitive and owner scoped", func(t *testing.T) {
		r := cv.ResolveTag("GOLANG", owner, links, cv.Unrestricted())
		assert.True(t, r.Active)
		assert.ElementsMatch(t, []uuid.UUID{a, b}, r.IDs)
	})
	t.Run("intersects with prior", func(t *testing.T) {
		prior := cv.ResolveTag("backend", owner, links, cv.Unrestricted())
		r := cv.ResolveTag("golang", owner, links, prior)
		assert.Equal(t, []uuid.UUID{b}, r.IDs)
	})
	t.Run("unknown tag matches nothing", func(t *testing.T) {
		r := cv.ResolveTag("rust", owner, links, cv.Unrestricted())
		assert.True(t, r.Active)
		assert.Empty(t, r.IDs)
	})
	t.Run("blank tag is not a filter", func(t *testing.T) {
		r := cv.ResolveTag("  ", owner, links, cv.Unrestricted())
		assert.False(t, r.Active)
	})
}

func TestResolveSkillDeduplicates(t *testing.T) {
	owner := uuid.New()
	a := uuid.New()
	links := []cv.SkillLink{
		{CVID: a, OwnerID: owner, Name: "go"},
		{CVID: a, OwnerID: owner, Name: "Go"},
	}
	r := cv.ResolveSkill("go", owner, links, cv.Unrestricted())
	assert.Equal(t, []uuid.UUID{a}, r.IDs)
}

func TestResolveExperienceWindows(t *testing.T) {
	now := month(2025, time.January)
	owner := uuid.New()
	recent, midCareer, longAgo := uuid.New(), uuid.New(), uuid.New()
	end2021 := month(2021, time.January)
	end2012 := month(2012, time.January)
	links := []cv.ExperienceLink{
		{CVID: recent, OwnerID: owner, Start: month(2023, time.June)},
		{CVID: midCareer, OwnerID: owner, Start: month(2019, time.January), End: &end2021},
		{CVID: longAgo, OwnerID: owner, Start: month(2010, time.January), End: &end2012},
		{CVID: uuid.New(), OwnerID: uuid.New(), Start: month(2015, time.January)},
	}

	tests := []struct {
		raw  string
		want []uuid.UUID
	}{
		{"3-5", []uuid.UUID{midCareer}},
		{"3+", []uuid.UUID{midCareer, longAgo}},
		{"3", []uuid.UUID{midCareer, longAgo}},
		{"0-1", []uuid.UUID{recent}},
		{"20+", nil},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r := cv.ResolveExperience(tt.raw, owner, links, cv.Unrestricted(), now)
			require.True(t, r.Active)
			assert.ElementsMatch(t, tt.want, r.IDs)
		})
	}

	t.Run("malformed leaves prior untouched", func(t *testing.T) {
		prior := cv.Restriction{Active: true, IDs: []uuid.UUID{recent}}
		assert.Equal(t, prior, cv.ResolveExperience("lots", owner, links, prior, now))
	})
}

func TestBuildQuery(t *testing.T) {
	now := month(2025, time.January)
	owner := uuid.New()
	a := uuid.New()
	links := cv.Links{
		Tags:   []cv.TagLink{{CVID: a, OwnerID: owner, Name: "go"}},
		Skills: []cv.SkillLink{{CVID: a, OwnerID: owner, Name: "postgres"}},
	}

	t.Run("deterministic", func(t *testing.T) {
		c := cv.Criteria{Q: "dev", Tag: "go", Skill: "postgres", Sort: "oldest"}
		first := cv.BuildQuery(c, owner, links, now).Build()
		second := cv.BuildQuery(c, owner, links, now).Build()
		assert.Equal(t, first, second)
		assert.Equal(t, cv.SortOldest, first.Sort)
		require.Len(t, first.Predicates, 4)
		assert.Equal(t, "tag", first.Predicates[2].Source)
		assert.Equal(t, "skill", first.Predicates[3].Source)
	})
	t.Run("no criteria is owner only", func(t *testing.T) {
		spec := cv.BuildQuery(cv.Criteria{}, owner, links, now).Build()
		assert.Len(t, spec.Predicates, 1)
	})
	t.Run("unknown tag matches nothing", func(t *testing.T) {
		spec := cv.BuildQuery(cv.Criteria{Tag: "rust"}, owner, links, now).Build()
		assert.True(t, spec.MatchesNothing())
	})
	t.Run("malformed experience is ignored", func(t *testing.T) {
		spec := cv.BuildQuery(cv.Criteria{Experience: "many"}, owner, links, now).Build()
		assert.Len(t, spec.Predicates, 1)
		assert.False(t, spec.MatchesNothing())
	})
}
