package cv_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvdesk/pkg/cv"
)

func TestParseSort(t *testing.T) {
	assert.Equal(t, cv.SortNewest, cv.ParseSort(""))
	assert.Equal(t, cv.SortNewest, cv.ParseSort("random"))
	assert.Equal(t, cv.SortOldest, cv.ParseSort(" OLDEST "))
	assert.Equal(t, cv.SortNameAZ, cv.ParseSort("name_az"))
	assert.Equal(t, cv.SortNameZA, cv.ParseSort("name_za"))
}

func TestQueryStartsWithOwner(t *testing.T) {
	owner := uuid.New()
	spec := cv.NewQuery(owner).Build()

	assert.Equal(t, owner, spec.Owner)
	require.Len(t, spec.Predicates, 1)
	assert.Equal(t, cv.PredicateOwner, spec.Predicates[0].Kind)
	assert.Equal(t, owner, spec.Predicates[0].Owner)
	assert.Equal(t, cv.SortNewest, spec.Sort)
}

func TestQueryIsImmutable(t *testing.T) {
	base := cv.NewQuery(uuid.New())
	withText := base.Text("golang")
	_ = withText.Page(10, 20)

	assert.Len(t, base.Build().Predicates, 1)
	assert.Len(t, withText.Build().Predicates, 2)
	assert.Zero(t, withText.Build().Limit)

	// Branching from the same parent must not share predicate storage.
	a := withText.Restrict("tag", cv.Restriction{Active: true, IDs: []uuid.UUID{uuid.New()}})
	b := withText.Text("java")
	assert.Equal(t, cv.PredicateIDs, a.Build().Predicates[2].Kind)
	assert.Equal(t, cv.PredicateText, b.Build().Predicates[2].Kind)
}

func TestQueryBuildIsIdempotent(t *testing.T) {
	id := uuid.New()
	q := cv.NewQuery(uuid.New()).
		Text("go").
		Restrict("tag", cv.Restriction{Active: true, IDs: []uuid.UUID{id}}).
		SortBy(cv.SortNameAZ).
		Page(5, 10)

	first := q.Build()
	first.Predicates[2].IDs[0] = uuid.Nil
	second := q.Build()

	assert.Equal(t, id, second.Predicates[2].IDs[0])
	assert.Equal(t, q.Build(), second)
}

func TestQueryIgnoresEmptyInputs(t *testing.T) {
	spec := cv.NewQuery(uuid.New()).
		Text("   ").
		Restrict("tag", cv.Unrestricted()).
		Page(-1, -5).
		Build()

	assert.Len(t, spec.Predicates, 1)
	assert.Zero(t, spec.Limit)
	assert.Zero(t, spec.Offset)
	assert.False(t, spec.MatchesNothing())
}

func TestMatchesNothingAndUnpaged(t *testing.T) {
	spec := cv.NewQuery(uuid.New()).
		Restrict("skill", cv.Restriction{Active: true}).
		Page(5, 5).
		Build()

	assert.True(t, spec.MatchesNothing())
	un := spec.Unpaged()
	assert.Zero(t, un.Limit)
	assert.Zero(t, un.Offset)
	assert.Equal(t, 5, spec.Limit)
}
