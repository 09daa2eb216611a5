package cv

import (
	"strings"

	"github.com/google/uuid"
)

// SortKey orders search results. Every key has id ASC as a secondary key.
type SortKey string

const (
	SortNewest SortKey = "newest"
	SortOldest SortKey = "oldest"
	SortNameAZ SortKey = "name_az"
	SortNameZA SortKey = "name_za"
)

// ParseSort maps a request value to a sort key; anything unknown is newest.
func ParseSort(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortOldest:
		return SortOldest
	case SortNameAZ:
		return SortNameAZ
	case SortNameZA:
		return SortNameZA
	default:
		return SortNewest
	}
}

// Criteria are the optional search filters of one request.
type Criteria struct {
	Q          string
	Tag        string
	Skill      string
	Experience string
	Sort       string
}

type PredicateKind int

const (
	PredicateOwner PredicateKind = iota
	PredicateText
	PredicateIDs
)

// Predicate is one conjunctive condition of a QuerySpec.
type Predicate struct {
	Kind   PredicateKind
	Owner  uuid.UUID
	Text   string
	Source string // tag, skill or experience for PredicateIDs
	IDs    []uuid.UUID
}

// QuerySpec is a finalized search. Storage backends execute it.
type QuerySpec struct {
	Owner      uuid.UUID
	Predicates []Predicate
	Sort       SortKey
	Limit      int
	Offset     int
}

// MatchesNothing reports whether some id predicate has an empty list.
func (s QuerySpec) MatchesNothing() bool {
	for _, p := range s.Predicates {
		if p.Kind == PredicateIDs && len(p.IDs) == 0 {
			return true
		}
	}
	return false
}

// Unpaged returns the same spec without limit and offset, for counting.
func (s QuerySpec) Unpaged() QuerySpec {
	s.Limit, s.Offset = 0, 0
	return s
}

// Query is an immutable builder: every method returns a new Query.
type Query struct {
	owner  uuid.UUID
	preds  []Predicate
	sort   SortKey
	limit  int
	offset int
}

// NewQuery starts a query scoped to ownerID.
func NewQuery(ownerID uuid.UUID) Query {
	return Query{
		owner: ownerID,
		preds: []Predicate{{Kind: PredicateOwner, Owner: ownerID}},
		sort:  SortNewest,
	}
}

func (q Query) with(p Predicate) Query {
	preds := make([]Predicate, len(q.preds), len(q.preds)+1)
	copy(preds, q.preds)
	q.preds = append(preds, p)
	return q
}

// Text adds a case-insensitive substring match on file name or raw text.
func (q Query) Text(s string) Query {
	s = strings.TrimSpace(s)
	if s == "" {
		return q
	}
	return q.with(Predicate{Kind: PredicateText, Text: s})
}

// Restrict limits results to the ids of an active restriction.
func (q Query) Restrict(source string, r Restriction) Query {
	if !r.Active {
		return q
	}
	ids := make([]uuid.UUID, len(r.IDs))
	copy(ids, r.IDs)
	return q.with(Predicate{Kind: PredicateIDs, Source: source, IDs: ids})
}

func (q Query) SortBy(k SortKey) Query {
	q.sort = ParseSort(string(k))
	return q
}

func (q Query) Page(limit, offset int) Query {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	q.limit, q.offset = limit, offset
	return q
}

// Build returns the finalized spec. The result shares no memory with q.
func (q Query) Build() QuerySpec {
	preds := make([]Predicate, len(q.preds))
	for i, p := range q.preds {
		if p.IDs != nil {
			ids := make([]uuid.UUID, len(p.IDs))
			copy(ids, p.IDs)
			p.IDs = ids
		}
		preds[i] = p
	}
	return QuerySpec{
		Owner:      q.owner,
		Predicates: preds,
		Sort:       q.sort,
		Limit:      q.limit,
		Offset:     q.offset,
	}
}
