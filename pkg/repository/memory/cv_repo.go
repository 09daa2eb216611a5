package memory

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/cvdesk/pkg/cv"
)

type record struct {
	cv      cv.CV
	text    string
	profile *cv.Profile
	tags    []cv.TagLink
	skills  []cv.SkillLink
}

// CVRepository is an in-process implementation of the CV ports.
// It evaluates QuerySpecs with the same semantics as the Postgres renderer.
type CVRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*record
	quotas  map[uuid.UUID]*cv.Quota
}

func NewCVRepository() *CVRepository {
	return &CVRepository{
		records: make(map[uuid.UUID]*record),
		quotas:  make(map[uuid.UUID]*cv.Quota),
	}
}

var (
	_ cv.Repository           = (*CVRepository)(nil)
	_ cv.ProcessingRepository = (*CVRepository)(nil)
	_ cv.QuotaStore           = (*CVRepository)(nil)
)

func (r *CVRepository) Create(_ context.Context, item cv.CV) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.UploadedAt.IsZero() {
		item.UploadedAt = time.Now().UTC()
	}
	if item.Status == "" {
		item.Status = cv.StatusPending
	}
	r.records[item.ID] = &record{cv: item}
	return nil
}

func (r *CVRepository) Get(_ context.Context, ownerID, id uuid.UUID) (cv.CV, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok || rec.cv.OwnerID != ownerID {
		return cv.CV{}, cv.ErrNotFound
	}
	return rec.view(), nil
}

func (r *CVRepository) GetProfile(_ context.Context, ownerID, id uuid.UUID) (cv.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok || rec.cv.OwnerID != ownerID || rec.profile == nil {
		return cv.Profile{}, cv.ErrNotFound
	}
	return *rec.profile, nil
}

func (r *CVRepository) Find(_ context.Context, spec cv.QuerySpec) ([]cv.CV, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := r.matching(spec)
	sortCVs(out, spec.Sort)
	if spec.Offset > 0 {
		if spec.Offset >= len(out) {
			return []cv.CV{}, nil
		}
		out = out[spec.Offset:]
	}
	if spec.Limit > 0 && len(out) > spec.Limit {
		out = out[:spec.Limit]
	}
	return out, nil
}

func (r *CVRepository) Count(_ context.Context, spec cv.QuerySpec) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.matching(spec)), nil
}

func (r *CVRepository) Counts(_ context.Context, ownerID uuid.UUID) (cv.Counts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var c cv.Counts
	for _, rec := range r.records {
		if rec.cv.OwnerID != ownerID {
			continue
		}
		c.Total++
		if rec.cv.Status == cv.StatusCompleted {
			c.Processed++
		}
	}
	return c, nil
}

func (r *CVRepository) Delete(_ context.Context, ownerID, id uuid.UUID) (cv.CV, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || rec.cv.OwnerID != ownerID {
		return cv.CV{}, cv.ErrNotFound
	}
	delete(r.records, id)
	return rec.view(), nil
}

func (r *CVRepository) TagLinks(_ context.Context, ownerID uuid.UUID) ([]cv.TagLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []cv.TagLink
	for _, rec := range r.owned(ownerID) {
		out = append(out, rec.tags...)
	}
	return out, nil
}

func (r *CVRepository) SkillLinks(_ context.Context, ownerID uuid.UUID) ([]cv.SkillLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []cv.SkillLink
	for _, rec := range r.owned(ownerID) {
		out = append(out, rec.skills...)
	}
	return out, nil
}

func (r *CVRepository) ExperienceLinks(_ context.Context, ownerID uuid.UUID) ([]cv.ExperienceLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []cv.ExperienceLink
	for _, rec := range r.owned(ownerID) {
		if rec.profile == nil {
			continue
		}
		for _, e := range rec.profile.Experience {
			if e.Start.IsZero() {
				continue
			}
			out = append(out, cv.ExperienceLink{CVID: rec.cv.ID, OwnerID: ownerID, Start: e.Start, End: e.End})
		}
	}
	return out, nil
}

func (r *CVRepository) GetAny(_ context.Context, id uuid.UUID) (cv.CV, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return cv.CV{}, cv.ErrNotFound
	}
	return rec.view(), nil
}

func (r *CVRepository) MarkProcessing(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, err := r.transition(id, cv.StatusProcessing)
	if err != nil {
		return err
	}
	rec.cv.FailureReason = ""
	return nil
}

func (r *CVRepository) MarkCompleted(_ context.Context, id uuid.UUID, ex cv.Extraction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, err := r.transition(id, cv.StatusCompleted)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	p := ex.Profile
	rec.cv.ProcessedAt = &now
	rec.text = ex.Text
	rec.profile = &p
	rec.tags = rec.tags[:0]
	for _, t := range ex.Tags {
		t.CVID, t.OwnerID = id, rec.cv.OwnerID
		rec.tags = append(rec.tags, t)
	}
	rec.skills = rec.skills[:0]
	for _, s := range ex.Skills {
		s.CVID, s.OwnerID = id, rec.cv.OwnerID
		rec.skills = append(rec.skills, s)
	}
	return nil
}

func (r *CVRepository) MarkFailed(_ context.Context, id uuid.UUID, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, err := r.transition(id, cv.StatusFailed)
	if err != nil {
		return err
	}
	rec.cv.FailureReason = reason
	return nil
}

func (r *CVRepository) transition(id uuid.UUID, to cv.Status) (*record, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, cv.ErrNotFound
	}
	if err := cv.CheckTransition(rec.cv.Status, to); err != nil {
		return nil, err
	}
	rec.cv.Status = to
	return rec, nil
}

// Reserve is atomic under the repository lock.
func (r *CVRepository) Reserve(_ context.Context, ownerID uuid.UUID, n, defaultMax int) (cv.Quota, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotas[ownerID]
	if !ok {
		q = &cv.Quota{Used: len(r.owned(ownerID))}
		r.quotas[ownerID] = q
	}
	// Max stays 0 until an admin sets it; the caller's default applies meanwhile.
	max := q.Max
	if max <= 0 {
		max = defaultMax
	}
	if q.Used+n > max {
		return cv.Quota{Max: max, Used: q.Used}, cv.ErrQuotaExceeded
	}
	q.Used += n
	return cv.Quota{Max: max, Used: q.Used}, nil
}

func (r *CVRepository) Release(_ context.Context, ownerID uuid.UUID, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if q, ok := r.quotas[ownerID]; ok {
		q.Used -= n
		if q.Used < 0 {
			q.Used = 0
		}
	}
	return nil
}

func (r *CVRepository) Limit(_ context.Context, ownerID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if q, ok := r.quotas[ownerID]; ok {
		return q.Max, nil
	}
	return 0, nil
}

func (r *CVRepository) SetLimit(_ context.Context, ownerID uuid.UUID, max int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotas[ownerID]
	if !ok {
		q = &cv.Quota{Used: len(r.owned(ownerID))}
		r.quotas[ownerID] = q
	}
	q.Max = max
	return nil
}

// SetText stores raw extracted text without changing status. Test helper.
func (r *CVRepository) SetText(id uuid.UUID, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.records[id]; ok {
		rec.text = text
	}
}

func (r *CVRepository) owned(ownerID uuid.UUID) []*record {
	var out []*record
	for _, rec := range r.records {
		if rec.cv.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	return out
}

func (r *CVRepository) matching(spec cv.QuerySpec) []cv.CV {
	out := []cv.CV{}
	for _, rec := range r.records {
		if rec.matches(spec) {
			out = append(out, rec.view())
		}
	}
	return out
}

func (rec *record) matches(spec cv.QuerySpec) bool {
	if rec.cv.OwnerID != spec.Owner {
		return false
	}
	for _, p := range spec.Predicates {
		switch p.Kind {
		case cv.PredicateOwner:
			if rec.cv.OwnerID != p.Owner {
				return false
			}
		case cv.PredicateText:
			needle := strings.ToLower(p.Text)
			if !strings.Contains(strings.ToLower(rec.cv.FileName), needle) &&
				!strings.Contains(strings.ToLower(rec.text), needle) {
				return false
			}
		case cv.PredicateIDs:
			found := false
			for _, id := range p.IDs {
				if id == rec.cv.ID {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

func (rec *record) view() cv.CV {
	out := rec.cv
	tags := make([]cv.TagLink, len(rec.tags))
	copy(tags, rec.tags)
	sort.SliceStable(tags, func(i, j int) bool {
		if tags[i].Score != tags[j].Score {
			return tags[i].Score > tags[j].Score
		}
		return tags[i].Name < tags[j].Name
	})
	out.Tags = make([]string, 0, len(tags))
	for _, t := range tags {
		out.Tags = append(out.Tags, t.Name)
	}
	return out
}

func sortCVs(items []cv.CV, key cv.SortKey) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch key {
		case cv.SortOldest:
			if !a.UploadedAt.Equal(b.UploadedAt) {
				return a.UploadedAt.Before(b.UploadedAt)
			}
		case cv.SortNameAZ:
			if a.FileName != b.FileName {
				return a.FileName < b.FileName
			}
		case cv.SortNameZA:
			if a.FileName != b.FileName {
				return a.FileName > b.FileName
			}
		default:
			if !a.UploadedAt.Equal(b.UploadedAt) {
				return a.UploadedAt.After(b.UploadedAt)
			}
		}
		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	})
}
