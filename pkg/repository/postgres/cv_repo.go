package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/cvdesk/pkg/cv"
)

// CVRepository хранит CV, их профили и связи с тегами/навыками.
type CVRepository struct {
	pool *pgxpool.Pool
}

func NewCVRepository(pool *pgxpool.Pool) *CVRepository {
	return &CVRepository{pool: pool}
}

var (
	_ cv.Repository           = (*CVRepository)(nil)
	_ cv.ProcessingRepository = (*CVRepository)(nil)
)

func (r *CVRepository) Create(ctx context.Context, item cv.CV) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.UploadedAt.IsZero() {
		item.UploadedAt = time.Now().UTC()
	}
	if item.Status == "" {
		item.Status = cv.StatusPending
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO cvs (id, owner_id, file_name, storage_key, public_url, content_type, size_bytes, status, uploaded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, item.ID, item.OwnerID, item.FileName, item.StorageKey, item.PublicURL, item.ContentType, item.Size, string(item.Status), item.UploadedAt)
	return err
}

func (r *CVRepository) Get(ctx context.Context, ownerID, id uuid.UUID) (cv.CV, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+cvColumns+`
FROM cvs c WHERE c.id = $1 AND c.owner_id = $2`, id, ownerID)
	return scanCV(row)
}

func (r *CVRepository) GetAny(ctx context.Context, id uuid.UUID) (cv.CV, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+cvColumns+`
FROM cvs c WHERE c.id = $1`, id)
	return scanCV(row)
}

func (r *CVRepository) GetProfile(ctx context.Context, ownerID, id uuid.UUID) (cv.Profile, error) {
	row := r.pool.QueryRow(ctx, `
SELECT p.profile FROM cv_profiles p
JOIN cvs c ON c.id = p.cv_id
WHERE p.cv_id = $1 AND c.owner_id = $2
`, id, ownerID)
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cv.Profile{}, cv.ErrNotFound
		}
		return cv.Profile{}, err
	}
	var p cv.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return cv.Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

func (r *CVRepository) Find(ctx context.Context, spec cv.QuerySpec) ([]cv.CV, error) {
	sql, args := renderFind(spec)
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []cv.CV{}
	for rows.Next() {
		item, err := scanCV(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, rows.Err()
}

func (r *CVRepository) Count(ctx context.Context, spec cv.QuerySpec) (int, error) {
	sql, args := renderCount(spec)
	var n int
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *CVRepository) Counts(ctx context.Context, ownerID uuid.UUID) (cv.Counts, error) {
	var c cv.Counts
	err := r.pool.QueryRow(ctx, `
SELECT count(*), count(*) FILTER (WHERE status = 'completed')
FROM cvs WHERE owner_id = $1
`, ownerID).Scan(&c.Total, &c.Processed)
	return c, err
}

func (r *CVRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) (cv.CV, error) {
	item, err := r.Get(ctx, ownerID, id)
	if err != nil {
		return cv.CV{}, err
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM cvs WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return cv.CV{}, err
	}
	if tag.RowsAffected() == 0 {
		return cv.CV{}, cv.ErrNotFound
	}
	return item, nil
}

func (r *CVRepository) TagLinks(ctx context.Context, ownerID uuid.UUID) ([]cv.TagLink, error) {
	rows, err := r.pool.Query(ctx, `
SELECT t.cv_id, c.owner_id, t.tag_name, t.relevance
FROM cv_tags t JOIN cvs c ON c.id = t.cv_id
WHERE c.owner_id = $1
`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []cv.TagLink
	for rows.Next() {
		var l cv.TagLink
		var score float32
		if err := rows.Scan(&l.CVID, &l.OwnerID, &l.Name, &score); err != nil {
			return nil, err
		}
		l.Score = float64(score)
		res = append(res, l)
	}
	return res, rows.Err()
}

func (r *CVRepository) SkillLinks(ctx context.Context, ownerID uuid.UUID) ([]cv.SkillLink, error) {
	rows, err := r.pool.Query(ctx, `
SELECT s.cv_id, c.owner_id, s.name, s.category, s.proficiency
FROM cv_skills s JOIN cvs c ON c.id = s.cv_id
WHERE c.owner_id = $1
`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []cv.SkillLink
	for rows.Next() {
		var l cv.SkillLink
		if err := rows.Scan(&l.CVID, &l.OwnerID, &l.Name, &l.Category, &l.Proficiency); err != nil {
			return nil, err
		}
		res = append(res, l)
	}
	return res, rows.Err()
}

func (r *CVRepository) ExperienceLinks(ctx context.Context, ownerID uuid.UUID) ([]cv.ExperienceLink, error) {
	rows, err := r.pool.Query(ctx, `
SELECT e.cv_id, c.owner_id, e.start_date, e.end_date
FROM cv_experiences e JOIN cvs c ON c.id = e.cv_id
WHERE c.owner_id = $1
`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []cv.ExperienceLink
	for rows.Next() {
		var l cv.ExperienceLink
		if err := rows.Scan(&l.CVID, &l.OwnerID, &l.Start, &l.End); err != nil {
			return nil, err
		}
		l.Start = l.Start.UTC()
		if l.End != nil {
			end := l.End.UTC()
			l.End = &end
		}
		res = append(res, l)
	}
	return res, rows.Err()
}

func (r *CVRepository) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	return r.transition(ctx, r.pool, id, cv.StatusProcessing, `, failure_reason = ''`)
}

func (r *CVRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return r.transition(ctx, r.pool, id, cv.StatusFailed, `, failure_reason = $3`, reason)
}

// MarkCompleted stores text, profile and associations and completes the CV in one transaction.
func (r *CVRepository) MarkCompleted(ctx context.Context, id uuid.UUID, ex cv.Extraction) error {
	profile, err := json.Marshal(ex.Profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := r.transition(ctx, tx, id, cv.StatusCompleted,
		`, raw_text = $3, processed_at = now(), failure_reason = ''`, ex.Text); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
INSERT INTO cv_profiles (cv_id, profile, updated_at) VALUES ($1, $2, now())
ON CONFLICT (cv_id) DO UPDATE SET profile = EXCLUDED.profile, updated_at = EXCLUDED.updated_at
`, id, profile); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	for _, stmt := range []string{
		`DELETE FROM cv_tags WHERE cv_id = $1`,
		`DELETE FROM cv_skills WHERE cv_id = $1`,
		`DELETE FROM cv_experiences WHERE cv_id = $1`,
	} {
		if _, err := tx.Exec(ctx, stmt, id); err != nil {
			return err
		}
	}
	batch := &pgx.Batch{}
	for _, t := range ex.Tags {
		batch.Queue(`INSERT INTO cv_tags (cv_id, tag_name, relevance) VALUES ($1, $2, $3)
ON CONFLICT (cv_id, tag_name) DO UPDATE SET relevance = GREATEST(cv_tags.relevance, EXCLUDED.relevance)`,
			id, t.Name, float32(t.Score))
	}
	for _, s := range ex.Skills {
		batch.Queue(`INSERT INTO cv_skills (cv_id, name, category, proficiency) VALUES ($1, $2, $3, $4)
ON CONFLICT (cv_id, name) DO NOTHING`, id, s.Name, s.Category, s.Proficiency)
	}
	for _, e := range ex.Profile.Experience {
		if e.Start.IsZero() {
			continue
		}
		batch.Queue(`INSERT INTO cv_experiences (cv_id, company, role, start_date, end_date) VALUES ($1, $2, $3, $4, $5)`,
			id, e.Company, e.Role, e.Start, e.End)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert associations: %w", err)
		}
	}
	return tx.Commit(ctx)
}

type execer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// transition moves a CV to "to" only from an allowed source status.
func (r *CVRepository) transition(ctx context.Context, db execer, id uuid.UUID, to cv.Status, set string, extra ...any) error {
	from := make([]string, 0, 2)
	for _, s := range cv.SourcesOf(to) {
		from = append(from, string(s))
	}
	args := append([]any{id, string(to)}, extra...)
	args = append(args, from)
	q := fmt.Sprintf(`
UPDATE cvs SET status = $2%s
WHERE id = $1 AND status = ANY($%d::text[])
RETURNING id`, set, len(args))
	var got uuid.UUID
	err := db.QueryRow(ctx, q, args...).Scan(&got)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	var current string
	if err := db.QueryRow(ctx, `SELECT status FROM cvs WHERE id = $1`, id).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cv.ErrNotFound
		}
		return err
	}
	return cv.CheckTransition(cv.Status(current), to)
}

func scanCV(row pgx.Row) (cv.CV, error) {
	var (
		m         cv.CV
		status    string
		uploaded  time.Time
		processed *time.Time
	)
	if err := row.Scan(&m.ID, &m.OwnerID, &m.FileName, &m.StorageKey, &m.PublicURL, &m.ContentType,
		&m.Size, &status, &m.FailureReason, &uploaded, &processed, &m.Tags); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cv.CV{}, cv.ErrNotFound
		}
		return cv.CV{}, err
	}
	m.Status = cv.Status(status)
	m.UploadedAt = uploaded.UTC()
	if processed != nil {
		t := processed.UTC()
		m.ProcessedAt = &t
	}
	if m.Tags == nil {
		m.Tags = []string{}
	}
	return m, nil
}
