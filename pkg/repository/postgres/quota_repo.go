package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/cvdesk/pkg/cv"
)

// QuotaRepository implements cv.QuotaStore on the user_quotas table.
type QuotaRepository struct {
	pool *pgxpool.Pool
}

func NewQuotaRepository(pool *pgxpool.Pool) *QuotaRepository {
	return &QuotaRepository{pool: pool}
}

var _ cv.QuotaStore = (*QuotaRepository)(nil)

// Reserve seeds the row from the current CV count on first use, then performs a
// single conditional increment. A NULL max_cvs means the caller's default applies.
// Concurrent reservations serialize on the row lock.
func (r *QuotaRepository) Reserve(ctx context.Context, ownerID uuid.UUID, n, defaultMax int) (cv.Quota, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return cv.Quota{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
INSERT INTO user_quotas (user_id, max_cvs, used)
VALUES ($1, NULL, (SELECT count(*) FROM cvs WHERE owner_id = $1))
ON CONFLICT (user_id) DO NOTHING
`, ownerID); err != nil {
		return cv.Quota{}, err
	}
	var q cv.Quota
	err = tx.QueryRow(ctx, `
UPDATE user_quotas SET used = used + $2
WHERE user_id = $1 AND used + $2 <= COALESCE(max_cvs, $3)
RETURNING COALESCE(max_cvs, $3), used
`, ownerID, n, defaultMax).Scan(&q.Max, &q.Used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cv.Quota{}, cv.ErrQuotaExceeded
		}
		return cv.Quota{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return cv.Quota{}, err
	}
	return q, nil
}

func (r *QuotaRepository) Release(ctx context.Context, ownerID uuid.UUID, n int) error {
	_, err := r.pool.Exec(ctx, `
UPDATE user_quotas SET used = GREATEST(used - $2, 0) WHERE user_id = $1
`, ownerID, n)
	return err
}

func (r *QuotaRepository) Limit(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var max *int
	err := r.pool.QueryRow(ctx, `SELECT max_cvs FROM user_quotas WHERE user_id = $1`, ownerID).Scan(&max)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *QuotaRepository) SetLimit(ctx context.Context, ownerID uuid.UUID, max int) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO user_quotas (user_id, max_cvs, used)
VALUES ($1, $2, (SELECT count(*) FROM cvs WHERE owner_id = $1))
ON CONFLICT (user_id) DO UPDATE SET max_cvs = EXCLUDED.max_cvs
`, ownerID, max)
	return err
}
