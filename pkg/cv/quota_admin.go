package cv

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// QuotaInfo is a user's effective limit and current usage.
type QuotaInfo struct {
	UserID    uuid.UUID `json:"userId"`
	Max       int       `json:"max"`
	Count     int       `json:"count"`
	Remaining int       `json:"remaining"`
}

// QuotaAdminUseCase reads and changes per-user CV limits.
type QuotaAdminUseCase interface {
	Get(ctx context.Context, userID uuid.UUID) (QuotaInfo, error)
	Set(ctx context.Context, userID uuid.UUID, max int) (QuotaInfo, error)
}

type quotaAdminService struct {
	repo       Repository
	quotas     QuotaStore
	defaultMax int
}

func NewQuotaAdminService(repo Repository, quotas QuotaStore, defaultMax int) QuotaAdminUseCase {
	return &quotaAdminService{repo: repo, quotas: quotas, defaultMax: defaultMax}
}

func (s *quotaAdminService) Get(ctx context.Context, userID uuid.UUID) (QuotaInfo, error) {
	if err := requireOwner(userID); err != nil {
		return QuotaInfo{}, err
	}
	max, err := s.quotas.Limit(ctx, userID)
	if err != nil {
		return QuotaInfo{}, fmt.Errorf("load quota: %w", err)
	}
	counts, err := s.repo.Counts(ctx, userID)
	if err != nil {
		return QuotaInfo{}, fmt.Errorf("count cvs: %w", err)
	}
	max = effectiveMax(max, s.defaultMax)
	return QuotaInfo{
		UserID:    userID,
		Max:       max,
		Count:     counts.Total,
		Remaining: RemainingSlots(counts.Total, max),
	}, nil
}

func (s *quotaAdminService) Set(ctx context.Context, userID uuid.UUID, max int) (QuotaInfo, error) {
	if err := requireOwner(userID); err != nil {
		return QuotaInfo{}, err
	}
	if max <= 0 {
		return QuotaInfo{}, ErrInvalidLimit
	}
	if err := s.quotas.SetLimit(ctx, userID, max); err != nil {
		return QuotaInfo{}, fmt.Errorf("set quota: %w", err)
	}
	return s.Get(ctx, userID)
}
