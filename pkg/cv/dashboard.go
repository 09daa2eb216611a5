package cv

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Stats are the dashboard figures of one owner.
type Stats struct {
	TotalCVs         int `json:"totalCVs"`
	ProcessedCVs     int `json:"processedCVs"`
	TotalTags        int `json:"totalTags"`
	RemainingUploads int `json:"remainingUploads"`
}

// ComputeStats derives the dashboard from raw counts. maxCVs <= 0 means the default.
func ComputeStats(ownerID uuid.UUID, counts Counts, tags []TagLink, maxCVs int) Stats {
	return Stats{
		TotalCVs:         counts.Total,
		ProcessedCVs:     counts.Processed,
		TotalTags:        len(distinctTags(ownerID, tags)),
		RemainingUploads: RemainingSlots(counts.Total, effectiveMax(maxCVs, DefaultMaxCVs)),
	}
}

// DashboardUseCase computes per-owner summary figures.
type DashboardUseCase interface {
	Stats(ctx context.Context, ownerID uuid.UUID) (Stats, error)
}

type dashboardService struct {
	repo       Repository
	quotas     QuotaStore
	defaultMax int
}

func NewDashboardService(repo Repository, quotas QuotaStore, defaultMax int) DashboardUseCase {
	return &dashboardService{repo: repo, quotas: quotas, defaultMax: defaultMax}
}

func (s *dashboardService) Stats(ctx context.Context, ownerID uuid.UUID) (Stats, error) {
	if err := requireOwner(ownerID); err != nil {
		return Stats{}, err
	}
	counts, err := s.repo.Counts(ctx, ownerID)
	if err != nil {
		return Stats{}, fmt.Errorf("count cvs: %w", err)
	}
	tags, err := s.repo.TagLinks(ctx, ownerID)
	if err != nil {
		return Stats{}, fmt.Errorf("load tags: %w", err)
	}
	max, err := s.quotas.Limit(ctx, ownerID)
	if err != nil {
		return Stats{}, fmt.Errorf("load quota: %w", err)
	}
	return ComputeStats(ownerID, counts, tags, effectiveMax(max, s.defaultMax)), nil
}
