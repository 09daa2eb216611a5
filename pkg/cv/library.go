package cv

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

const RecentLimit = 5

// Page is one page of search results plus the unpaged total.
type Page struct {
	Items []CV `json:"items"`
	Total int  `json:"total"`
}

// Detail is a CV together with its parsed profile, if processing finished.
type Detail struct {
	CV      CV       `json:"cv"`
	Profile *Profile `json:"profile,omitempty"`
}

// LibraryUseCase describes browsing and managing an owner's CVs.
type LibraryUseCase interface {
	Search(ctx context.Context, ownerID uuid.UUID, c Criteria, limit, offset int) (Page, error)
	Recent(ctx context.Context, ownerID uuid.UUID) ([]CV, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (Detail, error)
	Open(ctx context.Context, ownerID, id uuid.UUID) (CV, []byte, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	Facets(ctx context.Context, ownerID uuid.UUID) (Facets, error)
}

type libraryService struct {
	repo    Repository
	store   ObjectStorage
	quotas  QuotaStore
	nowFunc func() time.Time
}

// NewLibraryService returns default implementation of LibraryUseCase.
func NewLibraryService(repo Repository, store ObjectStorage, quotas QuotaStore) LibraryUseCase {
	return &libraryService{repo: repo, store: store, quotas: quotas, nowFunc: time.Now}
}

func (s *libraryService) Search(ctx context.Context, ownerID uuid.UUID, c Criteria, limit, offset int) (Page, error) {
	if err := requireOwner(ownerID); err != nil {
		return Page{}, err
	}
	links, err := s.loadLinks(ctx, ownerID, c)
	if err != nil {
		return Page{}, err
	}
	spec := BuildQuery(c, ownerID, links, s.nowFunc().UTC()).Page(limit, offset).Build()
	if spec.MatchesNothing() {
		return Page{Items: []CV{}, Total: 0}, nil
	}
	items, err := s.repo.Find(ctx, spec)
	if err != nil {
		return Page{}, fmt.Errorf("find cvs: %w", err)
	}
	total, err := s.repo.Count(ctx, spec.Unpaged())
	if err != nil {
		return Page{}, fmt.Errorf("count cvs: %w", err)
	}
	if items == nil {
		items = []CV{}
	}
	return Page{Items: items, Total: total}, nil
}

// loadLinks fetches only the association sets the criteria actually need.
func (s *libraryService) loadLinks(ctx context.Context, ownerID uuid.UUID, c Criteria) (Links, error) {
	var (
		links Links
		err   error
	)
	if strings.TrimSpace(c.Tag) != "" {
		if links.Tags, err = s.repo.TagLinks(ctx, ownerID); err != nil {
			return Links{}, fmt.Errorf("load tags: %w", err)
		}
	}
	if strings.TrimSpace(c.Skill) != "" {
		if links.Skills, err = s.repo.SkillLinks(ctx, ownerID); err != nil {
			return Links{}, fmt.Errorf("load skills: %w", err)
		}
	}
	if _, ok := ParseExperience(c.Experience); ok {
		if links.Experience, err = s.repo.ExperienceLinks(ctx, ownerID); err != nil {
			return Links{}, fmt.Errorf("load experience: %w", err)
		}
	}
	return links, nil
}

func (s *libraryService) Recent(ctx context.Context, ownerID uuid.UUID) ([]CV, error) {
	page, err := s.Search(ctx, ownerID, Criteria{Sort: string(SortNewest)}, RecentLimit, 0)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (s *libraryService) Get(ctx context.Context, ownerID, id uuid.UUID) (Detail, error) {
	if err := requireOwner(ownerID); err != nil {
		return Detail{}, err
	}
	item, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return Detail{}, err
	}
	d := Detail{CV: item}
	if item.Status == StatusCompleted {
		p, err := s.repo.GetProfile(ctx, ownerID, id)
		switch {
		case err == nil:
			d.Profile = &p
		case !errors.Is(err, ErrNotFound):
			return Detail{}, fmt.Errorf("load profile: %w", err)
		}
	}
	return d, nil
}

func (s *libraryService) Open(ctx context.Context, ownerID, id uuid.UUID) (CV, []byte, error) {
	if err := requireOwner(ownerID); err != nil {
		return CV{}, nil, err
	}
	item, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return CV{}, nil, err
	}
	data, err := s.store.Get(ctx, item.StorageKey)
	if err != nil {
		return CV{}, nil, fmt.Errorf("read object: %w", err)
	}
	return item, data, nil
}

// Delete removes the record first, then the stored file, then frees the slot.
func (s *libraryService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	item, err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.store.Remove(ctx, item.StorageKey); err != nil {
		log.Printf("cv %s: remove object %s: %v", item.ID, item.StorageKey, err)
	}
	if err := s.quotas.Release(ctx, ownerID, 1); err != nil {
		log.Printf("cv %s: release quota: %v", item.ID, err)
	}
	return nil
}

func (s *libraryService) Facets(ctx context.Context, ownerID uuid.UUID) (Facets, error) {
	if err := requireOwner(ownerID); err != nil {
		return Facets{}, err
	}
	tags, err := s.repo.TagLinks(ctx, ownerID)
	if err != nil {
		return Facets{}, fmt.Errorf("load tags: %w", err)
	}
	skills, err := s.repo.SkillLinks(ctx, ownerID)
	if err != nil {
		return Facets{}, fmt.Errorf("load skills: %w", err)
	}
	return AggregateFacets(ownerID, tags, skills), nil
}
