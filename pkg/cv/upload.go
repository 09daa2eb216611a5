package cv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
)

// UploadFile is one incoming file. Open is called only for files that pass validation.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// UploadResult reports the stored CVs and every per-file failure of a batch.
type UploadResult struct {
	Uploaded []CV
	Failed   []*FileError
}

// UploadUseCase describes batch upload and quota lookups.
type UploadUseCase interface {
	Upload(ctx context.Context, ownerID uuid.UUID, files []UploadFile) (UploadResult, error)
	Remaining(ctx context.Context, ownerID uuid.UUID) (int, error)
}

// UploadLimits are the configured batch and quota limits.
type UploadLimits struct {
	MaxCVs   int
	BatchCap int
}

type uploadService struct {
	repo      Repository
	quotas    QuotaStore
	store     ObjectStorage
	queue     ProcessingQueue
	notifier  StatusNotifier
	validator *Validator
	limits    UploadLimits
	nowFunc   func() time.Time
}

func NewUploadService(repo Repository, quotas QuotaStore, store ObjectStorage, queue ProcessingQueue,
	notifier StatusNotifier, validator *Validator, limits UploadLimits) UploadUseCase {
	if limits.MaxCVs <= 0 {
		limits.MaxCVs = DefaultMaxCVs
	}
	if limits.BatchCap <= 0 {
		limits.BatchCap = DefaultBatchCap
	}
	return &uploadService{
		repo:      repo,
		quotas:    quotas,
		store:     store,
		queue:     queue,
		notifier:  notifier,
		validator: validator,
		limits:    limits,
		nowFunc:   time.Now,
	}
}

func (s *uploadService) Remaining(ctx context.Context, ownerID uuid.UUID) (int, error) {
	if err := requireOwner(ownerID); err != nil {
		return 0, err
	}
	counts, err := s.repo.Counts(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("count cvs: %w", err)
	}
	max, err := s.quotas.Limit(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("load quota: %w", err)
	}
	return RemainingSlots(counts.Total, effectiveMax(max, s.limits.MaxCVs)), nil
}

func (s *uploadService) Upload(ctx context.Context, ownerID uuid.UUID, files []UploadFile) (UploadResult, error) {
	if err := requireOwner(ownerID); err != nil {
		return UploadResult{}, err
	}
	if len(files) == 0 {
		return UploadResult{}, ErrNoFiles
	}
	if len(files) > s.limits.BatchCap {
		return UploadResult{}, ValidateBatch(len(files), len(files), s.limits.BatchCap)
	}

	metas := make([]FileMeta, len(files))
	for i, f := range files {
		metas[i] = FileMeta{Name: f.Name, ContentType: f.ContentType, Size: f.Size}
	}
	candidates, idx, failed := s.validator.ValidateAll(ownerID, metas)
	res := UploadResult{Uploaded: []CV{}, Failed: failed}
	if len(candidates) == 0 {
		return res, nil
	}

	remaining, err := s.Remaining(ctx, ownerID)
	if err != nil {
		return UploadResult{}, err
	}
	// On a batch-level refusal res still carries the per-file failures found so far.
	if err := ValidateBatch(len(candidates), remaining, s.limits.BatchCap); err != nil {
		return res, err
	}
	// The read above is advisory; the reservation is the atomic check.
	if _, err := s.quotas.Reserve(ctx, ownerID, len(candidates), s.limits.MaxCVs); err != nil {
		if errors.Is(err, ErrQuotaExceeded) {
			return res, err
		}
		return UploadResult{}, fmt.Errorf("reserve quota: %w", err)
	}

	released := 0
	for i, c := range candidates {
		item, ferr := s.storeOne(ctx, ownerID, c, files[idx[i]])
		if ferr != nil {
			res.Failed = append(res.Failed, ferr)
			released++
			continue
		}
		res.Uploaded = append(res.Uploaded, item)
	}
	if released > 0 {
		if err := s.quotas.Release(ctx, ownerID, released); err != nil {
			log.Printf("upload: release %d quota slots for %s: %v", released, ownerID, err)
		}
	}
	return res, nil
}

// storeOne persists one validated file. Failures abort only this file.
func (s *uploadService) storeOne(ctx context.Context, ownerID uuid.UUID, c Candidate, f UploadFile) (CV, *FileError) {
	if f.Open == nil {
		return CV{}, &FileError{Name: c.OriginalName, Err: fmt.Errorf("%w: no content", ErrStorageWriteFailed)}
	}
	body, err := f.Open()
	if err != nil {
		return CV{}, &FileError{Name: c.OriginalName, Err: fmt.Errorf("%w: open: %v", ErrStorageWriteFailed, err)}
	}
	defer body.Close()

	if err := s.store.Put(ctx, c.StorageKey, body, c.Size, c.ContentType); err != nil {
		return CV{}, &FileError{Name: c.OriginalName, Err: fmt.Errorf("%w: %v", ErrStorageWriteFailed, err)}
	}
	item := CV{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		FileName:    c.OriginalName,
		StorageKey:  c.StorageKey,
		PublicURL:   s.store.PublicURL(c.StorageKey),
		ContentType: c.ContentType,
		Size:        c.Size,
		Status:      StatusPending,
		Tags:        []string{},
		UploadedAt:  s.nowFunc().UTC(),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		if rmErr := s.store.Remove(ctx, c.StorageKey); rmErr != nil {
			log.Printf("upload: remove orphaned object %s: %v", c.StorageKey, rmErr)
		}
		return CV{}, &FileError{Name: c.OriginalName, Err: fmt.Errorf("%w: %v", ErrRecordWriteFailed, err)}
	}

	job := ExtractJob{
		CVID:        item.ID,
		OwnerID:     ownerID,
		StorageKey:  item.StorageKey,
		ContentType: item.ContentType,
		FileName:    item.FileName,
	}
	if err := s.queue.EnqueueExtract(ctx, job); err != nil {
		log.Printf("upload: enqueue extract for cv %s: %v", item.ID, err)
	}
	if err := s.notifier.Notify(ctx, StatusEvent{CVID: item.ID, OwnerID: ownerID, Status: StatusPending, At: item.UploadedAt}); err != nil {
		log.Printf("upload: notify cv %s: %v", item.ID, err)
	}
	return item, nil
}
