package cv

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// Status is the processing state of an uploaded CV.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// CV хранит метаданные загруженного файла и его состояние обработки.
type CV struct {
	ID            uuid.UUID  `json:"id"`
	OwnerID       uuid.UUID  `json:"ownerId"`
	FileName      string     `json:"fileName"`
	StorageKey    string     `json:"storageKey"`
	PublicURL     string     `json:"publicUrl"`
	ContentType   string     `json:"contentType"`
	Size          int64      `json:"size"`
	Status        Status     `json:"status"`
	Tags          []string   `json:"tags"`
	UploadedAt    time.Time  `json:"uploadedAt"`
	ProcessedAt   *time.Time `json:"processedAt,omitempty"`
	FailureReason string     `json:"failureReason,omitempty"`
}

// Profile is the structured data extracted from a processed CV.
type Profile struct {
	FullName        string            `json:"fullName"`
	Email           string            `json:"email"`
	Title           string            `json:"title"`
	Location        string            `json:"location"`
	Summary         string            `json:"summary"`
	Skills          []string          `json:"skills"`
	YearsExperience float64           `json:"yearsExperience"`
	Experience      []ExperienceEntry `json:"experience"`
	Education       []EducationEntry  `json:"education"`
}

type ExperienceEntry struct {
	Company string     `json:"company"`
	Role    string     `json:"role"`
	Start   time.Time  `json:"start"`
	End     *time.Time `json:"end,omitempty"` // nil means current
}

type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

// TagLink associates a tag name with a CV.
type TagLink struct {
	CVID    uuid.UUID
	OwnerID uuid.UUID
	Name    string
	Score   float64
}

// SkillLink associates a skill/technology with a CV.
type SkillLink struct {
	CVID        uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Category    string
	Proficiency string
}

// ExperienceLink is the date range of one experience entry of a CV.
type ExperienceLink struct {
	CVID    uuid.UUID
	OwnerID uuid.UUID
	Start   time.Time
	End     *time.Time
}

// Extraction is what the processing pipeline stores for a completed CV.
type Extraction struct {
	Text    string
	Profile Profile
	Tags    []TagLink
	Skills  []SkillLink
}

// Counts are the raw per-owner figures behind the dashboard.
type Counts struct {
	Total     int
	Processed int
}

// Repository: порт доступа к CV. Every method is scoped to an owner.
type Repository interface {
	Create(ctx context.Context, item CV) error
	Get(ctx context.Context, ownerID, id uuid.UUID) (CV, error)
	GetProfile(ctx context.Context, ownerID, id uuid.UUID) (Profile, error)
	Find(ctx context.Context, spec QuerySpec) ([]CV, error)
	Count(ctx context.Context, spec QuerySpec) (int, error)
	Counts(ctx context.Context, ownerID uuid.UUID) (Counts, error)
	// Delete returns the removed CV so the caller can clean up storage.
	Delete(ctx context.Context, ownerID, id uuid.UUID) (CV, error)

	TagLinks(ctx context.Context, ownerID uuid.UUID) ([]TagLink, error)
	SkillLinks(ctx context.Context, ownerID uuid.UUID) ([]SkillLink, error)
	ExperienceLinks(ctx context.Context, ownerID uuid.UUID) ([]ExperienceLink, error)
}

// ProcessingRepository is used by the worker to move a CV through its states.
type ProcessingRepository interface {
	GetAny(ctx context.Context, id uuid.UUID) (CV, error)
	MarkProcessing(ctx context.Context, id uuid.UUID) error
	MarkCompleted(ctx context.Context, id uuid.UUID, ex Extraction) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
}

// Quota is the persisted quota row of a user.
type Quota struct {
	Max  int
	Used int
}

// QuotaStore persists per-user limits and reservations.
type QuotaStore interface {
	// Reserve atomically adds n to the used counter if the result stays within max.
	// Returns ErrQuotaExceeded when it does not.
	Reserve(ctx context.Context, ownerID uuid.UUID, n, defaultMax int) (Quota, error)
	Release(ctx context.Context, ownerID uuid.UUID, n int) error
	// Limit returns the configured max, or 0 when the user has none.
	Limit(ctx context.Context, ownerID uuid.UUID) (int, error)
	SetLimit(ctx context.Context, ownerID uuid.UUID, max int) error
}

// ObjectStorage stores raw CV files by key.
type ObjectStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
	PublicURL(key string) string
}

// ExtractJob is the payload handed to the processing queue.
type ExtractJob struct {
	CVID        uuid.UUID `json:"cv_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	StorageKey  string    `json:"storage_key"`
	ContentType string    `json:"content_type"`
	FileName    string    `json:"file_name"`
}

type ProcessingQueue interface {
	EnqueueExtract(ctx context.Context, job ExtractJob) error
}

// StatusEvent is published whenever a CV changes state.
type StatusEvent struct {
	CVID    uuid.UUID `json:"cvId"`
	OwnerID uuid.UUID `json:"ownerId"`
	Status  Status    `json:"status"`
	Reason  string    `json:"reason,omitempty"`
	At      time.Time `json:"at"`
}

type StatusNotifier interface {
	Notify(ctx context.Context, ev StatusEvent) error
}
