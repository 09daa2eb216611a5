package cv

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrUnsupportedType    = errors.New("unsupported file type")
	ErrFileTooLarge       = errors.New("file too large")
	ErrQuotaExceeded      = errors.New("upload quota exceeded")
	ErrBatchTooLarge      = errors.New("too many files in one upload")
	ErrStorageWriteFailed = errors.New("storage write failed")
	ErrRecordWriteFailed  = errors.New("record write failed")

	ErrNotFound          = errors.New("cv not found")
	ErrNoFiles           = errors.New("no files provided")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidLimit      = errors.New("limit must be positive")
)

// FileError is a failure tied to one file of a batch.
type FileError struct {
	Name string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// requireOwner rejects calls made without a caller identity.
func requireOwner(ownerID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return ErrUnauthenticated
	}
	return nil
}
