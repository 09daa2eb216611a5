package cv

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOC  = "application/msword"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	DefaultMaxFileSize int64 = 5 << 20 // 5 MiB
)

var extByType = map[string]string{
	MediaTypePDF:  ".pdf",
	MediaTypeDOC:  ".doc",
	MediaTypeDOCX: ".docx",
}

// FileMeta is what the caller declares about an incoming file.
type FileMeta struct {
	Name        string
	ContentType string
	Size        int64
}

// Candidate is a validated file ready to be stored.
type Candidate struct {
	StorageKey   string
	OriginalName string
	ContentType  string
	Size         int64
	Ext          string
}

// Validator checks declared media type and size. It does not sniff content.
type Validator struct {
	maxSize int64
	allowed map[string]struct{}
	newID   func() uuid.UUID
}

// NewValidator builds a validator. Empty arguments fall back to the defaults.
func NewValidator(maxSize int64, allowedTypes []string) *Validator {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	if len(allowedTypes) == 0 {
		allowedTypes = []string{MediaTypePDF, MediaTypeDOC, MediaTypeDOCX}
	}
	allowed := make(map[string]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[normalizeMediaType(t)] = struct{}{}
	}
	return &Validator{maxSize: maxSize, allowed: allowed, newID: uuid.New}
}

func (v *Validator) MaxSize() int64 { return v.maxSize }

// Validate checks one file and derives its storage key under the owner prefix.
func (v *Validator) Validate(ownerID uuid.UUID, f FileMeta) (Candidate, error) {
	ct := normalizeMediaType(f.ContentType)
	if _, ok := v.allowed[ct]; !ok {
		return Candidate{}, &FileError{Name: f.Name, Err: fmt.Errorf("%w: %q", ErrUnsupportedType, f.ContentType)}
	}
	if f.Size > v.maxSize {
		return Candidate{}, &FileError{Name: f.Name, Err: fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, f.Size, v.maxSize)}
	}
	ext, ok := extByType[ct]
	if !ok {
		ext = strings.ToLower(path.Ext(f.Name))
	}
	return Candidate{
		StorageKey:   fmt.Sprintf("cvs/%s/%s%s", ownerID, v.newID(), ext),
		OriginalName: f.Name,
		ContentType:  ct,
		Size:         f.Size,
		Ext:          ext,
	}, nil
}

// ValidateAll validates every file and collects all failures instead of stopping at the first.
// The returned indexes point back into files for each candidate.
func (v *Validator) ValidateAll(ownerID uuid.UUID, files []FileMeta) ([]Candidate, []int, []*FileError) {
	var (
		ok     []Candidate
		idx    []int
		failed []*FileError
	)
	for i, f := range files {
		c, err := v.Validate(ownerID, f)
		if err != nil {
			failed = append(failed, err.(*FileError))
			continue
		}
		ok = append(ok, c)
		idx = append(idx, i)
	}
	return ok, idx, failed
}

// MediaTypeFromName maps a file extension to an allow-listed media type.
// Used only when the client declared no type at all.
func MediaTypeFromName(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		return MediaTypePDF
	case ".doc":
		return MediaTypeDOC
	case ".docx":
		return MediaTypeDOCX
	default:
		return ""
	}
}

func normalizeMediaType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}
