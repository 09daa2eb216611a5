package cv_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvdesk/pkg/cv"
)

func TestValidatorValidate(t *testing.T) {
	v := cv.NewValidator(1024, nil)
	owner := uuid.New()

	tests := []struct {
		name    string
		meta    cv.FileMeta
		wantErr error
		wantExt string
	}{
		{"pdf", cv.FileMeta{Name: "a.pdf", ContentType: cv.MediaTypePDF, Size: 100}, nil, ".pdf"},
		{"docx", cv.FileMeta{Name: "a.docx", ContentType: cv.MediaTypeDOCX, Size: 100}, nil, ".docx"},
		{"doc with params", cv.FileMeta{Name: "a.doc", ContentType: "Application/MSWord; charset=binary", Size: 100}, nil, ".doc"},
		{"exactly max size", cv.FileMeta{Name: "a.pdf", ContentType: cv.MediaTypePDF, Size: 1024}, nil, ".pdf"},
		{"image", cv.FileMeta{Name: "a.png", ContentType: "image/png", Size: 100}, cv.ErrUnsupportedType, ""},
		{"no type", cv.FileMeta{Name: "a.pdf", Size: 100}, cv.ErrUnsupportedType, ""},
		{"too large", cv.FileMeta{Name: "a.pdf", ContentType: cv.MediaTypePDF, Size: 1025}, cv.ErrFileTooLarge, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := v.Validate(owner, tt.meta)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				var fe *cv.FileError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, tt.meta.Name, fe.Name)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(c.StorageKey, "cvs/"+owner.String()+"/"), c.StorageKey)
			assert.True(t, strings.HasSuffix(c.StorageKey, tt.wantExt), c.StorageKey)
			assert.Equal(t, tt.meta.Name, c.OriginalName)
		})
	}
}

func TestValidatorDefaultLimits(t *testing.T) {
	v := cv.NewValidator(0, nil)
	owner := uuid.New()

	tests := []struct {
		name    string
		meta    cv.FileMeta
		wantErr error
	}{
		{"4 MB pdf", cv.FileMeta{Name: "cv.pdf", ContentType: cv.MediaTypePDF, Size: 4_000_000}, nil},
		{"6 MB pdf", cv.FileMeta{Name: "cv.pdf", ContentType: cv.MediaTypePDF, Size: 6_000_000}, cv.ErrFileTooLarge},
		{"docx allowed", cv.FileMeta{Name: "cv.docx", ContentType: cv.MediaTypeDOCX, Size: 1000}, nil},
		{"text rejected", cv.FileMeta{Name: "cv.txt", ContentType: "text/plain", Size: 1000}, cv.ErrUnsupportedType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(owner, tt.meta)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidatorKeysAreUnique(t *testing.T) {
	v := cv.NewValidator(0, nil)
	owner := uuid.New()
	meta := cv.FileMeta{Name: "same.pdf", ContentType: cv.MediaTypePDF, Size: 10}

	a, err := v.Validate(owner, meta)
	require.NoError(t, err)
	b, err := v.Validate(owner, meta)
	require.NoError(t, err)
	assert.NotEqual(t, a.StorageKey, b.StorageKey)
	assert.Equal(t, cv.DefaultMaxFileSize, v.MaxSize())
}

func TestValidatorValidateAllCollectsEveryFailure(t *testing.T) {
	v := cv.NewValidator(100, []string{cv.MediaTypePDF})
	files := []cv.FileMeta{
		{Name: "ok.pdf", ContentType: cv.MediaTypePDF, Size: 10},
		{Name: "bad.docx", ContentType: cv.MediaTypeDOCX, Size: 10},
		{Name: "big.pdf", ContentType: cv.MediaTypePDF, Size: 1000},
		{Name: "ok2.pdf", ContentType: cv.MediaTypePDF, Size: 10},
	}
	ok, idx, failed := v.ValidateAll(uuid.New(), files)
	require.Len(t, ok, 2)
	assert.Equal(t, []int{0, 3}, idx)
	require.Len(t, failed, 2)
	assert.ErrorIs(t, failed[0], cv.ErrUnsupportedType)
	assert.ErrorIs(t, failed[1], cv.ErrFileTooLarge)
}

func TestMediaTypeFromName(t *testing.T) {
	assert.Equal(t, cv.MediaTypePDF, cv.MediaTypeFromName("Resume.PDF"))
	assert.Equal(t, cv.MediaTypeDOC, cv.MediaTypeFromName("old.doc"))
	assert.Equal(t, cv.MediaTypeDOCX, cv.MediaTypeFromName("new.docx"))
	assert.Empty(t, cv.MediaTypeFromName("photo.jpg"))
}
