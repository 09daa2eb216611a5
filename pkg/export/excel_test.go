package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/artem13815/cvdesk/pkg/cv"
	"github.com/artem13815/cvdesk/pkg/repository/memory"
)

func TestWriteWorkbook(t *testing.T) {
	items := []cv.CV{
		{FileName: "alice.pdf", Status: cv.StatusCompleted, Size: 2048, Tags: []string{"backend", "senior"},
			UploadedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), PublicURL: "https://cdn/alice.pdf"},
		{FileName: "bob.docx", Status: cv.StatusFailed, Size: 512, UploadedAt: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)},
	}
	stats := cv.Stats{TotalCVs: 2, ProcessedCVs: 1, TotalTags: 2, RemainingUploads: 28}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, stats, items, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, CVsSheet}, f.GetSheetList())

	total, err := f.GetCellValue(SummarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "2", total)
	remaining, err := f.GetCellValue(SummarySheet, "B6")
	require.NoError(t, err)
	assert.Equal(t, "28", remaining)

	rows, err := f.GetRows(CVsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, cvHeaders, rows[0])
	assert.Equal(t, "alice.pdf", rows[1][0])
	assert.Equal(t, "2.0", rows[1][2])
	assert.Equal(t, "backend, senior", rows[1][4])
	assert.Equal(t, "failed", rows[2][1])

	ok, target, err := f.GetCellHyperLink(CVsSheet, "F2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://cdn/alice.pdf", target)
}

func TestServiceExportAppliesCriteria(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	repo := memory.NewCVRepository()
	require.NoError(t, repo.Create(ctx, cv.CV{OwnerID: owner, FileName: "go-dev.pdf"}))
	require.NoError(t, repo.Create(ctx, cv.CV{OwnerID: owner, FileName: "designer.pdf"}))
	require.NoError(t, repo.Create(ctx, cv.CV{OwnerID: uuid.New(), FileName: "go-other.pdf"}))

	svc := NewService(cv.NewLibraryService(repo, nil, repo), cv.NewDashboardService(repo, repo, cv.DefaultMaxCVs))
	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, owner, cv.Criteria{Q: "go"}, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(CVsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "go-dev.pdf", rows[1][0])

	total, err := f.GetCellValue(SummarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "2", total)
}
