// Package export renders an owner's CV library as an Excel workbook.
package export

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/artem13815/cvdesk/pkg/cv"
)

const (
	SummarySheet = "Summary"
	CVsSheet     = "CVs"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Service exports the filtered library of one owner.
type Service struct {
	library   cv.LibraryUseCase
	dashboard cv.DashboardUseCase
	now       func() time.Time
}

func NewService(library cv.LibraryUseCase, dashboard cv.DashboardUseCase) *Service {
	return &Service{library: library, dashboard: dashboard, now: time.Now}
}

// Export writes an XLSX with the dashboard figures and every CV matching c.
func (s *Service) Export(ctx context.Context, ownerID uuid.UUID, c cv.Criteria, w io.Writer) error {
	stats, err := s.dashboard.Stats(ctx, ownerID)
	if err != nil {
		return err
	}
	page, err := s.library.Search(ctx, ownerID, c, 0, 0)
	if err != nil {
		return err
	}
	return Write(w, stats, page.Items, s.now().UTC())
}

// Write renders the workbook into w.
func Write(w io.Writer, stats cv.Stats, items []cv.CV, generatedAt time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(CVsSheet); err != nil {
		return err
	}
	if err := writeSummary(f, stats, generatedAt); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeCVs(f, items); err != nil {
		return fmt.Errorf("failed to create cvs sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, stats cv.Stats, generatedAt time.Time) error {
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	rows := [][]any{
		{"CV Library Summary", ""},
		{"Generated", generatedAt.Format(time.RFC3339)},
		{"Total CVs", stats.TotalCVs},
		{"Processed CVs", stats.ProcessedCVs},
		{"Distinct tags", stats.TotalTags},
		{"Remaining uploads", stats.RemainingUploads},
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
		style := labelStyle
		if i == 0 {
			style = titleStyle
		}
		if err := f.SetCellStyle(SummarySheet, cell, cell, style); err != nil {
			return err
		}
	}
	return f.SetColWidth(SummarySheet, "A", "B", 24)
}

var cvHeaders = []string{"File name", "Status", "Size (KB)", "Uploaded at", "Tags", "Link"}

func writeCVs(f *excelize.File, items []cv.CV) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	failedStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(CVsSheet, "A1", &cvHeaders); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(cvHeaders), 1)
	if err := f.SetCellStyle(CVsSheet, "A1", last, headerStyle); err != nil {
		return err
	}
	for i, item := range items {
		row := i + 2
		values := []any{
			item.FileName,
			string(item.Status),
			fmt.Sprintf("%.1f", float64(item.Size)/1024),
			item.UploadedAt.UTC().Format("2006-01-02 15:04"),
			strings.Join(item.Tags, ", "),
			item.PublicURL,
		}
		start := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(CVsSheet, start, &values); err != nil {
			return err
		}
		if item.PublicURL != "" {
			link := fmt.Sprintf("F%d", row)
			if err := f.SetCellHyperLink(CVsSheet, link, item.PublicURL, "External"); err != nil {
				return err
			}
		}
		if item.Status == cv.StatusFailed {
			end := fmt.Sprintf("F%d", row)
			if err := f.SetCellStyle(CVsSheet, start, end, failedStyle); err != nil {
				return err
			}
		}
	}
	if err := f.SetColWidth(CVsSheet, "A", "A", 36); err != nil {
		return err
	}
	return f.SetColWidth(CVsSheet, "B", "F", 18)
}
