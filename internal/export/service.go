package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/lecture-processor/internal/entity"
	"github.com/joseph-ayodele/lecture-processor/internal/repository"
	"github.com/joseph-ayodele/lecture-processor/internal/textutil"
)

// SheetName is the worksheet holding the lecture rows.
const SheetName = "Lectures"

// listAllLimit caps the unfiltered export.
const listAllLimit = 10000

// Headers are the export columns in order.
var Headers = []string{
	"Course",
	"Lecture",
	"Title",
	"Difficulty",
	"File",
	"Type",
	"Characters",
	"Tables",
	"Formulas",
	"Degraded",
	"Processed At",
}

// Service produces XLSX bytes for lecture exports.
type Service struct {
	lectures repository.LectureRepository
	logger   *slog.Logger
}

func NewService(lectures repository.LectureRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{lectures: lectures, logger: logger}
}

// ExportLecturesXLSX returns a workbook for one course, or for every stored
// lecture when courseID is empty.
func (s *Service) ExportLecturesXLSX(ctx context.Context, courseID string) ([]byte, error) {
	start := time.Now()
	courseID = strings.TrimSpace(courseID)

	var (
		lecs []*entity.Lecture
		err  error
	)
	if courseID != "" {
		lecs, err = s.lectures.ListByCourse(ctx, courseID)
	} else {
		lecs, err = s.lectures.List(ctx, listAllLimit, 0)
	}
	if err != nil {
		return nil, fmt.Errorf("query lectures: %w", err)
	}

	out, err := WriteLectures(lecs)
	if err != nil {
		return nil, err
	}
	s.logger.Info("export.xlsx.ok",
		"course_id", courseID,
		"rows", len(lecs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// WriteLectures renders lecs into workbook bytes.
func WriteLectures(lecs []*entity.Lecture) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// rename the default sheet so the workbook has exactly one
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	for i, h := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, h)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(SheetName, 1, 1, style)
	}

	for i, l := range lecs {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(SheetName, cell, v)
		}
		write(1, l.CourseID)
		write(2, l.LectureID)
		write(3, textutil.Truncate(l.Title, 140))
		write(4, string(l.Difficulty))
		write(5, l.FileName)
		write(6, l.FileType)
		write(7, l.Characters)
		write(8, l.Tables)
		write(9, l.Formulas)
		write(10, l.Degraded)
		if !l.UpdatedAt.IsZero() {
			write(11, l.UpdatedAt.UTC().Format(time.RFC3339))
		}
	}

	_ = f.SetColWidth(SheetName, "A", "B", 14)
	_ = f.SetColWidth(SheetName, "C", "C", 48)
	_ = f.SetColWidth(SheetName, "D", "D", 12)
	_ = f.SetColWidth(SheetName, "E", "E", 36)
	_ = f.SetColWidth(SheetName, "F", "J", 11)
	_ = f.SetColWidth(SheetName, "K", "K", 22)
	_ = f.AutoFilter(SheetName, fmt.Sprintf("A1:K%d", len(lecs)+1), nil)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
