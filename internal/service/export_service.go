package service

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/teacher-admin-api/internal/dto"
	"github.com/noah-isme/teacher-admin-api/internal/models"
	appErrors "github.com/noah-isme/teacher-admin-api/pkg/errors"
	"github.com/noah-isme/teacher-admin-api/pkg/export"
)

// ExportFormat selects the rendered document type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

type renderer interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
	Extension() string
}

type weekViewSource interface {
	Get(id string) (*models.Teacher, error)
	WeekView(teacherID string, anchor time.Time, offset int) (dto.WeekView, error)
}

// ExportedDocument is a rendered schedule ready to be streamed.
type ExportedDocument struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders a teacher's week grid as a downloadable table.
type ExportService struct {
	source    weekViewSource
	renderers map[ExportFormat]renderer
	logger    *zap.Logger
}

// NewExportService constructs an ExportService. Nil renderers fall back to the defaults.
func NewExportService(source weekViewSource, csv, pdf renderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter(export.WithLandscape(), export.WithFirstColumnWidth(18))
	}
	return &ExportService{
		source:    source,
		renderers: map[ExportFormat]renderer{ExportFormatCSV: csv, ExportFormatPDF: pdf},
		logger:    logger,
	}
}

// ExportWeek renders the week of anchor shifted by offset for teacherID.
func (s *ExportService) ExportWeek(teacherID string, format ExportFormat, anchor time.Time, offset int) (*ExportedDocument, error) {
	r, ok := s.renderers[ExportFormat(strings.ToLower(string(format)))]
	if !ok {
		return nil, appErrors.Validation("unsupported export format", map[string]string{"format": "Format must be one of: csv, pdf"})
	}
	teacher, err := s.source.Get(teacherID)
	if err != nil {
		return nil, err
	}
	view, err := s.source.WeekView(teacherID, anchor, offset)
	if err != nil {
		return nil, err
	}

	payload, err := r.Render(WeekDataset(teacher.Name, view))
	if err != nil {
		s.logger.Error("failed to render schedule export", zap.String("teacher_id", teacherID), zap.String("format", r.Extension()), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return &ExportedDocument{
		Filename:    buildFilename(teacher.Name, view.WeekStart, r.Extension()),
		ContentType: r.ContentType(),
		Payload:     payload,
	}, nil
}

// WeekDataset flattens a week view into rows of times and columns of days.
func WeekDataset(teacherName string, view dto.WeekView) export.Dataset {
	headers := make([]string, 0, len(view.Days)+1)
	headers = append(headers, "Time")
	for _, d := range view.Days {
		headers = append(headers, fmt.Sprintf("%s %s", d.ShortName, d.Date))
	}

	rows := make([][]string, 0, len(view.Rows))
	for _, row := range view.Rows {
		record := make([]string, 0, len(row.Cells)+1)
		record = append(record, row.Time)
		for _, cell := range row.Cells {
			record = append(record, cellText(cell))
		}
		rows = append(rows, record)
	}

	return export.Dataset{
		Title:    fmt.Sprintf("Weekly schedule: %s", teacherName),
		Subtitle: fmt.Sprintf("%s to %s", view.WeekStart, view.WeekEnd),
		Headers:  headers,
		Rows:     rows,
	}
}

func cellText(cell dto.GridCell) string {
	if cell.Status == dto.CellEmpty {
		return ""
	}
	parts := []string{cell.Status}
	for _, extra := range []string{cell.StudentName, cell.Subject} {
		if extra != "" {
			parts = append(parts, extra)
		}
	}
	return strings.Join(parts, " / ")
}

func buildFilename(teacherName, weekStart, ext string) string {
	return fmt.Sprintf("schedule_%s_%s.%s", sanitizeFilename(teacherName), weekStart, ext)
}

const maxFilenameRunes = 60

func sanitizeFilename(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return "teacher"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "\"", "")
	result := replacer.Replace(raw)
	if runes := []rune(result); len(runes) > maxFilenameRunes {
		return string(runes[:maxFilenameRunes])
	}
	return result
}
