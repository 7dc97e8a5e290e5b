package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
	appErrors "github.com/ailyedu2030/cet4-gateway/pkg/errors"
	"github.com/ailyedu2030/cet4-gateway/pkg/export"
)

// Report export formats.
const (
	ReportFormatCSV = "csv"
	ReportFormatPDF = "pdf"
)

// ReportService renders classroom-usage exports for the admin console.
type ReportService struct {
	classrooms *ClassroomService
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	logger     *zap.Logger
}

// NewReportService instantiates ReportService.
func NewReportService(classrooms *ClassroomService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		classrooms: classrooms,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		logger:     logger,
	}
}

// ExportedReport is a rendered document plus its download metadata.
type ExportedReport struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportClassroomUsage renders the full classroom inventory with its
// availability status as CSV or PDF.
func (s *ReportService) ExportClassroomUsage(ctx context.Context, format string) (*ExportedReport, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != ReportFormatCSV && format != ReportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format: %s", format))
	}

	dataset, err := s.collectUsage(ctx)
	if err != nil {
		return nil, err
	}

	stamp := time.Now().Format("20060102")
	switch format {
	case ReportFormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return &ExportedReport{
			FileName:    fmt.Sprintf("classroom-usage-%s.csv", stamp),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	default:
		content, err := s.pdf.Render(dataset, "Classroom Usage Report")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return &ExportedReport{
			FileName:    fmt.Sprintf("classroom-usage-%s.pdf", stamp),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	}
}

func (s *ReportService) collectUsage(ctx context.Context) (export.Dataset, error) {
	dataset := export.Dataset{
		Headers: []string{"ID", "Name", "Building", "Capacity", "Available"},
	}

	const pageSize = 100
	for page := 1; ; page++ {
		items, pagination, _, err := s.classrooms.List(ctx, models.ClassroomFilter{Page: page, Size: pageSize})
		if err != nil {
			return export.Dataset{}, err
		}
		for _, room := range items {
			dataset.Rows = append(dataset.Rows, map[string]string{
				"ID":        strconv.FormatInt(room.ID, 10),
				"Name":      room.Name,
				"Building":  room.BuildingName,
				"Capacity":  strconv.Itoa(room.Capacity),
				"Available": strconv.FormatBool(room.IsAvailable),
			})
		}
		if pagination == nil || page*pageSize >= pagination.TotalCount || len(items) == 0 {
			break
		}
	}
	return dataset, nil
}
