package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eserbisyo/brgy-docs-api/internal/dto"
	"github.com/eserbisyo/brgy-docs-api/pkg/export"
	appErrors "github.com/eserbisyo/brgy-docs-api/pkg/errors"
)

type queueLister interface {
	ListAll(ctx context.Context, barangay string) ([]dto.RequestSummary, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type exportArchiver interface {
	Save(filename string, data []byte) (string, error)
}

// ExportConfig tunes export rendering.
type ExportConfig struct {
	MaxRows  int
	PDFTitle string
}

// ExportService renders the aggregated request queue as CSV or PDF.
type ExportService struct {
	queue   queueLister
	csv     csvRenderer
	pdf     pdfRenderer
	archive exportArchiver
	cfg     ExportConfig
	logger  *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(queue queueLister, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = 5000
	}
	if cfg.PDFTitle == "" {
		cfg.PDFTitle = "Document Request Queue"
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{queue: queue, csv: csv, pdf: pdf, cfg: cfg, logger: logger}
}

// WithArchive keeps a copy of every rendered export in the given store.
func (s *ExportService) WithArchive(archive exportArchiver) *ExportService {
	s.archive = archive
	return s
}

// ExportResult carries the rendered payload and response metadata.
type ExportResult struct {
	Payload     []byte
	ContentType string
	Filename    string
}

var exportHeaders = []string{"Type", "Resident", "Status", "Purpose", "Requested", "Contact", "Email"}

// Export renders the barangay's queue in the requested format.
func (s *ExportService) Export(ctx context.Context, barangay, format string) (*ExportResult, error) {
	summaries, err := s.queue.ListAll(ctx, barangay)
	if err != nil {
		return nil, err
	}
	if len(summaries) > s.cfg.MaxRows {
		summaries = summaries[:s.cfg.MaxRows]
	}

	dataset := buildQueueDataset(summaries)
	stamp := time.Now().UTC().Format("2006-01-02")

	var result *ExportResult
	switch strings.ToLower(format) {
	case "csv", "":
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		result = &ExportResult{
			Payload:     payload,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("document-requests-%s.csv", stamp),
		}
	case "pdf":
		title := fmt.Sprintf("%s - %s", s.cfg.PDFTitle, barangay)
		payload, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		result = &ExportResult{
			Payload:     payload,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("document-requests-%s.pdf", stamp),
		}
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	if s.archive != nil {
		if _, err := s.archive.Save(result.Filename, result.Payload); err != nil {
			s.logger.Warn("export archive write failed", zap.String("filename", result.Filename), zap.Error(err))
		}
	}

	return result, nil
}

func buildQueueDataset(summaries []dto.RequestSummary) export.Dataset {
	rows := make([]map[string]string, 0, len(summaries))
	for _, summary := range summaries {
		rows = append(rows, map[string]string{
			"Type":      summary.Type,
			"Resident":  summary.ResidentName,
			"Status":    summary.Status,
			"Purpose":   summary.Purpose,
			"Requested": summary.RequestDate.Format("2006-01-02 15:04"),
			"Contact":   summary.ContactNumber,
			"Email":     summary.Email,
		})
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}
}
