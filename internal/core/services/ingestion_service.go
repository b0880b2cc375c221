package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	"github.com/SscSPs/credit_tracking_app/internal/core/ports"
	portssvc "github.com/SscSPs/credit_tracking_app/internal/core/ports/services"
	"github.com/SscSPs/credit_tracking_app/internal/platform/metrics"
	"github.com/oklog/ulid/v2"
)

// ingestionService implements the IngestionSvcFacade interface
type ingestionService struct {
	BaseService
	parser  ports.WorkbookParser
	ledger  portssvc.LedgerWriterSvc
	metrics *metrics.Metrics
	today   func() time.Time
	newID   func() string
}

// IngestionServiceOption is a functional option for configuring the ingestion service
type IngestionServiceOption func(*ingestionService)

// WithIngestionMetrics records row and upload counters.
func WithIngestionMetrics(m *metrics.Metrics) IngestionServiceOption {
	return func(s *ingestionService) {
		s.metrics = m
	}
}

// WithIngestionClock overrides the date used when neither the request nor the file carries one.
func WithIngestionClock(today func() time.Time) IngestionServiceOption {
	return func(s *ingestionService) {
		s.today = today
	}
}

// WithUploadIDGenerator overrides the ULID upload id generator.
func WithUploadIDGenerator(newID func() string) IngestionServiceOption {
	return func(s *ingestionService) {
		s.newID = newID
	}
}

// NewIngestionService creates a new ingestion service with the provided options
func NewIngestionService(parser ports.WorkbookParser, ledger portssvc.LedgerWriterSvc, options ...IngestionServiceOption) portssvc.IngestionSvcFacade {
	svc := &ingestionService{
		parser: parser,
		ledger: ledger,
		today:  domain.Today,
		newID:  func() string { return ulid.Make().String() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.IngestionSvcFacade = (*ingestionService)(nil)

// Ingest parses the workbook and writes its rows for a single date, all or nothing.
func (s *ingestionService) Ingest(ctx context.Context, req domain.IngestRequest) (*domain.IngestResult, error) {
	result, err := s.ingest(ctx, req)
	if err != nil {
		s.metrics.ObserveIngest(0, 0, err)
		s.LogWarn(ctx, "Workbook rejected", slog.String("file", req.FileName), slog.String("error", err.Error()))
		return nil, err
	}
	s.metrics.ObserveIngest(result.RowsProcessed, result.RowsSkipped, nil)
	return result, nil
}

func (s *ingestionService) ingest(ctx context.Context, req domain.IngestRequest) (*domain.IngestResult, error) {
	workbook, err := s.parser.Parse(req.FileName, req.Content)
	if err != nil {
		return nil, err
	}

	date, source := s.resolveDate(req, workbook)
	uploadID := s.newID()

	entries := make([]domain.TransactionEntry, 0, len(workbook.Rows))
	skipped := workbook.SkippedRows
	for _, row := range workbook.Rows {
		entry, ok := row.ToEntry(date, uploadID)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}

	var stored int
	if req.Replace {
		stored, err = s.ledger.ReplaceDay(ctx, date, entries)
	} else {
		stored, err = s.ledger.Append(ctx, entries)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to store workbook rows: %w", err)
	}

	s.LogInfo(ctx, "Workbook ingested",
		slog.String("file", req.FileName),
		slog.String("sheet", workbook.Sheet),
		slog.String("upload_id", uploadID),
		slog.String("date", domain.FormatDate(date)),
		slog.String("date_source", source),
		slog.Bool("replace", req.Replace),
		slog.Int("rows_processed", stored),
		slog.Int("rows_skipped", skipped))

	return &domain.IngestResult{
		RowsProcessed: stored,
		RowsSkipped:   skipped,
		Date:          date,
		UploadID:      uploadID,
		Replaced:      req.Replace,
	}, nil
}

// resolveDate picks the entry date: the request's, then the workbook header's, then today.
func (s *ingestionService) resolveDate(req domain.IngestRequest, workbook *domain.ParsedWorkbook) (time.Time, string) {
	switch {
	case req.Date != nil && !req.Date.IsZero():
		return domain.NormalizeDate(*req.Date), "request"
	case workbook.HeaderDate != nil:
		return domain.NormalizeDate(*workbook.HeaderDate), "workbook"
	default:
		return domain.NormalizeDate(s.today()), "today"
	}
}
