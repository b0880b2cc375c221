package ports

import "github.com/SscSPs/credit_tracking_app/internal/core/domain"

// WorkbookParser turns uploaded spreadsheet bytes into normalized rows.
// Failures are *apperrors.IngestError values.
type WorkbookParser interface {
	Parse(fileName string, content []byte) (*domain.ParsedWorkbook, error)
}
