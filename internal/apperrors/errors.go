package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrNegativeAmount is returned when a ledger entry carries a negative monetary field.
var ErrNegativeAmount = fmt.Errorf("%w: negative amount", ErrValidation)

// ErrInvalidDate is returned when a ledger entry has no valid calendar date.
var ErrInvalidDate = fmt.Errorf("%w: invalid date", ErrValidation)

// Ingestion failures. These are the kinds carried by IngestError.
var (
	ErrUnparsableFile = errors.New("unparsable file")
	ErrMissingColumns = errors.New("missing required columns")
	ErrInvalidCell    = errors.New("invalid cell value")
)

// IngestError describes why an uploaded workbook was rejected.
// Row is 1-based as shown by spreadsheet tools; zero when the cause is not tied to a row.
type IngestError struct {
	Kind   error
	Row    int
	Column string
	Detail string
}

func (e *IngestError) Error() string {
	msg := e.Kind.Error()
	if e.Row > 0 {
		msg = fmt.Sprintf("%s at row %d", msg, e.Row)
	}
	if e.Column != "" {
		msg = fmt.Sprintf("%s, column %q", msg, e.Column)
	}
	if e.Detail != "" {
		msg = msg + ": " + e.Detail
	}
	return msg
}

func (e *IngestError) Unwrap() error {
	return e.Kind
}

// NewIngestError builds an IngestError of the given kind.
func NewIngestError(kind error, row int, column, detail string) *IngestError {
	return &IngestError{Kind: kind, Row: row, Column: column, Detail: detail}
}

// AppError wraps infrastructure failures with an HTTP-ish status code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
