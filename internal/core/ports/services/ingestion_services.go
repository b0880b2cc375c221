package services

import (
	"context"

	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
)

// IngestionSvcFacade loads daily workbooks into the ledger
type IngestionSvcFacade interface {
	Ingest(ctx context.Context, req domain.IngestRequest) (*domain.IngestResult, error)
}
