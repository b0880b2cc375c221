package services

import (
	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	"github.com/SscSPs/credit_tracking_app/internal/core/ports"
	portsrepo "github.com/SscSPs/credit_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/credit_tracking_app/internal/core/ports/services"
	"github.com/SscSPs/credit_tracking_app/internal/platform/config"
	"github.com/SscSPs/credit_tracking_app/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, parser ports.WorkbookParser, m *metrics.Metrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	ledgerOpts := []LedgerServiceOption{}
	reportingOpts := []ReportingServiceOption{WithReportingMetrics(m)}
	if repos.ReportCache != nil {
		ledgerOpts = append(ledgerOpts, WithLedgerReportCache(repos.ReportCache))
		reportingOpts = append(reportingOpts, WithReportCache(repos.ReportCache))
	}

	// The ledger service comes first; every other service reads or writes through it.
	container.Ledger = NewLedgerService(repos.LedgerRepo, ledgerOpts...)

	container.Credit = NewCreditService(container.Ledger, WithAgingThresholds(domain.AgingThresholds{
		WarningAfterDays: cfg.AgingWarningDays,
		OverdueAfterDays: cfg.AgingOverdueDays,
	}))
	container.Reporting = NewReportingService(container.Ledger, reportingOpts...)
	container.Ingestion = NewIngestionService(parser, container.Ledger, WithIngestionMetrics(m))

	return container
}
