package services

import (
	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/platform/cache"
	"github.com/SscSPs/travel_ledger/internal/platform/config"
	"github.com/SscSPs/travel_ledger/internal/platform/observability"
	"github.com/SscSPs/travel_ledger/internal/platform/resilience"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// metrics may be nil.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, metrics *observability.Metrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Tenant service first: it is the authorizer every other service depends on
	container.Tenant = NewTenantService(repos.TenantRepo)
	authorizer := container.Tenant.(portssvc.TenantAuthorizerSvc)

	container.Account = NewAccountService(
		repos.AccountRepo,
		authorizer,
		WithAccountCache(cache.New[domain.Account](cfg.AccountCacheTTL)),
	)

	fiscalOpts := []FiscalServiceOption{WithFiscalMetrics(metrics)}
	if cfg.SoftCloseRequiresApprover {
		fiscalOpts = append(fiscalOpts, WithSoftClosePolicy(ApproverSoftClosePolicy(authorizer)))
	}
	container.Fiscal = NewFiscalService(repos.FiscalRepo, repos.LedgerRepo, repos.AccountRepo, authorizer, fiscalOpts...)

	container.Journal = NewJournalService(
		repos.JournalRepo,
		repos.AccountRepo,
		repos.AuditRepo,
		container.Fiscal,
		authorizer,
		WithJournalMetrics(metrics),
	)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.AccountRepo, authorizer)
	container.Tax = NewTaxService(repos.TaxRepo, repos.AccountRepo, authorizer)
	container.Bank = NewBankService(repos.BankRepo, repos.AccountRepo, authorizer, WithBankMetrics(metrics))

	container.Events = NewEventService(
		container.Journal,
		container.Account,
		container.Tax,
		container.Tenant,
		WithEventMetrics(metrics),
		WithEventRetry(resilience.Config{MaxRetries: cfg.PostRetryMax, InitialBackoff: cfg.PostRetryBackoff}),
	)

	container.IntegrationToken = NewIntegrationTokenService(repos.IntegrationTokenRepo, authorizer)
	container.Setup = NewSetupService(container.Account, container.Tax, authorizer)

	return container
}
