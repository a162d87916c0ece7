package pgsql

import (
	portsrepo "github.com/SscSPs/travel_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:          newPgxAccountRepository(dbPool),
		JournalRepo:          newPgxJournalRepository(dbPool),
		LedgerRepo:           newPgxLedgerRepository(dbPool),
		FiscalRepo:           newPgxFiscalRepository(dbPool),
		AuditRepo:            newPgxAuditRepository(dbPool),
		TaxRepo:              newPgxTaxRepository(dbPool),
		BankRepo:             newPgxBankRepository(dbPool),
		TenantRepo:           newPgxTenantRepository(dbPool),
		IntegrationTokenRepo: newPgxIntegrationTokenRepository(dbPool),
	}
}
