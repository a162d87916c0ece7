package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/dto"
)

// setupService prepares a new tenant for posting.
type setupService struct {
	BaseService
	accounts portssvc.AccountWriterSvc
	taxes    portssvc.TaxCodeSvc
}

// NewSetupService creates a new setup service
func NewSetupService(accounts portssvc.AccountWriterSvc, taxes portssvc.TaxCodeSvc, authorizer portssvc.TenantAuthorizerSvc) portssvc.SetupSvc {
	svc := &setupService{accounts: accounts, taxes: taxes}
	svc.TenantAuthorizer = authorizer
	return svc
}

var _ portssvc.SetupSvc = (*setupService)(nil)

// SetupTenant seeds the default chart, then the tax codes linked to it.
// Both steps skip what already exists, so it is safe to run again.
func (s *setupService) SetupTenant(ctx context.Context, tenantID, userID string) (*dto.SetupResult, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	accounts, err := s.accounts.SeedChartOfAccounts(ctx, tenantID, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to seed chart of accounts", slog.String("tenant_id", tenantID))
		return nil, err
	}
	taxes, err := s.taxes.SeedTaxCodes(ctx, tenantID, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to seed tax codes", slog.String("tenant_id", tenantID))
		return nil, err
	}
	return &dto.SetupResult{Accounts: *accounts, TaxCodes: *taxes}, nil
}
