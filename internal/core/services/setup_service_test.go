package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/SscSPs/travel_ledger/internal/core/services"
	"github.com/SscSPs/travel_ledger/internal/dto"
)

type mockAccountSeeder struct {
	mock.Mock
}

func (m *mockAccountSeeder) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	panic("not used")
}

func (m *mockAccountSeeder) UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	panic("not used")
}

func (m *mockAccountSeeder) DeactivateAccount(ctx context.Context, tenantID, accountID, userID string) error {
	panic("not used")
}

func (m *mockAccountSeeder) SeedChartOfAccounts(ctx context.Context, tenantID, userID string) (*dto.SeedResult, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SeedResult), args.Error(1)
}

type mockTaxSeeder struct {
	mock.Mock
}

func (m *mockTaxSeeder) CreateTaxCode(ctx context.Context, tenantID string, req dto.CreateTaxCodeRequest, userID string) (*domain.TaxCode, error) {
	panic("not used")
}

func (m *mockTaxSeeder) GetTaxCode(ctx context.Context, tenantID, taxCodeRef, userID string) (*domain.TaxCode, error) {
	panic("not used")
}

func (m *mockTaxSeeder) ListTaxCodes(ctx context.Context, tenantID, userID string, params dto.ListTaxCodesParams) ([]domain.TaxCode, error) {
	panic("not used")
}

func (m *mockTaxSeeder) SeedTaxCodes(ctx context.Context, tenantID, userID string) (*dto.SeedResult, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SeedResult), args.Error(1)
}

func TestSetupTenant(t *testing.T) {
	ctx := context.Background()
	accounts := new(mockAccountSeeder)
	taxes := new(mockTaxSeeder)
	authorizer := new(MockAuthorizer)
	svc := services.NewSetupService(accounts, taxes, authorizer)

	authorizer.On("AuthorizeUserAction", ctx, "admin", "t1", domain.RoleAdmin).Return(nil)
	accounts.On("SeedChartOfAccounts", ctx, "t1", "admin").Return(&dto.SeedResult{Created: []string{"1101", "1102"}, Skipped: []string{}}, nil).Once()
	taxes.On("SeedTaxCodes", ctx, "t1", "admin").Return(&dto.SeedResult{Created: []string{"GST18"}, Skipped: []string{"GST5"}}, nil).Once()

	result, err := svc.SetupTenant(ctx, "t1", "admin")

	require.NoError(t, err)
	assert.Equal(t, []string{"1101", "1102"}, result.Accounts.Created)
	assert.Equal(t, []string{"GST5"}, result.TaxCodes.Skipped)
	mock.AssertExpectationsForObjects(t, accounts, taxes)
}

func TestSetupTenant_StopsWhenChartFails(t *testing.T) {
	ctx := context.Background()
	accounts := new(mockAccountSeeder)
	taxes := new(mockTaxSeeder)
	authorizer := new(MockAuthorizer)
	svc := services.NewSetupService(accounts, taxes, authorizer)

	boom := errors.New("db down")
	authorizer.On("AuthorizeUserAction", ctx, "admin", "t1", domain.RoleAdmin).Return(nil)
	accounts.On("SeedChartOfAccounts", ctx, "t1", "admin").Return(nil, boom).Once()

	_, err := svc.SetupTenant(ctx, "t1", "admin")

	assert.ErrorIs(t, err, boom)
	taxes.AssertNotCalled(t, "SeedTaxCodes", mock.Anything, mock.Anything, mock.Anything)
}
