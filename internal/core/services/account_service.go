package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/SscSPs/travel_ledger/internal/platform/cache"
	"github.com/SscSPs/travel_ledger/internal/seed"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	codeCache   *cache.InMemory[domain.Account]
}

// AccountServiceOption configures the account service
type AccountServiceOption func(*accountService)

// WithAccountCache caches code lookups made through ResolveAccountByCode.
func WithAccountCache(c *cache.InMemory[domain.Account]) AccountServiceOption {
	return func(s *accountService) {
		s.codeCache = c
	}
}

// NewAccountService creates a new account service with the given options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, authorizer portssvc.TenantAuthorizerSvc, opts ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: repo}
	svc.TenantAuthorizer = authorizer
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func codeCacheKey(tenantID, code string) string {
	return tenantID + "/" + code
}

// CreateAccount validates and persists a new account
func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	var parent *domain.Account
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		p, err := s.accountRepo.FindAccountByID(ctx, tenantID, *req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s not found", apperrors.ErrValidation, *req.ParentAccountID)
			}
			s.LogError(ctx, err, "Failed to load parent account", slog.String("parent_account_id", *req.ParentAccountID))
			return nil, err
		}
		parent = p
	}

	account, err := domain.NewAccount(domain.NewAccountParams{
		AccountID:    uuid.NewString(),
		TenantID:     tenantID,
		Code:         req.Code,
		Name:         req.Name,
		AccountType:  req.AccountType,
		Parent:       parent,
		IsHeader:     req.IsHeader,
		CurrencyCode: strings.ToUpper(req.CurrencyCode),
		Description:  req.Description,
		CreatedBy:    userID,
		Now:          time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.SaveAccount(ctx, *account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, account.Code)
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("code", account.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code),
		slog.String("tenant_id", tenantID))
	return account, nil
}

// GetAccountByID retrieves a single account
func (s *accountService) GetAccountByID(ctx context.Context, tenantID, accountID, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountByCode retrieves an account by its chart code
func (s *accountService) GetAccountByCode(ctx context.Context, tenantID, code, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.accountRepo.FindAccountByCode(ctx, tenantID, code)
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID
func (s *accountService) GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	return s.accountRepo.FindAccountsByIDs(ctx, tenantID, accountIDs)
}

// ListAccounts retrieves the chart ordered by code
func (s *accountService) ListAccounts(ctx context.Context, tenantID, userID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	var accountType *domain.AccountType
	if params.AccountType != "" {
		t := domain.AccountType(params.AccountType)
		accountType = &t
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, accountType, params.IncludeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("tenant_id", tenantID))
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount applies editable fields; code and type only while unlocked
func (s *accountService) UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}
	oldCode := account.Code

	if err := account.ChangeStructure(req.Code, req.AccountType); err != nil {
		return nil, err
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
		}
		account.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	s.evict(tenantID, oldCode, account.Code)
	return account, nil
}

// DeactivateAccount marks an account as inactive
func (s *accountService) DeactivateAccount(ctx context.Context, tenantID, accountID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleAdmin); err != nil {
		return err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return err
	}
	if err := account.Deactivate(); err != nil {
		return err
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}
	s.evict(tenantID, account.Code)
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}

// SeedChartOfAccounts creates the default chart, skipping codes the tenant already has
func (s *accountService) SeedChartOfAccounts(ctx context.Context, tenantID, userID string) (*dto.SeedResult, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	defs, err := seed.Chart()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	existing, err := s.accountRepo.ListAccounts(ctx, tenantID, nil, true)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]*domain.Account, len(existing)+len(defs))
	for i := range existing {
		byCode[existing[i].Code] = &existing[i]
	}

	result := &dto.SeedResult{Created: []string{}, Skipped: []string{}}
	now := time.Now().UTC()
	for _, def := range defs {
		if _, ok := byCode[def.Code]; ok {
			result.Skipped = append(result.Skipped, def.Code)
			continue
		}
		var parent *domain.Account
		if def.Parent != "" {
			parent = byCode[def.Parent]
		}
		account, err := domain.NewAccount(domain.NewAccountParams{
			AccountID:       uuid.NewString(),
			TenantID:        tenantID,
			Code:            def.Code,
			Name:            def.Name,
			AccountType:     def.Type,
			Parent:          parent,
			IsHeader:        def.Header,
			IsSystemAccount: def.System,
			Description:     def.Description,
			CreatedBy:       userID,
			Now:             now,
		})
		if err != nil {
			return result, fmt.Errorf("seed account %s: %w", def.Code, err)
		}
		if err := s.accountRepo.SaveAccount(ctx, *account); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				result.Skipped = append(result.Skipped, def.Code)
				continue
			}
			s.LogError(ctx, err, "Failed to seed account", slog.String("code", def.Code))
			return result, err
		}
		byCode[def.Code] = account
		result.Created = append(result.Created, def.Code)
	}

	s.LogInfo(ctx, "Chart of accounts seeded",
		slog.String("tenant_id", tenantID),
		slog.Int("created", len(result.Created)),
		slog.Int("skipped", len(result.Skipped)))
	return result, nil
}

// ResolveAccountByCode looks an account up by code, serving from the cache when configured
func (s *accountService) ResolveAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	key := codeCacheKey(tenantID, code)
	if s.codeCache != nil {
		if acc, ok := s.codeCache.Get(key); ok {
			return &acc, nil
		}
	}
	account, err := s.accountRepo.FindAccountByCode(ctx, tenantID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s is not in the chart of accounts", apperrors.ErrValidation, code)
		}
		return nil, err
	}
	if s.codeCache != nil {
		s.codeCache.Set(key, *account)
	}
	return account, nil
}

func (s *accountService) evict(tenantID string, codes ...string) {
	if s.codeCache == nil {
		return
	}
	for _, c := range codes {
		s.codeCache.Delete(codeCacheKey(tenantID, c))
	}
}
