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
	"github.com/google/uuid"
)

// tenantService implements the TenantSvcFacade interface
type tenantService struct {
	BaseService
	tenantRepo portsrepo.TenantRepositoryFacade
}

// NewTenantService creates a new tenant service
func NewTenantService(tenantRepo portsrepo.TenantRepositoryFacade) portssvc.TenantSvcFacade {
	svc := &tenantService{tenantRepo: tenantRepo}
	svc.TenantAuthorizer = svc
	return svc
}

var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

// GetTenant retrieves a tenant the user belongs to
func (s *tenantService) GetTenant(ctx context.Context, tenantID, userID string) (*domain.Tenant, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find tenant by ID", slog.String("tenant_id", tenantID))
		}
		return nil, err
	}
	return tenant, nil
}

// ListUserTenants retrieves all tenants a user belongs to
func (s *tenantService) ListUserTenants(ctx context.Context, userID string) ([]domain.Tenant, error) {
	tenants, err := s.tenantRepo.ListTenantsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tenants for user", slog.String("user_id", userID))
		return nil, err
	}
	if tenants == nil {
		return []domain.Tenant{}, nil
	}
	return tenants, nil
}

// ListMembers retrieves all members of a tenant
func (s *tenantService) ListMembers(ctx context.Context, tenantID, userID string) ([]domain.TenantMember, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	members, err := s.tenantRepo.ListMembers(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tenant members", slog.String("tenant_id", tenantID))
		return nil, err
	}
	return members, nil
}

// CreateTenant persists a tenant and makes the creator its ADMIN in one transaction
func (s *tenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest, userID string) (*domain.Tenant, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: tenant name is required", apperrors.ErrValidation)
	}
	startMonth := req.FiscalYearStartMonth
	if startMonth == 0 {
		startMonth = int(time.April)
	}
	if startMonth < 1 || startMonth > 12 {
		return nil, fmt.Errorf("%w: fiscal year start month must be between 1 and 12", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	tenant := domain.Tenant{
		TenantID:             uuid.NewString(),
		Name:                 strings.TrimSpace(req.Name),
		BaseCurrency:         strings.ToUpper(req.BaseCurrency),
		FiscalYearStartMonth: startMonth,
		IsActive:             true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	owner := domain.TenantMember{UserID: userID, TenantID: tenant.TenantID, Role: domain.RoleAdmin, JoinedAt: now}

	if err := s.tenantRepo.SaveTenant(ctx, tenant, owner); err != nil {
		s.LogError(ctx, err, "Failed to save tenant", slog.String("tenant_id", tenant.TenantID))
		return nil, err
	}

	s.LogInfo(ctx, "Tenant created successfully",
		slog.String("tenant_id", tenant.TenantID),
		slog.String("creator_id", userID))
	return &tenant, nil
}

// AddMember adds a user to a tenant with a specific role
func (s *tenantService) AddMember(ctx context.Context, tenantID string, req dto.AddMemberRequest, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleAdmin); err != nil {
		s.LogWarn(ctx, err, "User not authorized to add members to tenant",
			slog.String("adding_user_id", userID),
			slog.String("tenant_id", tenantID))
		return err
	}
	if !req.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}

	member := domain.TenantMember{
		UserID:   req.UserID,
		TenantID: tenantID,
		Role:     req.Role,
		JoinedAt: time.Now().UTC(),
	}
	if err := s.tenantRepo.AddMember(ctx, member); err != nil {
		s.LogError(ctx, err, "Failed to add user to tenant",
			slog.String("target_user_id", req.UserID),
			slog.String("tenant_id", tenantID))
		return err
	}

	s.LogInfo(ctx, "User added to tenant successfully",
		slog.String("target_user_id", req.UserID),
		slog.String("tenant_id", tenantID),
		slog.String("role", string(req.Role)))
	return nil
}

// CreateBranch registers a branch of the tenant
func (s *tenantService) CreateBranch(ctx context.Context, tenantID string, req dto.CreateBranchRequest, userID string) (*domain.Branch, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" || strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: branch code and name are required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	branch := domain.Branch{
		BranchID:  uuid.NewString(),
		TenantID:  tenantID,
		Code:      code,
		Name:      strings.TrimSpace(req.Name),
		StateCode: strings.ToUpper(strings.TrimSpace(req.StateCode)),
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.tenantRepo.SaveBranch(ctx, branch); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save branch", slog.String("tenant_id", tenantID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Branch created", slog.String("tenant_id", tenantID), slog.String("branch_id", branch.BranchID))
	return &branch, nil
}

// ListBranches lists the branches of a tenant
func (s *tenantService) ListBranches(ctx context.Context, tenantID, userID string) ([]domain.Branch, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.tenantRepo.ListBranches(ctx, tenantID)
}

// FindBranch looks a branch up without authorization
func (s *tenantService) FindBranch(ctx context.Context, tenantID, branchID string) (*domain.Branch, error) {
	return s.tenantRepo.FindBranchByID(ctx, tenantID, branchID)
}

// AuthorizeUserAction checks if a user has required permissions for a tenant
func (s *tenantService) AuthorizeUserAction(ctx context.Context, userID, tenantID string, requiredRole domain.TenantRole) error {
	membership, err := s.tenantRepo.FindMembership(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of tenant",
				slog.String("user_id", userID),
				slog.String("tenant_id", tenantID))
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to find tenant membership",
			slog.String("user_id", userID),
			slog.String("tenant_id", tenantID))
		return err
	}

	if !membership.Role.Satisfies(requiredRole) {
		s.LogDebug(ctx, "User does not have required role",
			slog.String("user_id", userID),
			slog.String("tenant_id", tenantID),
			slog.String("user_role", string(membership.Role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.ErrForbidden
	}

	return nil
}
