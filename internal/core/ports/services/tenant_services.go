package services

import (
	"context"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/SscSPs/travel_ledger/internal/dto"
)

// TenantReaderSvc defines read operations for tenant data
type TenantReaderSvc interface {
	// GetTenant retrieves a tenant the user belongs to.
	GetTenant(ctx context.Context, tenantID, userID string) (*domain.Tenant, error)

	// ListUserTenants retrieves every tenant a user belongs to.
	ListUserTenants(ctx context.Context, userID string) ([]domain.Tenant, error)

	// ListMembers retrieves all members of a tenant.
	ListMembers(ctx context.Context, tenantID, userID string) ([]domain.TenantMember, error)
}

// TenantWriterSvc defines write operations for tenant data
type TenantWriterSvc interface {
	// CreateTenant persists a new tenant; the creator becomes its ADMIN.
	CreateTenant(ctx context.Context, req dto.CreateTenantRequest, userID string) (*domain.Tenant, error)

	// AddMember adds or updates a member. Only ADMINs may do this.
	AddMember(ctx context.Context, tenantID string, req dto.AddMemberRequest, userID string) error
}

// BranchSvc defines branch operations
type BranchSvc interface {
	CreateBranch(ctx context.Context, tenantID string, req dto.CreateBranchRequest, userID string) (*domain.Branch, error)
	ListBranches(ctx context.Context, tenantID, userID string) ([]domain.Branch, error)

	// FindBranch looks a branch up without authorization; used by event handlers.
	FindBranch(ctx context.Context, tenantID, branchID string) (*domain.Branch, error)
}

// TenantAuthorizerSvc defines operations for tenant authorization
type TenantAuthorizerSvc interface {
	// AuthorizeUserAction checks that a user holds at least requiredRole in a tenant.
	AuthorizeUserAction(ctx context.Context, userID, tenantID string, requiredRole domain.TenantRole) error
}

// TenantSvcFacade combines all tenant-related service interfaces
type TenantSvcFacade interface {
	TenantReaderSvc
	TenantWriterSvc
	BranchSvc
	TenantAuthorizerSvc
}

// IntegrationTokenSvc manages the tokens operational modules push events with.
type IntegrationTokenSvc interface {
	// CreateToken returns the plaintext token; it is never retrievable again.
	CreateToken(ctx context.Context, tenantID string, req dto.CreateIntegrationTokenRequest, userID string) (string, *domain.IntegrationToken, error)
	ListTokens(ctx context.Context, tenantID, userID string) ([]domain.IntegrationToken, error)
	RevokeToken(ctx context.Context, tenantID, tokenID, userID string) error

	// ValidateToken resolves a plaintext token, rejecting revoked and expired ones.
	ValidateToken(ctx context.Context, raw string) (*domain.IntegrationToken, error)
}

// SetupSvc prepares a tenant with the default chart and tax codes.
type SetupSvc interface {
	SetupTenant(ctx context.Context, tenantID, userID string) (*dto.SetupResult, error)
}
