package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
)

// TenantReader defines read operations for tenant data
type TenantReader interface {
	// FindTenantByID retrieves a specific tenant by its ID.
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// ListTenantsByUserID retrieves all tenants a user belongs to.
	ListTenantsByUserID(ctx context.Context, userID string) ([]domain.Tenant, error)
}

// TenantWriter defines write operations for tenant data
type TenantWriter interface {
	// SaveTenant persists a new tenant together with its first member.
	SaveTenant(ctx context.Context, tenant domain.Tenant, owner domain.TenantMember) error
}

// TenantMembershipManager defines operations for managing tenant memberships
type TenantMembershipManager interface {
	// AddMember adds or updates a user's role in a tenant.
	AddMember(ctx context.Context, member domain.TenantMember) error

	// FindMembership retrieves the role of a user in a tenant.
	FindMembership(ctx context.Context, tenantID, userID string) (*domain.TenantMember, error)

	// ListMembers retrieves all members of a tenant.
	ListMembers(ctx context.Context, tenantID string) ([]domain.TenantMember, error)
}

// BranchRepository defines operations on branches
type BranchRepository interface {
	SaveBranch(ctx context.Context, branch domain.Branch) error
	FindBranchByID(ctx context.Context, tenantID, branchID string) (*domain.Branch, error)
	ListBranches(ctx context.Context, tenantID string) ([]domain.Branch, error)
}

// TenantRepositoryFacade combines all tenant-related repository interfaces
type TenantRepositoryFacade interface {
	TenantReader
	TenantWriter
	TenantMembershipManager
	BranchRepository
}

// IntegrationTokenRepository defines persistence of integration tokens
type IntegrationTokenRepository interface {
	Create(ctx context.Context, token domain.IntegrationToken) error
	FindByPrefix(ctx context.Context, prefix string) (*domain.IntegrationToken, error)
	ListByTenant(ctx context.Context, tenantID string) ([]domain.IntegrationToken, error)
	Revoke(ctx context.Context, tenantID, id string, now time.Time) error
	TouchLastUsed(ctx context.Context, id string, now time.Time) error
}
