package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTenantRepository struct {
	BaseRepository
}

// newPgxTenantRepository creates a new repository for tenants, members and branches.
func newPgxTenantRepository(pool *pgxpool.Pool) portsrepo.TenantRepositoryFacade {
	return &PgxTenantRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTenantRepository implements portsrepo.TenantRepositoryFacade
var _ portsrepo.TenantRepositoryFacade = (*PgxTenantRepository)(nil)

const fullTenantSelectQuery = `
SELECT
	t.tenant_id, t.name, t.base_currency, t.fiscal_year_start_month, t.is_active,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
FROM tenants t
`

const fullBranchSelectQuery = `
SELECT
	b.branch_id, b.tenant_id, b.code, b.name, b.state_code, b.is_active,
	b.created_at, b.created_by, b.last_updated_at, b.last_updated_by
FROM branches b
`

// getTenants runs the tenant select with the given filter.
func (r *PgxTenantRepository) getTenants(ctx context.Context, filterQuery string, args ...any) ([]domain.Tenant, error) {
	rows, err := r.Pool.Query(ctx, fullTenantSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, dbError(err, "failed to query tenants")
	}
	tenants, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Tenant])
	if err != nil {
		return nil, dbError(err, "failed to collect tenant rows")
	}
	return tenants, nil
}

func (r *PgxTenantRepository) getBranches(ctx context.Context, filterQuery string, args ...any) ([]domain.Branch, error) {
	rows, err := r.Pool.Query(ctx, fullBranchSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, dbError(err, "failed to query branches")
	}
	branches, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Branch])
	if err != nil {
		return nil, dbError(err, "failed to collect branch rows")
	}
	return branches, nil
}

// SaveTenant inserts the tenant and its first member together.
func (r *PgxTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant, owner domain.TenantMember) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO tenants (
				tenant_id, name, base_currency, fiscal_year_start_month, is_active,
				created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`
		_, err := tx.Exec(ctx, query,
			tenant.TenantID,
			tenant.Name,
			tenant.BaseCurrency,
			tenant.FiscalYearStartMonth,
			tenant.IsActive,
			tenant.CreatedAt,
			tenant.CreatedBy,
			tenant.LastUpdatedAt,
			tenant.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: tenant %s already exists", apperrors.ErrDuplicate, tenant.TenantID)
			}
			return dbError(err, "failed to insert tenant "+tenant.TenantID)
		}
		return upsertMember(ctx, tx, owner)
	})
}

// FindTenantByID retrieves a specific tenant by its ID.
func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	tenants, err := r.getTenants(ctx, "WHERE t.tenant_id = $1;", tenantID)
	if err != nil {
		return nil, err
	}
	if len(tenants) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &tenants[0], nil
}

// ListTenantsByUserID retrieves all tenants a user belongs to.
func (r *PgxTenantRepository) ListTenantsByUserID(ctx context.Context, userID string) ([]domain.Tenant, error) {
	return r.getTenants(ctx, `
		JOIN tenant_members m ON m.tenant_id = t.tenant_id
		WHERE m.user_id = $1 AND t.is_active
		ORDER BY t.name;`, userID)
}

func upsertMember(ctx context.Context, q querier, member domain.TenantMember) error {
	query := `
		INSERT INTO tenant_members (tenant_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tenant_id, user_id) DO UPDATE SET role = EXCLUDED.role;
	`
	if _, err := q.Exec(ctx, query, member.TenantID, member.UserID, member.Role, member.JoinedAt); err != nil {
		return dbError(err, "failed to save member "+member.UserID)
	}
	return nil
}

// AddMember adds a user to a tenant or changes their role.
func (r *PgxTenantRepository) AddMember(ctx context.Context, member domain.TenantMember) error {
	return upsertMember(ctx, r.Pool, member)
}

// FindMembership retrieves the role of a user in a tenant.
func (r *PgxTenantRepository) FindMembership(ctx context.Context, tenantID, userID string) (*domain.TenantMember, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT user_id, tenant_id, role, joined_at FROM tenant_members WHERE tenant_id = $1 AND user_id = $2;`, tenantID, userID)
	if err != nil {
		return nil, dbError(err, "failed to query membership")
	}
	member, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.TenantMember])
	if err != nil {
		return nil, notFoundOr(err, "failed to collect membership row")
	}
	return &member, nil
}

// ListMembers retrieves all members of a tenant.
func (r *PgxTenantRepository) ListMembers(ctx context.Context, tenantID string) ([]domain.TenantMember, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT user_id, tenant_id, role, joined_at FROM tenant_members WHERE tenant_id = $1 ORDER BY joined_at, user_id;`, tenantID)
	if err != nil {
		return nil, dbError(err, "failed to query members")
	}
	members, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.TenantMember])
	if err != nil {
		return nil, dbError(err, "failed to collect member rows")
	}
	return members, nil
}

func (r *PgxTenantRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	query := `
		INSERT INTO branches (
			branch_id, tenant_id, code, name, state_code, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		branch.BranchID,
		branch.TenantID,
		branch.Code,
		branch.Name,
		branch.StateCode,
		branch.IsActive,
		branch.CreatedAt,
		branch.CreatedBy,
		branch.LastUpdatedAt,
		branch.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: branch code %s already exists", apperrors.ErrDuplicate, branch.Code)
		}
		return dbError(err, "failed to save branch "+branch.Code)
	}
	return nil
}

func (r *PgxTenantRepository) FindBranchByID(ctx context.Context, tenantID, branchID string) (*domain.Branch, error) {
	branches, err := r.getBranches(ctx, "WHERE b.tenant_id = $1 AND b.branch_id = $2;", tenantID, branchID)
	if err != nil {
		return nil, err
	}
	if len(branches) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &branches[0], nil
}

func (r *PgxTenantRepository) ListBranches(ctx context.Context, tenantID string) ([]domain.Branch, error) {
	return r.getBranches(ctx, "WHERE b.tenant_id = $1 ORDER BY b.code;", tenantID)
}
