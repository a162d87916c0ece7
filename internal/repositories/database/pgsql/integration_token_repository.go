package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxIntegrationTokenRepository struct {
	BaseRepository
}

// newPgxIntegrationTokenRepository creates a new instance of PgxIntegrationTokenRepository
func newPgxIntegrationTokenRepository(pool *pgxpool.Pool) portsrepo.IntegrationTokenRepository {
	return &PgxIntegrationTokenRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.IntegrationTokenRepository = (*PgxIntegrationTokenRepository)(nil)

const (
	integrationTokensTable = "integration_tokens"

	selectIntegrationTokenFields = `
		token_id AS id, tenant_id, name, token_prefix, token_hash,
		last_used_at, expires_at, revoked_at, created_by, created_at
	`

	insertIntegrationTokenQuery = `
		INSERT INTO ` + integrationTokensTable + ` (
			token_id, tenant_id, name, token_prefix, token_hash, expires_at, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	findIntegrationTokenByPrefixQuery = `
		SELECT ` + selectIntegrationTokenFields + `
		FROM ` + integrationTokensTable + `
		WHERE token_prefix = $1
	`

	listIntegrationTokensQuery = `
		SELECT ` + selectIntegrationTokenFields + `
		FROM ` + integrationTokensTable + `
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`

	revokeIntegrationTokenQuery = `
		UPDATE ` + integrationTokensTable + `
		SET revoked_at = $3
		WHERE tenant_id = $1 AND token_id = $2 AND revoked_at IS NULL
	`

	touchIntegrationTokenQuery = `
		UPDATE ` + integrationTokensTable + `
		SET last_used_at = $2
		WHERE token_id = $1
	`
)

// Create stores a new token. Only the hash of the secret is persisted.
func (r *PgxIntegrationTokenRepository) Create(ctx context.Context, token domain.IntegrationToken) error {
	_, err := r.Pool.Exec(ctx, insertIntegrationTokenQuery,
		token.ID,
		token.TenantID,
		token.Name,
		token.TokenPrefix,
		token.TokenHash,
		token.ExpiresAt,
		token.CreatedBy,
		token.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: token prefix collision", apperrors.ErrDuplicate)
		}
		return dbError(err, "failed to create integration token")
	}
	return nil
}

// FindByPrefix looks a token up by its public prefix, across tenants.
func (r *PgxIntegrationTokenRepository) FindByPrefix(ctx context.Context, prefix string) (*domain.IntegrationToken, error) {
	rows, err := r.Pool.Query(ctx, findIntegrationTokenByPrefixQuery, prefix)
	if err != nil {
		return nil, dbError(err, "failed to query integration token")
	}
	token, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.IntegrationToken])
	if err != nil {
		return nil, notFoundOr(err, "failed to collect integration token")
	}
	return &token, nil
}

func (r *PgxIntegrationTokenRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.IntegrationToken, error) {
	rows, err := r.Pool.Query(ctx, listIntegrationTokensQuery, tenantID)
	if err != nil {
		return nil, dbError(err, "failed to list integration tokens")
	}
	tokens, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.IntegrationToken])
	if err != nil {
		return nil, dbError(err, "failed to collect integration tokens")
	}
	return tokens, nil
}

// Revoke marks a token revoked. Revoking twice reports ErrNotFound.
func (r *PgxIntegrationTokenRepository) Revoke(ctx context.Context, tenantID, id string, now time.Time) error {
	ct, err := r.Pool.Exec(ctx, revokeIntegrationTokenQuery, tenantID, id, now)
	if err != nil {
		return dbError(err, "failed to revoke integration token")
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxIntegrationTokenRepository) TouchLastUsed(ctx context.Context, id string, now time.Time) error {
	if _, err := r.Pool.Exec(ctx, touchIntegrationTokenQuery, id, now); err != nil {
		return dbError(err, "failed to update integration token last use")
	}
	return nil
}
