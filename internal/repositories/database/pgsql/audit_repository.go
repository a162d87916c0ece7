package pgsql

import (
	"context"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepository {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

// insertAuditLog lets the lifecycle writers record audit rows inside their
// own transaction.
func insertAuditLog(ctx context.Context, q querier, entry domain.AuditLogEntry) error {
	query := `
		INSERT INTO audit_log (audit_id, tenant_id, entity_type, entity_id, action, from_status, to_status, reason, details, performed_by, performed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	var details any
	if len(entry.Details) > 0 {
		details = entry.Details
	}
	_, err := q.Exec(ctx, query,
		entry.AuditID,
		entry.TenantID,
		entry.EntityType,
		entry.EntityID,
		entry.Action,
		entry.FromStatus,
		entry.ToStatus,
		entry.Reason,
		details,
		entry.PerformedBy,
		entry.PerformedAt,
	)
	if err != nil {
		return dbError(err, "failed to write audit log for "+entry.EntityType+" "+entry.EntityID)
	}
	return nil
}

// SaveAuditLog writes a standalone audit row.
func (r *PgxAuditRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLogEntry) error {
	return insertAuditLog(ctx, r.Pool, entry)
}

// ListAuditLog retrieves an entity's history, oldest first.
func (r *PgxAuditRepository) ListAuditLog(ctx context.Context, tenantID, entityType, entityID string) ([]domain.AuditLogEntry, error) {
	query := `
		SELECT audit_id, tenant_id, entity_type, entity_id, action, from_status, to_status, reason, details, performed_by, performed_at
		FROM audit_log
		WHERE tenant_id = $1 AND entity_type = $2 AND entity_id = $3
		ORDER BY performed_at, audit_id;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, entityType, entityID)
	if err != nil {
		return nil, dbError(err, "failed to query audit log")
	}
	defer rows.Close()

	entries := []domain.AuditLogEntry{}
	for rows.Next() {
		var e domain.AuditLogEntry
		err := rows.Scan(
			&e.AuditID,
			&e.TenantID,
			&e.EntityType,
			&e.EntityID,
			&e.Action,
			&e.FromStatus,
			&e.ToStatus,
			&e.Reason,
			&e.Details,
			&e.PerformedBy,
			&e.PerformedAt,
		)
		if err != nil {
			return nil, dbError(err, "failed to scan audit log row")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating audit log rows")
	}
	return entries, nil
}
