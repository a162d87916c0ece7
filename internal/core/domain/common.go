package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// AuditLogEntry records a lifecycle action on an entity.
type AuditLogEntry struct {
	AuditID     string         `json:"auditID"`
	TenantID    string         `json:"tenantID"`
	EntityType  string         `json:"entityType"`
	EntityID    string         `json:"entityID"`
	Action      string         `json:"action"`
	FromStatus  string         `json:"fromStatus,omitempty"`
	ToStatus    string         `json:"toStatus,omitempty"`
	Reason      string         `json:"reason,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	PerformedBy string         `json:"performedBy"`
	PerformedAt time.Time      `json:"performedAt"`
}

// DateOnly truncates t to midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
