package domain

import "time"

// IntegrationToken authenticates an operational module pushing events.
type IntegrationToken struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	Name        string     `json:"name"`
	TokenPrefix string     `json:"token_prefix"`
	TokenHash   string     `json:"-"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsExpired checks if the token has expired
func (t *IntegrationToken) IsExpired(now time.Time) bool {
	if t.ExpiresAt == nil {
		return false
	}
	return t.ExpiresAt.Before(now)
}

// IsUsable reports whether the token may authenticate a request.
func (t *IntegrationToken) IsUsable(now time.Time) bool {
	return t.RevokedAt == nil && !t.IsExpired(now)
}
