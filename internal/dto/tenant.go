package dto

import (
	"time"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
)

// CreateTenantRequest defines data for creating a new tenant.
type CreateTenantRequest struct {
	Name                 string `json:"name" binding:"required"`
	BaseCurrency         string `json:"baseCurrency" binding:"required,iso4217"`
	FiscalYearStartMonth int    `json:"fiscalYearStartMonth" binding:"omitempty,min=1,max=12"`
}

// AddMemberRequest adds a user to a tenant.
type AddMemberRequest struct {
	UserID string            `json:"userID" binding:"required"`
	Role   domain.TenantRole `json:"role" binding:"required,oneof=ADMIN APPROVER MEMBER READONLY"`
}

// CreateBranchRequest defines data for creating a branch.
type CreateBranchRequest struct {
	Code      string `json:"code" binding:"required"`
	Name      string `json:"name" binding:"required"`
	StateCode string `json:"stateCode" binding:"required,statecode"`
}

// CreateIntegrationTokenRequest names a new integration token.
type CreateIntegrationTokenRequest struct {
	Name      string         `json:"name" binding:"required"`
	ExpiresIn *time.Duration `json:"expiresIn" swaggertype:"integer"`
}

// CreateIntegrationTokenResponse returns the plaintext token once.
type CreateIntegrationTokenResponse struct {
	Token       string                  `json:"token"`
	Integration domain.IntegrationToken `json:"integration"`
}
