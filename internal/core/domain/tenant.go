package domain

import "time"

// Tenant is an isolated company using the ledger.
type Tenant struct {
	TenantID             string `json:"tenantID"`
	Name                 string `json:"name"`
	BaseCurrency         string `json:"baseCurrency"`
	FiscalYearStartMonth int    `json:"fiscalYearStartMonth"` // 1..12, April for Indian companies
	IsActive             bool   `json:"isActive"`
	AuditFields
}

// Branch is an operating location of a tenant. StateCode decides the GST
// place of supply.
type Branch struct {
	BranchID  string `json:"branchID"`
	TenantID  string `json:"tenantID"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	StateCode string `json:"stateCode"`
	IsActive  bool   `json:"isActive"`
	AuditFields
}

// TenantRole defines what a member may do inside a tenant.
type TenantRole string

const (
	RoleAdmin    TenantRole = "ADMIN"
	RoleApprover TenantRole = "APPROVER"
	RoleMember   TenantRole = "MEMBER"
	RoleReadOnly TenantRole = "READONLY"
)

var roleRank = map[TenantRole]int{
	RoleReadOnly: 1,
	RoleMember:   2,
	RoleApprover: 3,
	RoleAdmin:    4,
}

// Valid reports whether r is a known role.
func (r TenantRole) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Satisfies reports whether r is at least as strong as required.
func (r TenantRole) Satisfies(required TenantRole) bool {
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	return have >= roleRank[required]
}

// TenantMember is a user's membership in a tenant.
type TenantMember struct {
	UserID   string     `json:"userID"`
	TenantID string     `json:"tenantID"`
	Role     TenantRole `json:"role"`
	JoinedAt time.Time  `json:"joinedAt"`
}
