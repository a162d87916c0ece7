package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/core/services"
	"github.com/SscSPs/travel_ledger/internal/dto"
)

type TenantServiceTestSuite struct {
	suite.Suite
	repo     *MockTenantRepository
	service  portssvc.TenantSvcFacade
	tenantID string
	userID   string
}

func (suite *TenantServiceTestSuite) SetupTest() {
	suite.repo = new(MockTenantRepository)
	suite.service = services.NewTenantService(suite.repo)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *TenantServiceTestSuite) member(role domain.TenantRole) {
	suite.repo.On("FindMembership", mock.Anything, suite.tenantID, suite.userID).
		Return(&domain.TenantMember{UserID: suite.userID, TenantID: suite.tenantID, Role: role}, nil)
}

func (suite *TenantServiceTestSuite) TestAuthorizeUserAction_RoleLadder() {
	tests := []struct {
		have     domain.TenantRole
		required domain.TenantRole
		allowed  bool
	}{
		{domain.RoleAdmin, domain.RoleApprover, true},
		{domain.RoleApprover, domain.RoleMember, true},
		{domain.RoleMember, domain.RoleMember, true},
		{domain.RoleMember, domain.RoleApprover, false},
		{domain.RoleReadOnly, domain.RoleMember, false},
		{domain.RoleReadOnly, domain.RoleReadOnly, true},
	}
	for _, tt := range tests {
		suite.Run(string(tt.have)+"->"+string(tt.required), func() {
			repo := new(MockTenantRepository)
			svc := services.NewTenantService(repo)
			repo.On("FindMembership", mock.Anything, suite.tenantID, suite.userID).
				Return(&domain.TenantMember{Role: tt.have}, nil).Once()

			err := svc.AuthorizeUserAction(context.Background(), suite.userID, suite.tenantID, tt.required)
			if tt.allowed {
				suite.NoError(err)
			} else {
				suite.ErrorIs(err, apperrors.ErrForbidden)
			}
		})
	}
}

func (suite *TenantServiceTestSuite) TestAuthorizeUserAction_NotMember() {
	suite.repo.On("FindMembership", mock.Anything, suite.tenantID, suite.userID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.AuthorizeUserAction(context.Background(), suite.userID, suite.tenantID, domain.RoleReadOnly)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TenantServiceTestSuite) TestAuthorizeUserAction_StoreFailure() {
	boom := errors.New("connection reset")
	suite.repo.On("FindMembership", mock.Anything, suite.tenantID, suite.userID).Return(nil, boom).Once()

	err := suite.service.AuthorizeUserAction(context.Background(), suite.userID, suite.tenantID, domain.RoleReadOnly)

	suite.ErrorIs(err, boom)
}

func (suite *TenantServiceTestSuite) TestCreateTenant_DefaultsAndOwner() {
	ctx := context.Background()
	suite.repo.On("SaveTenant", ctx, mock.MatchedBy(func(t domain.Tenant) bool {
		return t.Name == "Himalayan Treks" && t.BaseCurrency == "INR" && t.FiscalYearStartMonth == 4 && t.IsActive
	}), mock.MatchedBy(func(m domain.TenantMember) bool {
		return m.UserID == suite.userID && m.Role == domain.RoleAdmin
	})).Return(nil).Once()

	tenant, err := suite.service.CreateTenant(ctx, dto.CreateTenantRequest{Name: "  Himalayan Treks ", BaseCurrency: "inr"}, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(tenant.TenantID)
	suite.Equal(suite.userID, tenant.CreatedBy)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) TestCreateTenant_BadStartMonth() {
	_, err := suite.service.CreateTenant(context.Background(), dto.CreateTenantRequest{Name: "x", BaseCurrency: "INR", FiscalYearStartMonth: 13}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.repo.AssertNotCalled(suite.T(), "SaveTenant", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TenantServiceTestSuite) TestAddMember() {
	ctx := context.Background()
	suite.member(domain.RoleAdmin)
	suite.repo.On("AddMember", ctx, mock.MatchedBy(func(m domain.TenantMember) bool {
		return m.UserID == "new-user" && m.Role == domain.RoleApprover && m.TenantID == suite.tenantID
	})).Return(nil).Once()

	err := suite.service.AddMember(ctx, suite.tenantID, dto.AddMemberRequest{UserID: "new-user", Role: domain.RoleApprover}, suite.userID)

	suite.Require().NoError(err)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) TestAddMember_RequiresAdmin() {
	suite.member(domain.RoleApprover)

	err := suite.service.AddMember(context.Background(), suite.tenantID, dto.AddMemberRequest{UserID: "u", Role: domain.RoleMember}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.repo.AssertNotCalled(suite.T(), "AddMember", mock.Anything, mock.Anything)
}

func (suite *TenantServiceTestSuite) TestAddMember_UnknownRole() {
	suite.member(domain.RoleAdmin)

	err := suite.service.AddMember(context.Background(), suite.tenantID, dto.AddMemberRequest{UserID: "u", Role: "OWNER"}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TenantServiceTestSuite) TestCreateBranch_NormalisesCodes() {
	ctx := context.Background()
	suite.member(domain.RoleAdmin)
	suite.repo.On("SaveBranch", ctx, mock.MatchedBy(func(b domain.Branch) bool {
		return b.Code == "DEL" && b.StateCode == "DL" && b.TenantID == suite.tenantID
	})).Return(nil).Once()

	branch, err := suite.service.CreateBranch(ctx, suite.tenantID, dto.CreateBranchRequest{Code: " del", Name: "Delhi", StateCode: "dl"}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("DEL", branch.Code)
}

func (suite *TenantServiceTestSuite) TestCreateBranch_Duplicate() {
	ctx := context.Background()
	suite.member(domain.RoleAdmin)
	suite.repo.On("SaveBranch", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateBranch(ctx, suite.tenantID, dto.CreateBranchRequest{Code: "DEL", Name: "Delhi"}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *TenantServiceTestSuite) TestListUserTenants_NilBecomesEmpty() {
	suite.repo.On("ListTenantsByUserID", mock.Anything, suite.userID).Return(nil, nil).Once()

	tenants, err := suite.service.ListUserTenants(context.Background(), suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(tenants)
	suite.Empty(tenants)
}

func TestTenantService(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}
