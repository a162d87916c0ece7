package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type FiscalHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockFiscalService *MockFiscalService
	tenantID          string
	userID            string
	token             string
}

func (suite *FiscalHandlerTestSuite) SetupTest() {
	r, tenantGroup := newTenantRouter()
	suite.router = r
	suite.mockFiscalService = new(MockFiscalService)
	registerFiscalRoutes(tenantGroup, suite.mockFiscalService)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.token = generateTestToken(suite.T(), suite.userID)
}

func (suite *FiscalHandlerTestSuite) url(path string) string {
	return fmt.Sprintf("/api/v1/tenants/%s%s", suite.tenantID, path)
}

func (suite *FiscalHandlerTestSuite) TestCreateFiscalYear() {
	suite.mockFiscalService.On("CreateFiscalYear", mock.Anything, suite.tenantID,
		mock.MatchedBy(func(req dto.CreateFiscalYearRequest) bool {
			return req.Name == "FY 2025-26" && req.StartDate.Format("2006-01-02") == "2025-04-01"
		}),
		suite.userID,
	).Return(&domain.FiscalYear{FiscalYearID: "fy-1", Name: "FY 2025-26"}, nil).Once()

	w := doJSON(suite.router, http.MethodPost, suite.url("/fiscal-years"),
		map[string]any{"name": "FY 2025-26", "startDate": "2025-04-01"}, suite.token)

	suite.Equal(http.StatusCreated, w.Code)
	suite.Contains(w.Body.String(), `"fiscalYearID":"fy-1"`)
	suite.mockFiscalService.AssertExpectations(suite.T())
}

func (suite *FiscalHandlerTestSuite) TestCreateFiscalYear_Overlap() {
	suite.mockFiscalService.On("CreateFiscalYear", mock.Anything, suite.tenantID, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: overlaps FY 2024-25", apperrors.ErrConflict)).Once()

	w := doJSON(suite.router, http.MethodPost, suite.url("/fiscal-years"),
		map[string]any{"name": "FY 2025-26", "startDate": "2025-03-01"}, suite.token)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *FiscalHandlerTestSuite) TestSoftClosePeriod_WithoutBody() {
	periodID := uuid.NewString()
	suite.mockFiscalService.On("SoftClosePeriod", mock.Anything, suite.tenantID, periodID, dto.PeriodTransitionRequest{}, suite.userID).
		Return(&domain.FiscalPeriod{FiscalPeriodID: periodID, Status: domain.PeriodSoftClose}, nil).Once()

	w := doJSON(suite.router, http.MethodPost, suite.url("/fiscal-periods/"+periodID+"/soft-close"), nil, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"status":"SOFT_CLOSE"`)
	suite.mockFiscalService.AssertExpectations(suite.T())
}

func (suite *FiscalHandlerTestSuite) TestReopenPeriod_PassesReason() {
	periodID := uuid.NewString()
	suite.mockFiscalService.On("ReopenPeriod", mock.Anything, suite.tenantID, periodID,
		dto.PeriodTransitionRequest{Reason: "late vendor invoice"}, suite.userID,
	).Return(&domain.FiscalPeriod{FiscalPeriodID: periodID, Status: domain.PeriodOpen}, nil).Once()

	w := doJSON(suite.router, http.MethodPost, suite.url("/fiscal-periods/"+periodID+"/reopen"),
		map[string]any{"reason": "late vendor invoice"}, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"status":"OPEN"`)
}

func (suite *FiscalHandlerTestSuite) TestHardClosePeriod_UnpostedEntries() {
	periodID := uuid.NewString()
	suite.mockFiscalService.On("HardClosePeriod", mock.Anything, suite.tenantID, periodID, dto.PeriodTransitionRequest{}, suite.userID).
		Return(nil, fmt.Errorf("%w: 3 unposted entries in Apr 2025", apperrors.ErrState)).Once()

	w := doJSON(suite.router, http.MethodPost, suite.url("/fiscal-periods/"+periodID+"/hard-close"), nil, suite.token)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Contains(w.Body.String(), "unposted")
}

func (suite *FiscalHandlerTestSuite) TestGetPeriodForDate() {
	suite.mockFiscalService.On("GetPeriodForDate", mock.Anything, suite.tenantID,
		mock.MatchedBy(func(d time.Time) bool {
			return d.Year() == 2025 && d.Month() == time.April && d.Day() == 15
		}),
		suite.userID,
	).Return(&domain.FiscalPeriod{FiscalPeriodID: "p-1", Name: "Apr 2025", Status: domain.PeriodOpen}, nil).Once()

	w := doJSON(suite.router, http.MethodGet, suite.url("/fiscal-periods/for-date?date=2025-04-15"), nil, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"name":"Apr 2025"`)
}

func (suite *FiscalHandlerTestSuite) TestGetPeriodForDate_BadDate() {
	w := doJSON(suite.router, http.MethodGet, suite.url("/fiscal-periods/for-date?date=15-04-2025"), nil, suite.token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockFiscalService.AssertNotCalled(suite.T(), "GetPeriodForDate")
}

func (suite *FiscalHandlerTestSuite) TestCloseFiscalYear() {
	yearID := uuid.NewString()
	suite.mockFiscalService.On("CloseFiscalYear", mock.Anything, suite.tenantID, yearID,
		dto.CloseFiscalYearRequest{RetainedEarningsAccountID: "re-1"}, suite.userID,
	).Return(&domain.YearCloseResult{
		FiscalYear:   domain.FiscalYear{FiscalYearID: yearID, IsClosed: true},
		ClosingEntry: &domain.JournalEntry{EntryID: "close-1", Status: domain.Posted},
		TotalRevenue: decimal.RequireFromString("500000"),
		TotalExpense: decimal.RequireFromString("420000"),
		NetIncome:    decimal.RequireFromString("80000"),
	}, nil).Once()

	w := doJSON(suite.router, http.MethodPost, suite.url("/fiscal-years/"+yearID+"/close"),
		map[string]any{"retainedEarningsAccountID": "re-1"}, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"isClosed":true`)
	suite.Contains(w.Body.String(), `"netIncome":"80000"`)
	suite.mockFiscalService.AssertExpectations(suite.T())
}

func TestFiscalHandler(t *testing.T) {
	suite.Run(t, new(FiscalHandlerTestSuite))
}
