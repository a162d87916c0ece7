package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/SscSPs/travel_ledger/internal/platform/resilience"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JournalHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockJournalService *MockJournalService
	tenantID           string
	userID             string
	token              string
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	r, tenantGroup := newTenantRouter()
	suite.router = r
	suite.mockJournalService = new(MockJournalService)
	registerJournalRoutes(tenantGroup, suite.mockJournalService)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.token = generateTestToken(suite.T(), suite.userID)
}

func (suite *JournalHandlerTestSuite) url(path string) string {
	return fmt.Sprintf("/api/v1/tenants/%s/journal-entries%s", suite.tenantID, path)
}

func balancedEntryBody() map[string]any {
	return map[string]any{
		"entryDate":   "2025-04-10",
		"description": "Office rent April",
		"autoPost":    true,
		"lines": []map[string]any{
			{"accountID": "acc-rent", "debit": "25000.00"},
			{"accountID": "acc-bank", "credit": "25000.00"},
		},
	}
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_Posted() {
	number := int64(1)
	posted := &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		TenantID:    suite.tenantID,
		EntryNumber: &number,
		Status:      domain.Posted,
		TotalDebit:  decimal.NewFromInt(25000),
		TotalCredit: decimal.NewFromInt(25000),
	}

	suite.mockJournalService.On("CreateEntry", mock.Anything, suite.tenantID,
		mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
			return req.AutoPost &&
				len(req.Lines) == 2 &&
				req.Lines[0].Debit.Equal(decimal.NewFromInt(25000)) &&
				req.EntryDate.Equal(time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC))
		}),
		suite.userID,
	).Return(posted, nil).Once()

	w := doJSON(suite.router, http.MethodPost, suite.url(""), balancedEntryBody(), suite.token)

	suite.Equal(http.StatusCreated, w.Code)
	var body domain.JournalEntry
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(domain.Posted, body.Status)
	suite.Require().NotNil(body.EntryNumber)
	suite.Equal(int64(1), *body.EntryNumber)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_SingleLineRejectedByBinding() {
	body := balancedEntryBody()
	body["lines"] = []map[string]any{{"accountID": "acc-rent", "debit": "10"}}

	w := doJSON(suite.router, http.MethodPost, suite.url(""), body, suite.token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_Unbalanced() {
	suite.mockJournalService.On("CreateEntry", mock.Anything, suite.tenantID, mock.Anything, suite.userID).
		Return(nil, &apperrors.UnbalancedEntryError{TotalDebit: decimal.NewFromInt(100), TotalCredit: decimal.NewFromInt(90)}).Once()

	w := doJSON(suite.router, http.MethodPost, suite.url(""), balancedEntryBody(), suite.token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "unbalanced")
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_ClosedPeriod() {
	suite.mockJournalService.On("CreateEntry", mock.Anything, suite.tenantID, mock.Anything, suite.userID).
		Return(nil, &apperrors.FiscalPeriodClosedError{
			Date:       time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
			PeriodName: "Apr 2025",
			Status:     "HARD_CLOSE",
		}).Once()

	w := doJSON(suite.router, http.MethodPost, suite.url(""), balancedEntryBody(), suite.token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "HARD_CLOSE")
}

func (suite *JournalHandlerTestSuite) TestPostEntry_AlreadyPosted() {
	entryID := uuid.NewString()
	suite.mockJournalService.On("PostEntry", mock.Anything, suite.tenantID, entryID, suite.userID).
		Return(nil, apperrors.NewStateError("journal entry", entryID, "POSTED", "post")).Once()

	w := doJSON(suite.router, http.MethodPost, suite.url("/"+entryID+"/post"), nil, suite.token)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestPostEntry_Concurrency() {
	entryID := uuid.NewString()
	suite.mockJournalService.On("PostEntry", mock.Anything, suite.tenantID, entryID, suite.userID).
		Return(nil, fmt.Errorf("%w: entry %s", apperrors.ErrConcurrency, entryID)).Once()

	w := doJSON(suite.router, http.MethodPost, suite.url("/"+entryID+"/post"), nil, suite.token)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *JournalHandlerTestSuite) TestApproveEntry_Success() {
	entryID := uuid.NewString()
	approver := suite.userID
	suite.mockJournalService.On("ApproveEntry", mock.Anything, suite.tenantID, entryID, suite.userID).
		Return(&domain.JournalEntry{EntryID: entryID, Status: domain.Draft, ApprovedBy: &approver}, nil).Once()

	w := doJSON(suite.router, http.MethodPost, suite.url("/"+entryID+"/approve"), nil, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"status":"DRAFT"`)
}

func (suite *JournalHandlerTestSuite) TestReverseEntry_RequiresReason() {
	w := doJSON(suite.router, http.MethodPost, suite.url("/"+uuid.NewString()+"/reverse"), map[string]any{}, suite.token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "ReverseEntry")
}

func (suite *JournalHandlerTestSuite) TestReverseEntry_Success() {
	entryID := uuid.NewString()
	reversal := &domain.JournalEntry{EntryID: uuid.NewString(), Status: domain.Posted, ReversesEntryID: &entryID}
	suite.mockJournalService.On("ReverseEntry", mock.Anything, suite.tenantID, entryID,
		mock.MatchedBy(func(req dto.ReverseJournalEntryRequest) bool {
			return req.Reason == "duplicate booking" && req.Date != nil && req.Date.Day() == 15
		}),
		suite.userID,
	).Return(reversal, nil).Once()

	w := doJSON(suite.router, http.MethodPost, suite.url("/"+entryID+"/reverse"),
		map[string]any{"reason": "duplicate booking", "date": "2025-05-15"}, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), reversal.EntryID)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestListEntries_Page() {
	next := "token"
	suite.mockJournalService.On("ListEntries", mock.Anything, suite.tenantID, suite.userID,
		mock.MatchedBy(func(p dto.ListJournalEntriesParams) bool {
			return p.Status == "POSTED" && p.Limit == 10 && p.From != nil
		}),
	).Return(&dto.ListJournalEntriesResponse{Entries: []domain.JournalEntry{{EntryID: "e1"}}, NextToken: &next}, nil).Once()

	w := doJSON(suite.router, http.MethodGet, suite.url("?status=POSTED&limit=10&from=2025-04-01"), nil, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListJournalEntriesResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.Entries, 1)
	suite.Require().NotNil(body.NextToken)
	suite.Equal("token", *body.NextToken)
}

func (suite *JournalHandlerTestSuite) TestFindBySource_UppercasesModule() {
	suite.mockJournalService.On("FindBySource", mock.Anything, suite.tenantID, domain.SourceBooking, "BK-1", suite.userID).
		Return([]domain.JournalEntry{{EntryID: "e1"}}, nil).Once()

	w := doJSON(suite.router, http.MethodGet, suite.url("/by-source?sourceModule=booking&sourceRecordID=BK-1"), nil, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestSubmitEntry_Unavailable() {
	entryID := uuid.NewString()
	suite.mockJournalService.On("SubmitForApproval", mock.Anything, suite.tenantID, entryID, suite.userID).
		Return(nil, resilience.ErrUnavailable).Once()

	w := doJSON(suite.router, http.MethodPost, suite.url("/"+entryID+"/submit"), nil, suite.token)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal("10", w.Header().Get("Retry-After"))
}

func (suite *JournalHandlerTestSuite) TestGetEntryHistory() {
	entryID := uuid.NewString()
	suite.mockJournalService.On("GetEntryHistory", mock.Anything, suite.tenantID, entryID, suite.userID).
		Return([]domain.AuditLogEntry{{EntityType: "journal_entry", EntityID: entryID, Action: "APPROVE"}}, nil).Once()

	w := doJSON(suite.router, http.MethodGet, suite.url("/"+entryID+"/history"), nil, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "APPROVE")
	suite.mockJournalService.AssertExpectations(suite.T())
}

func TestJournalHandler(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
