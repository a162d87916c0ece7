package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BankHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockBankService *MockBankService
	tenantID        string
	bankAccountID   string
	userID          string
	token           string
}

func (suite *BankHandlerTestSuite) SetupTest() {
	r, tenantGroup := newTenantRouter()
	suite.router = r
	suite.mockBankService = new(MockBankService)
	registerBankRoutes(tenantGroup, suite.mockBankService)

	suite.tenantID = uuid.NewString()
	suite.bankAccountID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.token = generateTestToken(suite.T(), suite.userID)
}

func (suite *BankHandlerTestSuite) url(path string) string {
	return fmt.Sprintf("/api/v1/tenants/%s%s", suite.tenantID, path)
}

func (suite *BankHandlerTestSuite) upload(fileName, profile string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	suite.Require().NoError(err)
	_, err = part.Write(content)
	suite.Require().NoError(err)
	if profile != "" {
		suite.Require().NoError(mw.WriteField("profile", profile))
	}
	suite.Require().NoError(mw.Close())

	req, _ := http.NewRequest(http.MethodPost, suite.url("/bank-accounts/"+suite.bankAccountID+"/imports"), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

const hdfcSample = "Date,Narration,Chq./Ref.No.,Value Dt,Withdrawal Amt.,Deposit Amt.,Closing Balance\n" +
	"01/04/25,NEFT-ACME TRAVELS,N123,01/04/25,,15000.00,115000.00\n"

func (suite *BankHandlerTestSuite) TestImportStatement_Success() {
	suite.mockBankService.On("ImportStatement", mock.Anything, suite.tenantID, suite.bankAccountID,
		mock.MatchedBy(func(req dto.ImportStatementRequest) bool {
			return req.FileName == "april.csv" && req.Profile == "HDFC" && string(req.Content) == hdfcSample
		}),
		suite.userID,
	).Return(&domain.ImportResult{ImportID: "imp-1", Imported: 1}, nil).Once()

	w := suite.upload("april.csv", "HDFC", []byte(hdfcSample))

	suite.Equal(http.StatusCreated, w.Code)
	suite.Contains(w.Body.String(), `"imported":1`)
	suite.mockBankService.AssertExpectations(suite.T())
}

func (suite *BankHandlerTestSuite) TestImportStatement_UnknownProfile() {
	suite.mockBankService.On("ImportStatement", mock.Anything, suite.tenantID, suite.bankAccountID, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: unknown statement profile NOPE", apperrors.ErrValidation)).Once()

	w := suite.upload("april.csv", "NOPE", []byte(hdfcSample))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "NOPE")
}

func (suite *BankHandlerTestSuite) TestImportStatement_MissingFile() {
	req, _ := http.NewRequest(http.MethodPost, suite.url("/bank-accounts/"+suite.bankAccountID+"/imports"), nil)
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBankService.AssertNotCalled(suite.T(), "ImportStatement")
}

func (suite *BankHandlerTestSuite) TestAutoMatch_Apply() {
	suite.mockBankService.On("AutoMatch", mock.Anything, suite.tenantID, suite.bankAccountID, true, suite.userID).
		Return(&domain.AutoMatchSummary{BankAccountID: suite.bankAccountID, Exact: 2, Applied: 2}, nil).Once()

	w := doJSON(suite.router, http.MethodPost, suite.url("/bank-accounts/"+suite.bankAccountID+"/auto-match?apply=true"), nil, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"applied":2`)
	suite.mockBankService.AssertExpectations(suite.T())
}

func (suite *BankHandlerTestSuite) TestReconcileTransactions() {
	recID := uuid.NewString()
	suite.mockBankService.On("ReconcileTransactions", mock.Anything, suite.tenantID, recID,
		dto.ReconcileTransactionsRequest{TransactionIDs: []string{"t1", "t2"}}, suite.userID,
	).Return(2, nil).Once()

	w := doJSON(suite.router, http.MethodPost, suite.url("/reconciliations/"+recID+"/transactions"),
		map[string]any{"transactionIDs": []string{"t1", "t2"}}, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"reconciled":2}`, w.Body.String())
}

func (suite *BankHandlerTestSuite) TestReconcileTransactions_EmptyList() {
	w := doJSON(suite.router, http.MethodPost, suite.url("/reconciliations/"+uuid.NewString()+"/transactions"),
		map[string]any{"transactionIDs": []string{}}, suite.token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBankService.AssertNotCalled(suite.T(), "ReconcileTransactions")
}

func (suite *BankHandlerTestSuite) TestCompleteReconciliation() {
	recID := uuid.NewString()
	reconciled := decimal.RequireFromString("115000.00")
	diff := decimal.Zero
	suite.mockBankService.On("CompleteReconciliation", mock.Anything, suite.tenantID, recID, suite.userID).
		Return(&domain.BankReconciliation{
			ReconciliationID:  recID,
			Status:            domain.ReconciliationCompleted,
			StatementBalance:  reconciled,
			ReconciledBalance: &reconciled,
			Difference:        &diff,
		}, nil).Once()

	w := doJSON(suite.router, http.MethodPost, suite.url("/reconciliations/"+recID+"/complete"), nil, suite.token)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"status":"COMPLETED"`)
}

func (suite *BankHandlerTestSuite) TestCompleteReconciliation_AlreadyCompleted() {
	recID := uuid.NewString()
	suite.mockBankService.On("CompleteReconciliation", mock.Anything, suite.tenantID, recID, suite.userID).
		Return(nil, apperrors.NewStateError("reconciliation", recID, "COMPLETED", "complete")).Once()

	w := doJSON(suite.router, http.MethodPost, suite.url("/reconciliations/"+recID+"/complete"), nil, suite.token)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func TestBankHandler(t *testing.T) {
	suite.Run(t, new(BankHandlerTestSuite))
}
