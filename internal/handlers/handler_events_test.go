package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/SscSPs/travel_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type EventHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockEventService *MockEventService
	mockValidator    *MockTokenValidator
	token            *domain.IntegrationToken
}

const testRawToken = "tl_abcdefgh_secret"

func (suite *EventHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockEventService = new(MockEventService)
	suite.mockValidator = new(MockTokenValidator)
	suite.token = &domain.IntegrationToken{ID: "tok-1", TenantID: "tenant-from-token", TokenPrefix: "abcdefgh"}

	suite.router = gin.New()
	group := suite.router.Group("/api/v1/integrations", middleware.IntegrationTokenAuth(suite.mockValidator))
	registerEventRoutes(group, suite.mockEventService)
}

func (suite *EventHandlerTestSuite) post(body string, apiKey string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/integrations/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func bookingEnvelope(tenantID string) string {
	return fmt.Sprintf(`{"eventType":"BookingCreated","payload":{"tenantID":%q,"branchID":"br-1","sourceRecordID":"BK-1001","bookingID":"BK-1001","customerID":"C-9","amount":"1000.00","taxCode":"GST18"}}`, tenantID)
}

func (suite *EventHandlerTestSuite) TestIngest_MissingKey() {
	w := suite.post(bookingEnvelope("x"), "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockEventService.AssertNotCalled(suite.T(), "Dispatch")
}

func (suite *EventHandlerTestSuite) TestIngest_RevokedKey() {
	suite.mockValidator.On("ValidateToken", mock.Anything, "revoked").
		Return(nil, fmt.Errorf("%w: token revoked", apperrors.ErrForbidden)).Once()

	w := suite.post(bookingEnvelope("x"), "revoked")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockEventService.AssertNotCalled(suite.T(), "Dispatch")
}

func (suite *EventHandlerTestSuite) TestIngest_TenantForcedFromToken() {
	suite.mockValidator.On("ValidateToken", mock.Anything, testRawToken).Return(suite.token, nil).Once()
	suite.mockEventService.On("Dispatch", mock.Anything, "tenant-from-token",
		mock.MatchedBy(func(env dto.EventEnvelope) bool {
			return env.EventType == domain.EventBookingCreated && len(env.Payload) > 0
		}),
	).Return(&domain.EventResult{
		EventType:      domain.EventBookingCreated,
		SourceRecordID: "BK-1001",
		Entries:        []domain.JournalEntry{{EntryID: "e1", Status: domain.Posted}},
	}, nil).Once()

	// The payload claims another tenant; the token wins.
	w := suite.post(bookingEnvelope("someone-else"), testRawToken)

	suite.Equal(http.StatusCreated, w.Code)
	var body domain.EventResult
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.False(body.Replayed)
	suite.Len(body.Entries, 1)
	suite.mockEventService.AssertExpectations(suite.T())
}

func (suite *EventHandlerTestSuite) TestIngest_ReplayReturnsOK() {
	suite.mockValidator.On("ValidateToken", mock.Anything, testRawToken).Return(suite.token, nil).Once()
	suite.mockEventService.On("Dispatch", mock.Anything, "tenant-from-token", mock.Anything).
		Return(&domain.EventResult{EventType: domain.EventBookingCreated, SourceRecordID: "BK-1001", Replayed: true}, nil).Once()

	w := suite.post(bookingEnvelope("tenant-from-token"), testRawToken)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"replayed":true`)
}

func (suite *EventHandlerTestSuite) TestIngest_UnknownEventType() {
	suite.mockValidator.On("ValidateToken", mock.Anything, testRawToken).Return(suite.token, nil).Once()
	suite.mockEventService.On("Dispatch", mock.Anything, "tenant-from-token", mock.Anything).
		Return(nil, fmt.Errorf("%w: unknown event type TripCancelled", apperrors.ErrValidation)).Once()

	w := suite.post(`{"eventType":"TripCancelled","payload":{}}`, testRawToken)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "TripCancelled")
}

func (suite *EventHandlerTestSuite) TestIngest_MissingPayload() {
	suite.mockValidator.On("ValidateToken", mock.Anything, testRawToken).Return(suite.token, nil).Once()

	w := suite.post(`{"eventType":"BookingCreated"}`, testRawToken)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockEventService.AssertNotCalled(suite.T(), "Dispatch")
}

func (suite *EventHandlerTestSuite) TestIngest_InfrastructureFailureHidden() {
	suite.mockValidator.On("ValidateToken", mock.Anything, testRawToken).Return(suite.token, nil).Once()
	suite.mockEventService.On("Dispatch", mock.Anything, "tenant-from-token", mock.Anything).
		Return(nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to insert entry", errors.New("connection reset"))).Once()

	w := suite.post(bookingEnvelope("tenant-from-token"), testRawToken)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "connection reset")
}

func TestEventHandler(t *testing.T) {
	suite.Run(t, new(EventHandlerTestSuite))
}
