//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"civicdesk/internal/domain/request"
	"civicdesk/internal/domain/user"
	"civicdesk/internal/handler/api"
	resdto "civicdesk/internal/handler/dto/response"
	"civicdesk/internal/pkg/errs"
	"civicdesk/internal/usecase"
	"civicdesk/internal/usecase/queries"
	"civicdesk/tests/common/builder"
	"civicdesk/tests/common/httptest"
	queriesmock "civicdesk/tests/mock/queries"
	usecasemock "civicdesk/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CommandHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockInvoker *usecasemock.MockCommandInvoker
	mockQueries *queriesmock.MockCommandQueries
	handler     *api.CommandHandler
	actorID     uuid.UUID
}

func (s *CommandHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockInvoker = usecasemock.NewMockCommandInvoker(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCommandQueries(s.mockCtrl)
	s.handler = api.NewCommandHandler(s.mockInvoker, s.mockQueries)
	s.actorID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("actor_id", s.actorID)
		c.Set("actor_role", user.RoleStaff)
		c.Next()
	}

	s.router.POST("/commands/execute", authMiddleware, s.handler.Execute)
	s.router.POST("/commands/undo", authMiddleware, s.handler.Undo)
	s.router.POST("/commands/redo", authMiddleware, s.handler.Redo)
	s.router.GET("/commands/history", authMiddleware, s.handler.History)
	s.router.GET("/commands/availability", authMiddleware, s.handler.Availability)
}

func (s *CommandHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCommandHandlerSuite(t *testing.T) {
	suite.Run(t, new(CommandHandlerTestSuite))
}

func (s *CommandHandlerTestSuite) commandResult(status request.Status) *usecase.CommandResult {
	rec := builder.NewServiceRequestBuilder().BuildRecord(status)
	return &usecase.CommandResult{Request: &rec, CanUndo: true, CanRedo: false}
}

// ================================================================================
// TestExecute
// ================================================================================

func (s *CommandHandlerTestSuite) TestExecute() {
	url := "/commands/execute"
	requestID := uuid.New()
	reqBody := map[string]any{
		"kind":       "update_status",
		"request_id": requestID.String(),
		"new_status": "reviewed",
		"notes":      "triage done",
	}

	s.Run("success: returns 200 OK with command result", func() {
		expected := s.commandResult(request.StatusReviewed)
		s.mockInvoker.EXPECT().Execute(gomock.Any(), s.actorID, gomock.Any()).
			Return(expected, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.CommandResultResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().NotNil(response.Request)
		s.Equal("reviewed", response.Request.Status)
		s.True(response.CanUndo)
		s.False(response.CanRedo)
	})

	s.Run("error: 400 Bad Request on malformed body", func() {
		malformed := map[string]any{"kind": 123}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, malformed, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		// Sentinels arrive marked onto lower-level errors, never bare.
		testCases := []struct {
			name           string
			invokerError   error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "request not found",
				invokerError:   errs.Mark(errs.New("failed to load request"), errs.ErrRequestNotFound),
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Service request not found",
			},
			{
				name:           "illegal transition",
				invokerError:   errs.Mark(errs.New("completed -> pending"), errs.ErrIllegalTransition),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Illegal status transition",
			},
			{
				name:           "unknown status",
				invokerError:   errs.Mark(errs.New("on_hold"), errs.ErrUnknownState),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Unknown status",
			},
			{
				name:           "domain validation",
				invokerError:   errs.Mark(errs.New("new_status is required"), errs.ErrDomainValidation),
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Domain validation failed",
			},
			{
				name:           "internal server error",
				invokerError:   errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockInvoker.EXPECT().Execute(gomock.Any(), s.actorID, gomock.Any()).
					Return(nil, tc.invokerError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestUndo / TestRedo
// ================================================================================

func (s *CommandHandlerTestSuite) TestUndo() {
	url := "/commands/undo"

	s.Run("success: returns 200 OK with reverted record", func() {
		expected := s.commandResult(request.StatusReviewed)
		expected.CanUndo = false
		expected.CanRedo = true
		s.mockInvoker.EXPECT().Undo(gomock.Any(), s.actorID).
			Return(expected, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var response resdto.CommandResultResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.CanUndo)
		s.True(response.CanRedo)
	})

	s.Run("error: 409 Conflict when nothing to undo", func() {
		s.mockInvoker.EXPECT().Undo(gomock.Any(), s.actorID).
			Return(nil, errs.ErrNothingToUndo).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Nothing to undo")
	})

	s.Run("error: 409 Conflict when the reverse transition is illegal", func() {
		s.mockInvoker.EXPECT().Undo(gomock.Any(), s.actorID).
			Return(nil, errs.Mark(errs.ErrIllegalTransition, errs.ErrUndoNotPossible)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Undo not possible")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})
}

func (s *CommandHandlerTestSuite) TestRedo() {
	url := "/commands/redo"

	s.Run("success: returns 200 OK with reapplied record", func() {
		expected := s.commandResult(request.StatusAssigned)
		s.mockInvoker.EXPECT().Redo(gomock.Any(), s.actorID).
			Return(expected, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var response resdto.CommandResultResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().NotNil(response.Request)
		s.Equal("assigned", response.Request.Status)
	})

	s.Run("error: 409 Conflict when nothing to redo", func() {
		s.mockInvoker.EXPECT().Redo(gomock.Any(), s.actorID).
			Return(nil, errs.ErrNothingToRedo).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Nothing to redo")
	})
}

// ================================================================================
// TestHistory
// ================================================================================

func (s *CommandHandlerTestSuite) TestHistory() {
	url := "/commands/history"
	requestID := uuid.New()

	views := []*queries.CommandView{
		{ID: uuid.New(), RequestID: requestID, Kind: "update_status", Payload: []byte(`{"new_status":"reviewed"}`), Stack: "undo"},
		{ID: uuid.New(), RequestID: requestID, Kind: "assign_technician", Payload: []byte(`{}`), Stack: "undo"},
	}

	s.Run("success: returns commands in execution order", func() {
		s.mockQueries.EXPECT().History(gomock.Any(), s.actorID).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []*resdto.CommandHistoryItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 2)
		s.Equal(views[0].ID, response[0].ID)
		s.Equal("update_status", response[0].Kind)
		s.Equal("assign_technician", response[1].Kind)
	})

	s.Run("success: repeated reads return identical sequences", func() {
		s.mockQueries.EXPECT().History(gomock.Any(), s.actorID).
			Return(views, nil).Times(2)

		first := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		second := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		s.Equal(http.StatusOK, first.Code)
		s.Equal(first.Body.String(), second.Body.String())
	})

	s.Run("error: 500 on query failure", func() {
		s.mockQueries.EXPECT().History(gomock.Any(), s.actorID).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestAvailability
// ================================================================================

func (s *CommandHandlerTestSuite) TestAvailability() {
	url := "/commands/availability"

	s.Run("success: reports both flags", func() {
		s.mockInvoker.EXPECT().CanUndo(gomock.Any(), s.actorID).Return(true, nil).Times(1)
		s.mockInvoker.EXPECT().CanRedo(gomock.Any(), s.actorID).Return(false, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.CommandAvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.CanUndo)
		s.False(response.CanRedo)
	})

	s.Run("error: 500 on storage failure", func() {
		s.mockInvoker.EXPECT().CanUndo(gomock.Any(), s.actorID).
			Return(false, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
