//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"civicdesk/internal/domain/request"
	"civicdesk/internal/domain/user"
	"civicdesk/internal/handler/api"
	resdto "civicdesk/internal/handler/dto/response"
	"civicdesk/internal/pkg/errs"
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

type SnapshotHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockSnapshots *usecasemock.MockSnapshotCommands
	mockQueries   *queriesmock.MockSnapshotQueries
	handler       *api.SnapshotHandler
	actorID       uuid.UUID
}

func (s *SnapshotHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockSnapshots = usecasemock.NewMockSnapshotCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSnapshotQueries(s.mockCtrl)
	s.handler = api.NewSnapshotHandler(s.mockSnapshots, s.mockQueries)
	s.actorID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("actor_id", s.actorID)
		c.Set("actor_role", user.RoleAdmin)
		c.Next()
	}

	s.router.POST("/snapshots", authMiddleware, s.handler.CreateSnapshot)
	s.router.GET("/snapshots", authMiddleware, s.handler.ListSnapshots)
	s.router.POST("/snapshots/restore", authMiddleware, s.handler.RestoreSnapshot)
	s.router.DELETE("/snapshots/:key", authMiddleware, s.handler.DeleteSnapshot)
}

func (s *SnapshotHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSnapshotHandlerSuite(t *testing.T) {
	suite.Run(t, new(SnapshotHandlerTestSuite))
}

// ================================================================================
// TestCreateSnapshot
// ================================================================================

func (s *SnapshotHandlerTestSuite) TestCreateSnapshot() {
	url := "/snapshots"
	requestID := uuid.New()
	reqBody := map[string]any{"request_id": requestID.String(), "label": "before escalation"}

	s.Run("success: returns 201 Created with snapshot metadata", func() {
		meta := &queries.SnapshotMetaView{
			Key:       requestID.String() + "_1748768400000000000",
			RequestID: requestID,
			Label:     "before escalation",
			CreatedAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		}
		s.mockSnapshots.EXPECT().Create(gomock.Any(), requestID, "before escalation", s.actorID).
			Return(meta, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.SnapshotMetaResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(meta.Key, response.Key)
		s.Equal(requestID, response.RequestID)
		s.Equal("before escalation", response.Label)
	})

	s.Run("error: 400 Bad Request on malformed body", func() {
		malformed := map[string]any{"request_id": 42}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, malformed, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 404 Not Found for missing request", func() {
		s.mockSnapshots.EXPECT().Create(gomock.Any(), requestID, "before escalation", s.actorID).
			Return(nil, errs.Mark(errs.New("failed to load request"), errs.ErrRequestNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Service request not found")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})
}

// ================================================================================
// TestListSnapshots
// ================================================================================

func (s *SnapshotHandlerTestSuite) TestListSnapshots() {
	requestID := uuid.New()
	url := "/snapshots?request_id=" + requestID.String()

	s.Run("success: returns snapshot metadata for the request", func() {
		views := []*queries.SnapshotMetaView{
			{Key: requestID.String() + "_1", RequestID: requestID, Label: "first"},
			{Key: requestID.String() + "_2", RequestID: requestID, Label: "second"},
		}
		s.mockQueries.EXPECT().ListByRequest(gomock.Any(), requestID).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []*resdto.SnapshotMetaResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.Equal("first", response[0].Label)
	})

	s.Run("error: 400 Bad Request for invalid request_id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/snapshots?request_id=invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request ID format")
	})

	s.Run("error: 500 Internal Server Error on query failure", func() {
		s.mockQueries.EXPECT().ListByRequest(gomock.Any(), requestID).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestRestoreSnapshot
// ================================================================================

func (s *SnapshotHandlerTestSuite) TestRestoreSnapshot() {
	url := "/snapshots/restore"
	key := uuid.New().String() + "_1748768400000000000"
	reqBody := map[string]any{"key": key}

	s.Run("success: returns 200 OK with restored record", func() {
		restored := builder.NewServiceRequestBuilder().BuildRecord(request.StatusPending)
		s.mockSnapshots.EXPECT().Restore(gomock.Any(), key, s.actorID).
			Return(&restored, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.RequestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(restored.ID, response.ID)
		s.Equal("pending", response.Status)
	})

	s.Run("error: 400 Bad Request when key is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			restoreError   error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "snapshot not found",
				restoreError:   errs.Mark(errs.New("failed to load snapshot"), errs.ErrSnapshotNotFound),
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Snapshot not found",
			},
			{
				name:           "request not found",
				restoreError:   errs.Mark(errs.New("failed to load request"), errs.ErrRequestNotFound),
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Service request not found",
			},
			{
				name:           "internal server error",
				restoreError:   errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockSnapshots.EXPECT().Restore(gomock.Any(), key, s.actorID).
					Return(nil, tc.restoreError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestDeleteSnapshot
// ================================================================================

func (s *SnapshotHandlerTestSuite) TestDeleteSnapshot() {
	key := uuid.New().String() + "_1748768400000000000"
	url := "/snapshots/" + key

	s.Run("success: returns 204 No Content", func() {
		s.mockSnapshots.EXPECT().Remove(gomock.Any(), key).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 Not Found for unknown key", func() {
		s.mockSnapshots.EXPECT().Remove(gomock.Any(), key).
			Return(errs.Mark(errs.New("failed to load snapshot"), errs.ErrSnapshotNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Snapshot not found")
	})
}
