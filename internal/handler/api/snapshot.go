package api

import (
	"errors"
	"net/http"

	reqdto "civicdesk/internal/handler/dto/request"
	resdto "civicdesk/internal/handler/dto/response"
	"civicdesk/internal/handler/middleware"
	"civicdesk/internal/pkg/errs"
	"civicdesk/internal/usecase"
	"civicdesk/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SnapshotHandler struct {
	snapshots       usecase.SnapshotCommands
	snapshotQueries queries.SnapshotQueries
}

func NewSnapshotHandler(snapshots usecase.SnapshotCommands, snapshotQueries queries.SnapshotQueries) *SnapshotHandler {
	return &SnapshotHandler{
		snapshots:       snapshots,
		snapshotQueries: snapshotQueries,
	}
}

// @Summary Create snapshot
// @Description Capture the current state of a service request
// @Tags snapshots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSnapshotRequest true "Snapshot target"
// @Success 201 {object} resdto.SnapshotMetaResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /snapshots [post]
func (h *SnapshotHandler) CreateSnapshot(c *gin.Context) {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateSnapshotRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	meta, err := h.snapshots.Create(c.Request.Context(), req.RequestID, req.Label, actorID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Service request not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromSnapshotMetaView(meta))
}

// @Summary List snapshots
// @Description List snapshot metadata for one service request
// @Tags snapshots
// @Produce json
// @Security BearerAuth
// @Param request_id query string true "Request ID"
// @Success 200 {array} resdto.SnapshotMetaResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /snapshots [get]
func (h *SnapshotHandler) ListSnapshots(c *gin.Context) {
	requestID, err := uuid.Parse(c.Query("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request ID format",
		})
		return
	}

	views, err := h.snapshotQueries.ListByRequest(c.Request.Context(), requestID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.SnapshotMetaResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromSnapshotMetaView(v)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Restore snapshot
// @Description Overwrite a service request with a snapshot's captured state
// @Tags snapshots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RestoreSnapshotRequest true "Snapshot key"
// @Success 200 {object} resdto.RequestResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /snapshots/restore [post]
func (h *SnapshotHandler) RestoreSnapshot(c *gin.Context) {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.RestoreSnapshotRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	restored, err := h.snapshots.Restore(c.Request.Context(), req.Key, actorID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrSnapshotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Snapshot not found",
			})
		case errors.Is(err, errs.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Service request not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRecord(restored))
}

// @Summary Delete snapshot
// @Description Remove a stored snapshot
// @Tags snapshots
// @Produce json
// @Security BearerAuth
// @Param key path string true "Snapshot key"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /snapshots/{key} [delete]
func (h *SnapshotHandler) DeleteSnapshot(c *gin.Context) {
	key := c.Param("key")

	if err := h.snapshots.Remove(c.Request.Context(), key); err != nil {
		switch {
		case errors.Is(err, errs.ErrSnapshotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Snapshot not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
