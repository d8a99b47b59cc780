package api

import (
	"errors"
	"net/http"

	"civicdesk/internal/domain/request"
	reqdto "civicdesk/internal/handler/dto/request"
	resdto "civicdesk/internal/handler/dto/response"
	"civicdesk/internal/handler/middleware"
	"civicdesk/internal/pkg/errs"
	"civicdesk/internal/usecase"
	"civicdesk/internal/usecase/queries"
	"civicdesk/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type CommandHandler struct {
	invoker        usecase.CommandInvoker
	commandQueries queries.CommandQueries
}

func NewCommandHandler(invoker usecase.CommandInvoker, commandQueries queries.CommandQueries) *CommandHandler {
	return &CommandHandler{
		invoker:        invoker,
		commandQueries: commandQueries,
	}
}

// @Summary Execute command
// @Description Execute a reversible command against a service request
// @Tags commands
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ExecuteCommandRequest true "Command"
// @Success 200 {object} resdto.CommandResultResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /commands/execute [post]
func (h *CommandHandler) Execute(c *gin.Context) {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.ExecuteCommandRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	input := usecase.CommandInput{
		Kind:         shared.CommandKind(req.Kind),
		RequestID:    req.RequestID,
		TechnicianID: req.TechnicianID,
		Notes:        req.Notes,
	}
	if req.NewStatus != nil {
		status := request.Status(*req.NewStatus)
		input.NewStatus = &status
	}

	res, err := h.invoker.Execute(c.Request.Context(), actorID, input)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCommandResult(res))
}

// @Summary Undo last command
// @Description Invert the caller's most recent command
// @Tags commands
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CommandResultResponse
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /commands/undo [post]
func (h *CommandHandler) Undo(c *gin.Context) {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	res, err := h.invoker.Undo(c.Request.Context(), actorID)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCommandResult(res))
}

// @Summary Redo last undone command
// @Description Re-apply the caller's most recently undone command
// @Tags commands
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CommandResultResponse
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /commands/redo [post]
func (h *CommandHandler) Redo(c *gin.Context) {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	res, err := h.invoker.Redo(c.Request.Context(), actorID)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCommandResult(res))
}

// @Summary Command history
// @Description List the caller's executed commands in execution order
// @Tags commands
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.CommandHistoryItemResponse
// @Failure 401 {object} map[string]string
// @Router /commands/history [get]
func (h *CommandHandler) History(c *gin.Context) {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.commandQueries.History(c.Request.Context(), actorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.CommandHistoryItemResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromCommandView(v)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Command availability
// @Description Report whether the caller currently has anything to undo or redo
// @Tags commands
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CommandAvailabilityResponse
// @Failure 401 {object} map[string]string
// @Router /commands/availability [get]
func (h *CommandHandler) Availability(c *gin.Context) {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	canUndo, err := h.invoker.CanUndo(c.Request.Context(), actorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	canRedo, err := h.invoker.CanRedo(c.Request.Context(), actorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.CommandAvailabilityResponse{
		CanUndo: canUndo,
		CanRedo: canRedo,
	})
}

func (h *CommandHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Service request not found",
		})
	case errors.Is(err, errs.ErrUndoNotPossible):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Undo not possible from the current status",
		})
	case errors.Is(err, errs.ErrNothingToUndo):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Nothing to undo",
		})
	case errors.Is(err, errs.ErrNothingToRedo):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Nothing to redo",
		})
	case errors.Is(err, errs.ErrIllegalTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Illegal status transition",
		})
	case errors.Is(err, errs.ErrUnknownState):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown status",
		})
	case errors.Is(err, errs.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Domain validation failed",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
