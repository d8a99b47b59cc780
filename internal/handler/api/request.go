package api

import (
	"errors"
	"net/http"

	"civicdesk/internal/domain/request"
	reqdto "civicdesk/internal/handler/dto/request"
	resdto "civicdesk/internal/handler/dto/response"
	"civicdesk/internal/handler/middleware"
	"civicdesk/internal/infra"
	"civicdesk/internal/pkg/errs"
	"civicdesk/internal/usecase"
	"civicdesk/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RequestHandler struct {
	lifecycle      usecase.LifecycleCommands
	requestQueries queries.RequestQueries
}

func NewRequestHandler(lifecycle usecase.LifecycleCommands, requestQueries queries.RequestQueries) *RequestHandler {
	return &RequestHandler{
		lifecycle:      lifecycle,
		requestQueries: requestQueries,
	}
}

// @Summary Create service request
// @Description Submit a new service request; it enters the pending status
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateServiceRequestRequest true "Service request"
// @Success 201 {object} resdto.RequestResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /requests [post]
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateServiceRequestRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params := usecase.CreateRequestParams{
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Priority:    req.Priority,
		RequesterID: actorID,
	}

	created, err := h.lifecycle.CreateRequest(c.Request.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Domain validation failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRecord(created))
}

// @Summary Get service request
// @Description Get a service request with its full update trail
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.RequestDetailResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /requests/{id} [get]
func (h *RequestHandler) GetRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request ID format",
		})
		return
	}

	detail, err := h.requestQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Service request not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRequestDetailView(detail))
}

// @Summary List service requests
// @Description List service requests, optionally filtered by status
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Success 200 {array} resdto.RequestResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /requests [get]
func (h *RequestHandler) ListRequests(c *gin.Context) {
	var status *string
	if s := c.Query("status"); s != "" {
		if !request.Status(s).IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown status",
			})
			return
		}
		status = &s
	}

	views, err := h.requestQueries.ListByStatus(c.Request.Context(), status, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.RequestResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromRequestView(v)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Transition service request
// @Description Move a request to a new status through the validated path
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.TransitionRequest true "Target status"
// @Success 200 {object} resdto.RequestResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /requests/{id}/transition [post]
func (h *RequestHandler) Transition(c *gin.Context) {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request ID format",
		})
		return
	}

	var req reqdto.TransitionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	updated, err := h.lifecycle.Transition(c.Request.Context(), id, request.Status(req.NewStatus), actorID, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Service request not found",
			})
		case errors.Is(err, errs.ErrUnknownState):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown status",
			})
		case errors.Is(err, errs.ErrIllegalTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Illegal status transition",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRecord(updated))
}
