// ================== internal/features/goals/handler.go ==================
package goals

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/goalpath/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid goal ID", "INVALID_ID")
		return 0, false
	}
	return id, true
}

// ListByUser godoc
// @Summary List goals of a user
// @Tags goals
// @Produce json
// @Param userId path string true "Owning user ID"
// @Success 200 {array} Goal
// @Failure 500 {object} response.ErrorResponse
// @Router /api/goals/user/{userId} [get]
func (h *Handler) ListByUser(c *gin.Context) {
	goals, err := h.service.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, goals)
}

// ListCompleted godoc
// @Summary List completed goals of a user
// @Tags goals
// @Produce json
// @Param userId path string true "Owning user ID"
// @Success 200 {array} Goal
// @Router /api/goals/user/{userId}/completed [get]
func (h *Handler) ListCompleted(c *gin.Context) {
	goals, err := h.service.ListCompleted(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, goals)
}

// ListInProgress godoc
// @Summary List in-progress goals of a user
// @Tags goals
// @Produce json
// @Param userId path string true "Owning user ID"
// @Success 200 {array} Goal
// @Router /api/goals/user/{userId}/in-progress [get]
func (h *Handler) ListInProgress(c *gin.Context) {
	goals, err := h.service.ListInProgress(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, goals)
}

// Create godoc
// @Summary Create a goal
// @Tags goals
// @Accept json
// @Produce json
// @Param request body GoalRequest true "Goal data"
// @Success 200 {object} Goal
// @Failure 400 {object} response.ErrorResponse
// @Router /api/goals [post]
func (h *Handler) Create(c *gin.Context) {
	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	goal, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, goal)
}

// Get godoc
// @Summary Get a goal by ID
// @Tags goals
// @Produce json
// @Param id path int true "Goal ID"
// @Success 200 {object} Goal
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/goals/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	goal, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, goal)
}

// Update godoc
// @Summary Update a goal
// @Description Overwrites title, description, progress and target date
// @Tags goals
// @Accept json
// @Produce json
// @Param id path int true "Goal ID"
// @Param request body GoalRequest true "Goal data"
// @Success 200 {object} Goal
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/goals/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	goal, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, goal)
}

// Delete godoc
// @Summary Delete a goal
// @Tags goals
// @Produce json
// @Param id path int true "Goal ID"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /api/goals/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Message(c, "Goal deleted successfully")
}
