package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "painel/internal/errors"
	"painel/internal/models"
	"painel/internal/services"
)

// GoalHandler handles goal-related requests.
type GoalHandler struct {
	goalService services.GoalServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// UpdateGoalRequest represents the request payload for changing a target.
type UpdateGoalRequest struct {
	Value *Amount `json:"value" binding:"required" swaggertype:"number"`
}

// GetGoals handles listing the goal of every category
// @Summary     List goals
// @Tags        goals
// @Produce     json
// @Success     200 {array}  models.Goal "Goals"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
	goals, err := h.goalService.GetGoals(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// UpdateGoal handles changing the target of one category
// @Summary     Update goal
// @Description Set the revenue target of a category. Celebrations already shown stay recorded.
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       category path string            true "Service category label"
// @Param       request  body UpdateGoalRequest true "New target"
// @Success     200 {object} models.Goal "Goal updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     503 {object} ErrorResponse "Storage unavailable"
// @Router      /goals/{category} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	category, ok := models.ParseCategory(c.Param("category"))
	if !ok {
		respondWithError(c, apperrors.ErrInvalidCategory)
		return
	}

	var req UpdateGoalRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), category, req.Value.Decimal)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}
