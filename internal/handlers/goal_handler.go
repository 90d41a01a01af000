package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"finboard/internal/dashboard"
	apperrors "finboard/internal/errors"
	"finboard/internal/models"
	"finboard/internal/services"
)

// GoalHandler handles savings goal requests.
type GoalHandler struct {
	goalService  services.GoalServicer
	auditService services.AuditServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer, auditService services.AuditServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService, auditService: auditService}
}

// GoalRequest represents the request payload for creating or editing a goal.
type GoalRequest struct {
	Name          string  `json:"name" binding:"required,not_blank,max=100"`
	Category      string  `json:"category" binding:"max=50"`
	TargetAmount  float64 `json:"target_amount" binding:"gte=0"`
	CurrentAmount float64 `json:"current_amount" binding:"gte=0"`
}

func (r GoalRequest) input() services.GoalInput {
	return services.GoalInput{
		Name:          r.Name,
		Category:      r.Category,
		TargetAmount:  r.TargetAmount,
		CurrentAmount: r.CurrentAmount,
	}
}

// GoalResponse is a goal with its derived progress.
type GoalResponse struct {
	models.SavingsGoal
	Progress      float64 `json:"progress"`
	ProgressLabel string  `json:"progress_label"`
}

func newGoalResponse(g models.SavingsGoal) GoalResponse {
	return GoalResponse{SavingsGoal: g, Progress: g.Progress(), ProgressLabel: g.ProgressLabel()}
}

func newGoalResponses(goals []models.SavingsGoal) []GoalResponse {
	out := make([]GoalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, newGoalResponse(g))
	}
	return out
}

// ListGoals handles listing the caller's goals.
// @Summary     List savings goals
// @Description Get all savings goals of the authenticated user with their progress
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} []GoalResponse "Goals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [get]
func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goals, err := h.goalService.ListGoals(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": newGoalResponses(goals)})
}

// GetGoal handles retrieving one goal.
// @Summary     Get savings goal
// @Description Get one savings goal of the authenticated user
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     200 {object} GoalResponse "Goal"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.GetGoal(c.Request.Context(), userID, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": newGoalResponse(*goal)})
}

// CreateGoal handles creating a goal. The created record is returned so the
// client can add it to its list without refetching.
// @Summary     Create savings goal
// @Description Create a savings goal for the authenticated user
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body GoalRequest true "Goal details"
// @Success     201 {object} GoalResponse "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), userID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, "CREATE_GOAL", "savings_goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"name": goal.Name, "target_amount": goal.TargetAmount})

	c.JSON(http.StatusCreated, gin.H{"goal": newGoalResponse(*goal)})
}

// UpdateGoal handles editing a goal and returns the stored record.
// @Summary     Update savings goal
// @Description Edit name, category or amounts of a savings goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string      true "Goal ID"
// @Param       request body GoalRequest true "Goal details"
// @Success     200 {object} GoalResponse "Goal updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), userID, goalID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, "UPDATE_GOAL", "savings_goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"name": goal.Name, "target_amount": goal.TargetAmount, "current_amount": goal.CurrentAmount})

	c.JSON(http.StatusOK, gin.H{"goal": newGoalResponse(*goal)})
}

// DeleteGoal handles deleting a goal. The request must carry confirm=true;
// on success the refreshed list is returned, or left out when re-reading it
// failed.
// @Summary     Delete savings goal
// @Description Delete a savings goal after confirmation and return the refreshed list; "goals" is omitted when the list could not be re-read
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id      path  string true "Goal ID"
// @Param       confirm query bool   true "Must be true"
// @Success     200 {object} map[string]interface{} "Message and remaining goals"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     428 {object} ErrorResponse "Confirmation required"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var (
		goals     []models.SavingsGoal
		refreshed bool
	)
	list := dashboard.NewGoalList(h.goalService, func(ctx context.Context) error {
		fetched, err := h.goalService.ListGoals(ctx, userID)
		if err != nil {
			return err
		}
		goals, refreshed = fetched, true
		return nil
	})

	notice, err := list.Delete(c.Request.Context(), userID, goalID, c.Query("confirm") == "true")
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, "DELETE_GOAL", "savings_goal", goalID, c.ClientIP(), nil)

	// The goal is gone either way; without a refreshed list the client must
	// not be handed an empty one to replace its own with.
	body := gin.H{"message": notice.Description}
	if refreshed {
		body["goals"] = newGoalResponses(goals)
	}
	c.JSON(http.StatusOK, body)
}
