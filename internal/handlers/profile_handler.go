package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finboard/internal/config"
	apperrors "finboard/internal/errors"
	"finboard/internal/models"
	"finboard/internal/services"
)

// ProfileHandler handles profile documents.
type ProfileHandler struct {
	profileService services.ProfileServicer
	auditService   services.AuditServicer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService services.ProfileServicer, auditService services.AuditServicer) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, auditService: auditService}
}

// BudgetRequest is a needs/wants/savings split in percent.
type BudgetRequest struct {
	Needs   float64 `json:"needs" binding:"gte=0,lte=100"`
	Wants   float64 `json:"wants" binding:"gte=0,lte=100"`
	Savings float64 `json:"savings" binding:"gte=0,lte=100"`
}

// UpdateProfileRequest represents the request payload for editing a profile.
// Omitted fields keep their stored value.
type UpdateProfileRequest struct {
	Name      *string        `json:"name" binding:"omitempty,max=100"`
	Salary    *float64       `json:"salary" binding:"omitempty,gte=0"`
	TaxRegime *string        `json:"tax_regime" binding:"omitempty,tax_regime"`
	Budget    *BudgetRequest `json:"budget"`
}

// GetProfile returns the caller's profile
// @Summary     Get profile
// @Description Get the salary, tax regime and budget split of the authenticated user
// @Tags        profile
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.UserProfile "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile edits the caller's profile
// @Summary     Update profile
// @Description Change name, salary, tax regime or budget split. The split must add up to 100.
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateProfileRequest true "Profile fields"
// @Success     200 {object} models.UserProfile "Updated profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.ProfileUpdate{Name: req.Name, Salary: req.Salary}
	changes := map[string]interface{}{}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Salary != nil {
		changes["salary"] = *req.Salary
	}
	if req.TaxRegime != nil {
		regime := models.TaxRegime(*req.TaxRegime)
		update.TaxRegime = &regime
		changes["tax_regime"] = regime
	}
	if req.Budget != nil {
		budget := models.BudgetSplit{Needs: req.Budget.Needs, Wants: req.Budget.Wants, Savings: req.Budget.Savings}
		update.Budget = &budget
		changes["budget"] = budget
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, "UPDATE_PROFILE", "profile", userID, c.ClientIP(), changes)

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// ConfigHandler serves the public client configuration.
type ConfigHandler struct {
	project config.Project
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(project config.Project) *ConfigHandler {
	return &ConfigHandler{project: project}
}

// GetClientConfig returns the identity project values browsers need
// @Summary     Get client configuration
// @Description Public project configuration used by browser clients
// @Tags        config
// @Produce     json
// @Success     200 {object} config.Project "Project configuration"
// @Router      /client-config [get]
func (h *ConfigHandler) GetClientConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.project)
}
