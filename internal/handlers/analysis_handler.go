package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finboard/internal/errors"
	"finboard/internal/services"
)

// AnalysisHandler serves the derived spending analysis and advice.
type AnalysisHandler struct {
	analysisService services.AnalysisServicer
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService services.AnalysisServicer) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// AdviceRequest represents the request payload for asking for advice.
type AdviceRequest struct {
	Question string `json:"question" binding:"max=500"`
}

// GetAnalysis returns the profile and the spending analysis computed from the
// current expenses. Either may be null.
// @Summary     Get spending analysis
// @Description Analyse the authenticated user's expenses against their salary. analysis is null when there are no expenses or the AI service failed.
// @Tags        analysis
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.AnalysisView "Profile and analysis"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analysis [get]
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.analysisService.Analyze(c.Request.Context(), userID))
}

// GetAdvice asks the AI service for personalised advice.
// @Summary     Get personalised advice
// @Description Generate advice from the profile and the current spending analysis
// @Tags        analysis
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AdviceRequest false "Optional question"
// @Success     200 {object} models.Advice "Advice text"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Failure     502 {object} ErrorResponse "Advice unavailable"
// @Router      /advice [post]
func (h *AnalysisHandler) GetAdvice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// An empty body, chunked or not, asks without a question.
	var req AdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	advice, err := h.analysisService.Advise(c.Request.Context(), userID, req.Question)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, advice)
}
