package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finboard/internal/errors"
	"finboard/internal/logger"
	"finboard/internal/models"
	"finboard/internal/services"
	"finboard/internal/session"
)

// TokenIssuer signs session tokens for signed-in users.
type TokenIssuer interface {
	Issue(id session.Identity) (string, time.Time, error)
}

// AuthHandler handles the built-in credential provider.
type AuthHandler struct {
	accountService services.AccountServicer
	profileService services.ProfileServicer
	auditService   services.AuditServicer
	tokens         TokenIssuer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(accountService services.AccountServicer, profileService services.ProfileServicer, auditService services.AuditServicer, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{
		accountService: accountService,
		profileService: profileService,
		auditService:   auditService,
		tokens:         tokens,
	}
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Name     string `json:"name" binding:"max=100"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the authentication response with token
type AuthResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      session.Identity `json:"user"`
}

func identityOf(account *models.Account) session.Identity {
	return session.Identity{
		UID:      account.UID,
		Email:    account.Email,
		Name:     account.DisplayName,
		PhotoURL: account.PhotoURL,
	}
}

// signIn issues a token for account and bootstraps its profile. A bootstrap
// failure does not fail the sign-in; the middleware retries it on the next
// request.
func signIn(ctx context.Context, tokens TokenIssuer, profiles services.ProfileServicer, account *models.Account) (*AuthResponse, error) {
	id := identityOf(account)
	token, expires, err := tokens.Issue(id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if _, _, err := profiles.Bootstrap(ctx, id); err != nil {
		logger.Get().Warnw("profile bootstrap after sign-in failed", "error", err, "user_id", id.UID)
	}
	return &AuthResponse{Token: token, ExpiresAt: expires, User: id}, nil
}

// Register handles account registration
// @Summary     Register a new account
// @Description Register with email and password; the response carries a session token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "Registration data"
// @Success     201 {object} AuthResponse "Account registered and token issued"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Email already registered"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp, err := signIn(c.Request.Context(), h.tokens, h.profileService, account)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), account.UID, "REGISTER", "account", account.UID, c.ClientIP(), nil)

	c.JSON(http.StatusCreated, resp)
}

// Login handles account login
// @Summary     Login
// @Description Authenticate with email and password and get a session token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Login credentials"
// @Success     200 {object} AuthResponse "Authenticated and token issued"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     423 {object} ErrorResponse "Account locked"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.AttemptLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp, err := signIn(c.Request.Context(), h.tokens, h.profileService, account)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), account.UID, "LOGIN", "account", account.UID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, resp)
}

// SessionResponse reports the resolved session.
type SessionResponse struct {
	Status string            `json:"status"`
	User   *session.Identity `json:"user"`
}

// GetSession reports the session state of the caller
// @Summary     Get session
// @Description Report whether the caller is pending, authenticated or anonymous
// @Tags        auth
// @Produce     json
// @Success     200 {object} SessionResponse "Resolved session"
// @Router      /session [get]
func (h *AuthHandler) GetSession(c *gin.Context) {
	s := getSession(c)
	c.JSON(http.StatusOK, SessionResponse{Status: s.Status.String(), User: s.Identity})
}
