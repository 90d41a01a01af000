package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "finboard/internal/errors"
	"finboard/internal/session"
)

// Context keys set by SessionResolver.
const (
	SessionKey  = "session"
	UserIDKey   = "userID"
	IdentityKey = "identity"
)

// SessionResolver resolves the request's session exactly once and stores it
// in the context. The token is taken from the Authorization header when it
// carries a Bearer token, otherwise from the session cookie.
func SessionResolver(v session.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := session.Resolve(v, tokenFrom(c))
		c.Set(SessionKey, s)
		if s.Status == session.Authenticated && s.Identity != nil {
			c.Set(UserIDKey, s.Identity.UID)
			c.Set(IdentityKey, *s.Identity)
		}
		c.Next()
	}
}

func tokenFrom(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(session.CookieName); err == nil {
		return cookie
	}
	return ""
}

// GetSession returns the session resolved for this request. Requests that
// never passed SessionResolver are treated as pending.
func GetSession(c *gin.Context) session.Session {
	if v, ok := c.Get(SessionKey); ok {
		if s, ok := v.(session.Session); ok {
			return s
		}
	}
	return session.NewPending()
}

// RequireAPI guards JSON routes. A pending session answers 503 so the client
// can retry; an anonymous one answers 401.
func RequireAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch session.Guard(GetSession(c)) {
		case session.Render:
			c.Next()
		case session.ShowLoading:
			abortWithAppError(c, apperrors.ErrSessionPending)
		default:
			abortWithAppError(c, apperrors.ErrUnauthorized)
		}
	}
}

// RequirePage guards server-rendered pages. Anonymous visitors are redirected
// to the login page before any page content is produced; while the session is
// pending the loading handler renders instead of the page.
func RequirePage(loading gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch session.Guard(GetSession(c)) {
		case session.Render:
			c.Next()
		case session.ShowLoading:
			c.Header("Retry-After", "1")
			if loading != nil {
				loading(c)
			} else {
				c.Status(http.StatusServiceUnavailable)
			}
			c.Abort()
		default:
			c.Redirect(http.StatusFound, session.LoginPath)
			c.Abort()
		}
	}
}

func abortWithAppError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
