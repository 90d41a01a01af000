package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"

	"finboard/internal/logger"
	"finboard/internal/models"
	"finboard/internal/session"
)

// DefaultBootstrapMemory is how many bootstrapped uids BootstrapProfile
// remembers. A forgotten uid is bootstrapped again on its next request, which
// leaves an existing profile untouched.
const DefaultBootstrapMemory = 10000

// ProfileBootstrapper creates the default profile of a signed-in user.
type ProfileBootstrapper interface {
	Bootstrap(ctx context.Context, id session.Identity) (*models.UserProfile, bool, error)
}

// BootstrapProfile makes sure every authenticated user has a profile,
// remembering up to DefaultBootstrapMemory uids.
func BootstrapProfile(b ProfileBootstrapper) gin.HandlerFunc {
	return BootstrapProfileWithLimit(b, DefaultBootstrapMemory)
}

// BootstrapProfileWithLimit runs the bootstrapper once per uid while the uid
// is among the limit most recently seen. A failure is logged, the request
// carries on, and the uid is retried on its next request.
func BootstrapProfileWithLimit(b ProfileBootstrapper, limit int) gin.HandlerFunc {
	if limit <= 0 {
		limit = DefaultBootstrapMemory
	}
	seen, err := lru.New[string, struct{}](limit)
	if err != nil {
		panic(err) // unreachable: limit is positive
	}

	return func(c *gin.Context) {
		s := GetSession(c)
		if s.Status != session.Authenticated || s.Identity == nil {
			c.Next()
			return
		}
		uid := s.Identity.UID

		if _, done := seen.Get(uid); !done {
			if _, created, err := b.Bootstrap(c.Request.Context(), *s.Identity); err != nil {
				logger.Get().Warnw("profile bootstrap failed", "error", err, "user_id", uid)
			} else {
				seen.Add(uid, struct{}{})
				if created {
					logger.Get().Infow("bootstrapped profile", "user_id", uid)
				}
			}
		}
		c.Next()
	}
}
