package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hotline-inc/hotline/internal/domain/user"
	"github.com/hotline-inc/hotline/internal/shared/logger"
	"github.com/hotline-inc/hotline/internal/shared/utils"
)

const (
	// DefaultActorHeader carries the username set by the upstream session layer.
	DefaultActorHeader = "X-Hotline-User"

	// ActorContextKey holds the actor in the gin context.
	ActorContextKey = "actor"
)

type ActorMiddleware struct {
	header string
	logger logger.Interface
}

func NewActorMiddleware(header string, logger logger.Interface) *ActorMiddleware {
	if header == "" {
		header = DefaultActorHeader
	}
	return &ActorMiddleware{header: header, logger: logger}
}

// Header returns the request header the actor is read from.
func (m *ActorMiddleware) Header() string {
	return m.header
}

// RequireActor rejects requests without a usable actor header and stores
// the actor for handlers.
func (m *ActorMiddleware) RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(m.header))
		if raw == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing "+m.header+" header")
			c.Abort()
			return
		}

		actor, err := user.NormalizeUsername(raw)
		if err != nil {
			m.logger.Warnw("rejected actor header", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid "+m.header+" header")
			c.Abort()
			return
		}

		c.Set(ActorContextKey, actor)
		c.Next()
	}
}

// Actor returns the actor stored by RequireActor.
func Actor(c *gin.Context) string {
	return c.GetString(ActorContextKey)
}
