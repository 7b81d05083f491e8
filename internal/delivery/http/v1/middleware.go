package v1

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDCtxKey = "user_id"

// HandleAuthMiddleware extracts the bearer token from the
// Authorization header, resolves it to a user and stores the user ID
// in the request context. Protected handlers read the ID from there
// and pass it explicitly to the services. Any failure aborts with 401.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Warn().Msg("authorization header required")
		abort(c, newUnauthorizedError("authorization header required"))
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Warn().Msg("invalid authorization header")
		abort(c, newUnauthorizedError("invalid authorization header"))
		return
	}

	user, err := h.auth.Resolve(c, parts[1])
	if err != nil {
		h.logger.Warn().Msg("failed to resolve token")
		abort(c, newUnauthorizedError("invalid or expired token"))
		return
	}

	c.Set(userIDCtxKey, user.ID)
	c.Next()
}

func userIDFromContext(c *gin.Context) (int64, bool) {
	value, exists := c.Get(userIDCtxKey)
	if !exists {
		return 0, false
	}
	userID, ok := value.(int64)
	return userID, ok
}
