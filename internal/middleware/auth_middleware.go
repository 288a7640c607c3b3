package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"hospitality_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextUserRole = "userRole"
)

// AuthMiddleware creates a Gin middleware for JWT authentication. The token is
// read from the Authorization header, or from the login cookie when the header
// is absent.
func AuthMiddleware(tokens *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "authorization header required"))
			return
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("rejected access token")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "invalid or expired token"))
			return
		}

		// Set user information in the context for downstream handlers
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextUserRole, claims.Role)

		// From here on every log line carries the caller's id.
		ctx := utils.ContextWithLogger(c.Request.Context(), requestBaseLogger(c), strconv.FormatInt(claims.UserID, 10))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func requestBaseLogger(c *gin.Context) zerolog.Logger {
	if v, ok := c.Get(ContextBaseLogger); ok {
		if logger, ok := v.(zerolog.Logger); ok {
			return logger
		}
	}
	return log.Logger
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if cookie, err := c.Cookie(utils.AccessTokenCookie); err == nil && cookie != "" {
			return cookie, true
		}
		return "", false
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// RoleAuthMiddleware creates a Gin middleware for role-based authorization.
// It checks if the user role (from JWT claims) is one of the allowed roles.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleStr := c.GetString(ContextUserRole)
		if roleStr == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "user role not found in token claims"))
			return
		}

		for _, r := range allowedRoles {
			if strings.EqualFold(roleStr, r) {
				c.Next()
				return
			}
		}

		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
			"you do not have permission to access this resource, required roles: "+strings.Join(allowedRoles, ", ")))
	}
}
