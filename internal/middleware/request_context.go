package middleware

import (
	"net/http"

	"hospitality_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// ContextBaseLogger holds the request logger before a user_id is bound.
const ContextBaseLogger = "baseLogger"

// RequestContext gives each request an id and a logger tagged with it. The
// logger starts with user_id=SYSTEM until AuthMiddleware rebinds it.
func RequestContext(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		requestLogger := base.With().Str("request_id", requestID).Logger()
		c.Set(ContextBaseLogger, requestLogger)
		ctx := utils.ContextWithLogger(c.Request.Context(), requestLogger, utils.SystemUserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// Recovery turns a panic into the generic 500 envelope and logs it.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		zerolog.Ctx(c.Request.Context()).Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Msg("recovered from panic")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "internal server error"))
	})
}
