package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"hospitality_backend/internal/middleware"
	"hospitality_backend/internal/services"
	"hospitality_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// respondServiceError maps a service error kind to its HTTP status. Only the
// caller-safe message reaches the client; internal failures answer with the
// generic envelope and their detail goes to the log.
func respondServiceError(c *gin.Context, err error, logMsg string) {
	logger := zerolog.Ctx(c.Request.Context())

	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		utils.LogError(c.Request.Context(), err, logMsg)
		utils.RespondInternalError(c)
		return
	}

	var status int
	var code string
	switch {
	case errors.Is(svcErr.Kind(), services.ErrValidation):
		status, code = http.StatusBadRequest, utils.ErrCodeValidationFailed
	case errors.Is(svcErr.Kind(), services.ErrDomain):
		status, code = http.StatusBadRequest, utils.ErrCodeBadRequest
	case errors.Is(svcErr.Kind(), services.ErrNotFound):
		status, code = http.StatusNotFound, utils.ErrCodeNotFound
	case errors.Is(svcErr.Kind(), services.ErrAuthentication):
		status, code = http.StatusUnauthorized, utils.ErrCodeUnauthorized
	case errors.Is(svcErr.Kind(), services.ErrAuthorization):
		status, code = http.StatusForbidden, utils.ErrCodeForbidden
	case errors.Is(svcErr.Kind(), services.ErrConflict):
		status, code = http.StatusConflict, utils.ErrCodeConflict
	default:
		utils.LogError(c.Request.Context(), err, logMsg, map[string]interface{}{"detail": svcErr.Detail()})
		utils.RespondInternalError(c)
		return
	}

	logger.Warn().Str("detail", svcErr.Detail()).Int("status", status).Msg(logMsg)
	utils.RespondWithError(c, utils.NewAPIError(status, code, svcErr.Error()))
}

// actorFrom reads the caller set by middleware.AuthMiddleware.
func actorFrom(c *gin.Context) services.Actor {
	return services.Actor{
		UserID:   c.GetInt64(middleware.ContextUserID),
		Username: c.GetString(middleware.ContextUsername),
		Role:     c.GetString(middleware.ContextUserRole),
	}
}

// pathID parses a positive identifier path parameter. On failure the 400 is
// already written and ok is false.
func pathID(c *gin.Context, name, label string) (int64, bool) {
	id, err := utils.StrToPositiveID(c.Param(name))
	if err != nil {
		utils.RespondValidationFailed(c, "invalid "+label+" id")
		return 0, false
	}
	return id, true
}

// bindJSON decodes the body into req. On failure the 400 is already written.
func bindJSON(c *gin.Context, req interface{}, op string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg(op + ": failed to bind JSON")
		utils.RespondValidationFailed(c, "invalid request payload")
		return false
	}
	return true
}

// pagination reads ?page= and ?page_size=, falling back to 1 and 10.
func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
