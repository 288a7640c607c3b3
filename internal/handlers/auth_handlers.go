package handlers

import (
	"net/http"
	"time"

	"hospitality_backend/internal/services"
	"hospitality_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
	cookieTTL   time.Duration
}

// NewAuthHandler creates a new AuthHandler. cookieTTL should match the token lifetime.
func NewAuthHandler(as services.AuthService, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: as, cookieTTL: cookieTTL}
}

// Login authenticates a user, returns the access token and also sets it as
// an HttpOnly cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req, "Login") {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Login: error from authService.Login")
		return
	}

	maxAge := int(h.cookieTTL.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.AccessTokenCookie, resp.AccessToken, maxAge, "/", "", true, true)

	utils.RespondWithSuccess(c, http.StatusOK, "login successful", gin.H{
		"access_token": resp.AccessToken,
		"expires_at":   resp.ExpiresAt,
		"user":         resp.User,
	})
}

// ChangePassword rotates the caller's password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req services.ChangePasswordRequest
	if !bindJSON(c, &req, "ChangePassword") {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), actorFrom(c), req); err != nil {
		respondServiceError(c, err, "ChangePassword: error from authService.ChangePassword")
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "password changed successfully", nil)
}

// Me returns the caller's account and staff profile.
func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := h.authService.GetProfile(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondServiceError(c, err, "Me: error from authService.GetProfile")
		return
	}
	utils.RespondWithSuccess(c, http.StatusOK, "profile fetched successfully", gin.H{
		"user":  profile.User,
		"staff": profile.Staff,
	})
}
