// internal/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mittirang/mittirang-backend/internal/config"
	"github.com/mittirang/mittirang-backend/internal/i18n"
	"github.com/mittirang/mittirang-backend/internal/services"
	"github.com/mittirang/mittirang-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
	cookie      config.JWTConfig
}

func NewAuthHandler(authService *services.AuthService, jwtConfig config.JWTConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      jwtConfig,
	}
}

// POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	authResponse, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
			return
		}
		logrus.WithError(err).Error("Login failed")
		utils.InternalErrorResponse(c, "")
		return
	}

	h.setCookie(c, authResponse.AccessToken, authResponse.ExpiresIn)

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyAuthLoginSuccess),
		"admin":      authResponse.Admin,
		"token":      authResponse.AccessToken,
		"token_type": authResponse.TokenType,
		"expires_in": authResponse.ExpiresIn,
		"expires_at": authResponse.ExpiresAt,
	})
}

// POST /v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	// Tokens are stateless; logging out only drops the cookie.
	h.setCookie(c, "", -1)

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthLogoutSuccess),
	})
}

// GET /v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	adminID, exists := utils.GetAdminIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	admin, err := h.authService.GetAdmin(c.Request.Context(), adminID)
	if err != nil {
		if errors.Is(err, services.ErrAdminNotFound) {
			utils.NotFoundResponse(c, i18n.KeyAuthAdminNotFound)
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"admin": admin,
	})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.CookieName, value, maxAge, "/", "", h.cookie.CookieSecure, true)
}
