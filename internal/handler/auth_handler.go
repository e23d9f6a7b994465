package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/phone_price_api/internal/service"
	"github.com/GTDGit/phone_price_api/internal/utils"
)

type authService interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
}

// attemptLimiter throttles failed login attempts per client IP.
type attemptLimiter interface {
	Allow(ip string) bool
}

type AuthHandler struct {
	authService authService
	limiter     attemptLimiter
}

func NewAuthHandler(authService authService, limiter attemptLimiter) *AuthHandler {
	return &AuthHandler{authService: authService, limiter: limiter}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.loginFailed(c, err)
		return
	}

	utils.Success(c, 200, "Login successful", res)
}

func (h *AuthHandler) loginFailed(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrInvalidCredentials), errors.Is(err, utils.ErrAccountInactive):
		if h.limiter != nil && !h.limiter.Allow(c.ClientIP()) {
			utils.Error(c, 429, "TOO_MANY_REQUESTS", "Too many failed login attempts")
			return
		}
		if errors.Is(err, utils.ErrAccountInactive) {
			utils.Error(c, 403, "ACCOUNT_INACTIVE", "Account is inactive")
			return
		}
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
	default:
		respondError(c, err, "Login failed")
	}
}
