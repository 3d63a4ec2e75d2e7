package public

import (
	"errors"
	"time"

	"github.com/shopworks/storefront/internal/http/response"
	"github.com/shopworks/storefront/internal/models"
	"github.com/shopworks/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UserResponse 用户信息响应
type UserResponse struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func buildUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Status:      user.Status,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

func buildAuthPayload(user *models.User, token string, expiresAt time.Time) gin.H {
	return gin.H{
		"user":       buildUserResponse(user),
		"token":      token,
		"expires_at": expiresAt.Unix(),
	}
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, token, expiresAt, err := h.AuthService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "invalid email address", nil)
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "password too short", nil)
		case errors.Is(err, service.ErrEmailExists):
			respondError(c, response.CodeConflict, "email already registered", nil)
		default:
			respondError(c, response.CodeInternal, "register failed", err)
		}
		return
	}
	response.Success(c, buildAuthPayload(user, token, expiresAt))
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "invalid email or password", nil)
		case errors.Is(err, service.ErrUserDisabled):
			respondError(c, response.CodeForbidden, "account disabled", nil)
		default:
			respondError(c, response.CodeInternal, "login failed", err)
		}
		return
	}
	response.Success(c, buildAuthPayload(user, token, expiresAt))
}

// Logout 用户登出
func (h *Handler) Logout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.AuthService.Logout(uid); err != nil {
		respondError(c, response.CodeInternal, "logout failed", err)
		return
	}
	response.Success(c, nil)
}

// Profile 获取当前用户资料
func (h *Handler) Profile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.AuthService.Profile(uid)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, response.CodeNotFound, "user not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "fetch profile failed", err)
		return
	}
	response.Success(c, buildUserResponse(user))
}

// UpdateProfileRequest 更新资料请求
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateProfile 更新当前用户资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	user, err := h.AuthService.UpdateProfile(uid, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidName):
			respondError(c, response.CodeBadRequest, "name is required", nil)
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, response.CodeNotFound, "user not found", nil)
		default:
			respondError(c, response.CodeInternal, "update profile failed", err)
		}
		return
	}
	response.Success(c, buildUserResponse(user))
}

// ChangePassword 修改密码
func (h *Handler) ChangePassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.AuthService.ChangePassword(uid, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "password invalid", nil)
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, response.CodeNotFound, "user not found", nil)
		default:
			respondError(c, response.CodeInternal, "change password failed", err)
		}
		return
	}
	response.Success(c, nil)
}
