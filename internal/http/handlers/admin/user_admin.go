package admin

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/shopworks/storefront/internal/http/handlers/shared"
	"github.com/shopworks/storefront/internal/http/response"
	"github.com/shopworks/storefront/internal/repository"
	"github.com/shopworks/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// UserStatusRequest 用户状态更新请求
type UserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UserRoleRequest 用户角色变更请求
type UserRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func respondUserError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		respondError(c, response.CodeNotFound, "user not found", nil)
	case errors.Is(err, service.ErrUserStatusInvalid):
		respondError(c, response.CodeBadRequest, "user status invalid", nil)
	default:
		respondError(c, response.CodeInternal, fallbackMsg, err)
	}
}

// ListUsers 用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Status:   strings.TrimSpace(c.Query("status")),
	}
	users, total, err := h.UserAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list users failed", err)
		return
	}
	response.SuccessWithPage(c, users, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// GetUser 用户详情（含角色）
func (h *Handler) GetUser(c *gin.Context) {
	userID, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	user, err := h.UserAdminService.Get(userID)
	if err != nil {
		respondUserError(c, err, "fetch user failed")
		return
	}
	roles, err := h.UserAdminService.Roles(userID)
	if err != nil {
		respondUserError(c, err, "fetch user roles failed")
		return
	}
	response.Success(c, gin.H{
		"user":  user,
		"roles": roles,
	})
}

// UpdateUserStatus 启用或停用用户
func (h *Handler) UpdateUserStatus(c *gin.Context) {
	userID, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	var req UserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	user, err := h.UserAdminService.UpdateStatus(userID, strings.TrimSpace(req.Status))
	if err != nil {
		respondUserError(c, err, "update user status failed")
		return
	}
	response.Success(c, user)
}

// AssignUserRole 分配角色
func (h *Handler) AssignUserRole(c *gin.Context) {
	userID, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	var req UserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.UserAdminService.AssignRole(userID, req.Role); err != nil {
		respondUserError(c, err, "assign role failed")
		return
	}
	response.Success(c, nil)
}

// RevokeUserRole 撤销角色
func (h *Handler) RevokeUserRole(c *gin.Context) {
	userID, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	var req UserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.UserAdminService.RevokeRole(userID, req.Role); err != nil {
		respondUserError(c, err, "revoke role failed")
		return
	}
	response.Success(c, nil)
}
