package service

import (
	"context"

	"github.com/shopworks/storefront/internal/authz"
	"github.com/shopworks/storefront/internal/cache"
	"github.com/shopworks/storefront/internal/constants"
	"github.com/shopworks/storefront/internal/models"
	"github.com/shopworks/storefront/internal/repository"
)

// UserAdminService 用户管理服务
type UserAdminService struct {
	userRepo repository.UserRepository
	authz    *authz.Service
}

// NewUserAdminService 创建用户管理服务
func NewUserAdminService(userRepo repository.UserRepository, authzService *authz.Service) *UserAdminService {
	return &UserAdminService{
		userRepo: userRepo,
		authz:    authzService,
	}
}

// List 用户列表
func (s *UserAdminService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// Get 用户详情
func (s *UserAdminService) Get(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateStatus 启用或停用用户，停用同时作废已签发 Token
func (s *UserAdminService) UpdateStatus(userID uint, status string) (*models.User, error) {
	if status != constants.UserStatusActive && status != constants.UserStatusDisabled {
		return nil, ErrUserStatusInvalid
	}
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateStatus(user.ID, status); err != nil {
		return nil, err
	}
	_ = cache.DelUserAuthState(context.Background(), user.ID)
	return s.Get(userID)
}

// Roles 查询用户角色
func (s *UserAdminService) Roles(userID uint) ([]string, error) {
	if _, err := s.Get(userID); err != nil {
		return nil, err
	}
	return s.authz.GetUserRoles(userID)
}

// AssignRole 给用户分配角色
func (s *UserAdminService) AssignRole(userID uint, role string) error {
	if _, err := s.Get(userID); err != nil {
		return err
	}
	return s.authz.AssignUserRole(userID, role)
}

// RevokeRole 撤销用户角色
func (s *UserAdminService) RevokeRole(userID uint, role string) error {
	if _, err := s.Get(userID); err != nil {
		return err
	}
	return s.authz.RevokeUserRole(userID, role)
}
