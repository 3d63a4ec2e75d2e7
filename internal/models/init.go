package models

import (
	"github.com/shopworks/storefront/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin 初始化默认管理员账号，返回管理员用户（已存在时返回 nil）
func InitDefaultAdmin(email, password string) (*User, error) {
	if email == "" {
		email = "admin@example.com"
	}

	var count int64
	DB.Model(&User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil, nil
	}

	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: string(hash),
		Status:       "active",
	}
	if err := DB.Create(&admin).Error; err != nil {
		return nil, err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "email", email)
		logger.Warnw("default_admin_password_change_required", "email", email)
	} else {
		logger.Warnw("default_admin_created", "email", email, "password_hidden", true)
	}

	return &admin, nil
}
