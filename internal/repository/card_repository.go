package repository

import (
	"errors"

	"github.com/shopworks/storefront/internal/models"

	"gorm.io/gorm"
)

// CardRepository 卡片数据访问接口
type CardRepository interface {
	GetByIDAndUser(id, userID uint) (*models.Card, error)
	ListByUser(userID uint) ([]models.Card, error)
	Create(card *models.Card) error
	Delete(id uint) error
	ClearDefault(userID uint) error
	SetDefault(id uint) error
	WithTx(tx *gorm.DB) *GormCardRepository
}

// GormCardRepository GORM 实现
type GormCardRepository struct {
	db *gorm.DB
}

// NewCardRepository 创建卡片仓库
func NewCardRepository(db *gorm.DB) *GormCardRepository {
	return &GormCardRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCardRepository) WithTx(tx *gorm.DB) *GormCardRepository {
	if tx == nil {
		return r
	}
	return &GormCardRepository{db: tx}
}

// GetByIDAndUser 按用户范围获取卡片
func (r *GormCardRepository) GetByIDAndUser(id, userID uint) (*models.Card, error) {
	var card models.Card
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// ListByUser 获取用户卡片列表（默认卡优先）
func (r *GormCardRepository) ListByUser(userID uint) ([]models.Card, error) {
	var cards []models.Card
	if err := r.db.Where("user_id = ?", userID).Order("is_default DESC, id DESC").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// Create 创建卡片
func (r *GormCardRepository) Create(card *models.Card) error {
	return r.db.Create(card).Error
}

// Delete 删除卡片
func (r *GormCardRepository) Delete(id uint) error {
	return r.db.Delete(&models.Card{}, id).Error
}

// ClearDefault 清除用户当前默认卡标记
func (r *GormCardRepository) ClearDefault(userID uint) error {
	return r.db.Model(&models.Card{}).Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}

// SetDefault 设置默认卡
func (r *GormCardRepository) SetDefault(id uint) error {
	return r.db.Model(&models.Card{}).Where("id = ?", id).Update("is_default", true).Error
}
