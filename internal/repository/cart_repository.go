package repository

import (
	"errors"

	"github.com/shopworks/storefront/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByUser(userID uint) (*models.Cart, error)
	GetOrCreateByUser(userID uint) (*models.Cart, error)
	GetItem(cartID, itemID uint) (*models.CartItem, error)
	GetItemByProduct(cartID, productID uint) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItemQuantity(itemID uint, quantity int) error
	DeleteItem(itemID uint) error
	ClearItems(cartID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetByUser 获取用户购物车（含购物车项与商品），不存在时返回 nil
func (r *GormCartRepository) GetByUser(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.id ASC")
	}).Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetOrCreateByUser 获取用户购物车，不存在时懒创建
func (r *GormCartRepository) GetOrCreateByUser(userID uint) (*models.Cart, error) {
	cart, err := r.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	cart = &models.Cart{UserID: userID}
	if err := r.db.Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// GetItem 按购物车范围获取购物车项
func (r *GormCartRepository) GetItem(cartID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Preload("Product").Where("cart_id = ? AND id = ?", cartID, itemID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItemByProduct 按商品获取购物车项
func (r *GormCartRepository) GetItemByProduct(cartID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem 新增购物车项
func (r *GormCartRepository) CreateItem(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateItemQuantity 更新购物车项数量（价格快照保持不变）
func (r *GormCartRepository) UpdateItemQuantity(itemID uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).Where("id = ?", itemID).Update("quantity", quantity).Error
}

// DeleteItem 删除购物车项
func (r *GormCartRepository) DeleteItem(itemID uint) error {
	return r.db.Delete(&models.CartItem{}, itemID).Error
}

// ClearItems 清空购物车项
func (r *GormCartRepository) ClearItems(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
