package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                        // 主键
	OrderNo        string         `gorm:"uniqueIndex;not null" json:"order_no"`                        // 订单编号
	UserID         uint           `gorm:"index;not null" json:"user_id"`                               // 用户ID
	Status         string         `gorm:"index;not null" json:"status"`                                // 订单状态
	PaymentMethod  string         `gorm:"not null" json:"payment_method"`                              // 支付方式（card/cod）
	PaymentStatus  string         `gorm:"index;not null" json:"payment_status"`                        // 支付状态
	CardID         *uint          `gorm:"index" json:"card_id,omitempty"`                              // 使用的卡片ID
	OriginalAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"original_amount"` // 折扣前金额
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 优惠金额
	TotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`   // 实付金额
	PromotionID    *uint          `gorm:"index" json:"promotion_id,omitempty"`                         // 折扣码ID
	PaidAt         *time.Time     `gorm:"index" json:"paid_at"`                                        // 支付时间
	CancelledAt    *time.Time     `gorm:"index" json:"cancelled_at"`                                   // 取消时间
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                     // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
