package models

import (
	"time"

	"gorm.io/gorm"
)

// Card 支付卡片（仅存模拟 token 与末四位，不落盘完整卡号）
type Card struct {
	ID        uint           `gorm:"primarykey" json:"id"`             // 主键
	UserID    uint           `gorm:"index;not null" json:"user_id"`    // 用户ID
	Brand     string         `gorm:"not null" json:"brand"`            // 卡品牌
	Last4     string         `gorm:"type:varchar(4);not null" json:"last4"` // 卡号末四位
	ExpMonth  int            `gorm:"not null" json:"exp_month"`        // 过期月份
	ExpYear   int            `gorm:"not null" json:"exp_year"`         // 过期年份
	Token     string         `gorm:"uniqueIndex;not null" json:"-"`    // 模拟 tokenization 结果
	IsDefault bool           `gorm:"not null;default:false" json:"is_default"` // 是否默认卡
	CreatedAt time.Time      `gorm:"index" json:"created_at"`          // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                       // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                   // 软删除时间
}

// TableName 指定表名
func (Card) TableName() string {
	return "cards"
}
