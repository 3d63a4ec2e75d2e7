package models

import (
	"time"

	"gorm.io/gorm"
)

// Promotion 折扣码
type Promotion struct {
	ID        uint           `gorm:"primarykey" json:"id"`                     // 主键
	Code      string         `gorm:"uniqueIndex;not null" json:"code"`         // 折扣码
	Type      string         `gorm:"not null" json:"type"`                     // 类型（fixed/percent）
	Value     Money          `gorm:"type:decimal(20,2);not null" json:"value"` // 数值（固定金额/百分比）
	StartsAt  *time.Time     `gorm:"index" json:"starts_at"`                   // 生效时间
	EndsAt    *time.Time     `gorm:"index" json:"ends_at"`                     // 失效时间
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`   // 是否启用
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                  // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                           // 软删除时间
}

// TableName 指定表名
func (Promotion) TableName() string {
	return "promotions"
}

// IsRunning 判断折扣码当前是否处于生效窗口
func (p *Promotion) IsRunning(now time.Time) bool {
	if p == nil || !p.IsActive {
		return false
	}
	if p.StartsAt != nil && p.StartsAt.After(now) {
		return false
	}
	if p.EndsAt != nil && p.EndsAt.Before(now) {
		return false
	}
	return true
}
