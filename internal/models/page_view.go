package models

import (
	"time"
)

// PageView 页面访问记录
type PageView struct {
	ID        uint      `gorm:"primarykey" json:"id"`            // 主键
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`  // 用户ID（匿名访问为空）
	PageURL   string    `gorm:"index;not null" json:"page_url"`  // 页面路径
	IPAddress string    `gorm:"type:varchar(64)" json:"ip_address"` // 客户端IP
	UserAgent string    `gorm:"type:varchar(512)" json:"user_agent"` // UA
	CreatedAt time.Time `gorm:"index" json:"created_at"`         // 访问时间
}

// TableName 指定表名
func (PageView) TableName() string {
	return "page_views"
}
