package models

import (
	"time"

	"gorm.io/gorm"
)

// Promo 促销横幅内容；同一时刻至多一条 IsActive=true
type Promo struct {
	ID           uint           `gorm:"primarykey" json:"id"`                 // 主键
	Title        string         `gorm:"not null" json:"title"`                // 标题
	Description  string         `json:"description"`                          // 描述
	DiscountText string         `gorm:"type:varchar(120)" json:"discount_text"` // 折扣文案
	Code         string         `gorm:"type:varchar(60)" json:"code"`         // 关联优惠码
	Image        string         `gorm:"type:varchar(500)" json:"image"`       // 配图
	ExpiresAt    *time.Time     `gorm:"index" json:"expires_at"`              // 展示截止时间
	IsActive     bool           `gorm:"default:false;index" json:"is_active"` // 是否激活
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                           // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间
}

// TableName 指定表名
func (Promo) TableName() string {
	return "promos"
}
