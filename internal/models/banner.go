package models

import (
	"time"

	"gorm.io/gorm"
)

// Banner 轮播图（可同时启用多条，按 SortOrder 排序）
type Banner struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                      // 主键
	Title     string         `gorm:"not null" json:"title"`                                     // 标题
	Subtitle  string         `json:"subtitle"`                                                  // 副标题
	Image     string         `gorm:"type:varchar(500);not null" json:"image"`                   // 主图
	LinkType  string         `gorm:"type:varchar(20);not null;default:'none'" json:"link_type"` // 跳转类型
	LinkValue string         `gorm:"type:varchar(1000)" json:"link_value"`                      // 跳转值
	IsActive  bool           `gorm:"default:true;index" json:"is_active"`                       // 是否启用
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`                         // 排序
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除
}

// TableName 指定表名
func (Banner) TableName() string {
	return "banners"
}
