package models

import (
	"time"

	"gorm.io/gorm"
)

// Hero 首页主视觉内容；同一时刻至多一条 IsActive=true
type Hero struct {
	ID        uint           `gorm:"primarykey" json:"id"`                 // 主键
	Title     string         `gorm:"not null" json:"title"`                // 标题
	Subtitle  string         `json:"subtitle"`                             // 副标题
	CTAText   string         `gorm:"type:varchar(120)" json:"cta_text"`    // 按钮文案
	CTALink   string         `gorm:"type:varchar(1000)" json:"cta_link"`   // 按钮链接
	Image     string         `gorm:"type:varchar(500)" json:"image"`       // 背景图
	IsActive  bool           `gorm:"default:false;index" json:"is_active"` // 是否激活
	CreatedAt time.Time      `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                           // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间
}

// TableName 指定表名
func (Hero) TableName() string {
	return "heroes"
}
