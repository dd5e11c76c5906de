package models

import (
	"time"

	"gorm.io/gorm"
)

// Testimonial 用户推荐语
type Testimonial struct {
	ID         uint           `gorm:"primarykey" json:"id"`                   // 主键
	Name       string         `gorm:"not null" json:"name"`                   // 署名
	Role       string         `gorm:"type:varchar(120)" json:"role"`          // 身份描述
	Content    string         `gorm:"type:text;not null" json:"content"`      // 内容
	Avatar     string         `gorm:"type:varchar(500)" json:"avatar"`        // 头像
	Rating     int            `gorm:"not null;default:5" json:"rating"`       // 评分（1-5）
	IsApproved bool           `gorm:"default:false;index" json:"is_approved"` // 是否审核通过
	SortOrder  int            `gorm:"default:0;index" json:"sort_order"`      // 排序
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                             // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间
}

// TableName 指定表名
func (Testimonial) TableName() string {
	return "testimonials"
}
