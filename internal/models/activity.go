package models

import (
	"time"
)

// Activity 操作日志表（仅追加，不更新不软删）
type Activity struct {
	ID        uint      `gorm:"primarykey" json:"id"`                 // 主键
	Type      string    `gorm:"index;not null" json:"type"`           // 日志类型
	UserID    uint      `gorm:"index" json:"user_id"`                 // 触发用户ID（系统操作为 0）
	RefID     uint      `gorm:"index" json:"ref_id"`                  // 关联对象ID（订单/内容等）
	Message   string    `gorm:"not null" json:"message"`              // 摘要
	DetailJSON JSON     `gorm:"type:json" json:"detail"`              // 结构化明细
	CreatedAt time.Time `gorm:"index" json:"created_at"`              // 创建时间
}

// TableName 指定表名
func (Activity) TableName() string {
	return "activities"
}
