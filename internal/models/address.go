package models

import (
	"time"

	"gorm.io/gorm"
)

// Address 收货地址表；每个用户至多一条默认地址
type Address struct {
	ID         uint           `gorm:"primarykey" json:"id"`                       // 主键
	UserID     uint           `gorm:"index;not null" json:"user_id"`              // 用户ID
	FullName   string         `gorm:"not null" json:"full_name"`                  // 收件人姓名
	Phone      string         `gorm:"type:varchar(30);not null" json:"phone"`     // 联系电话
	Line1      string         `gorm:"not null" json:"line1"`                      // 地址行1
	Line2      string         `json:"line2"`                                      // 地址行2
	City       string         `gorm:"not null" json:"city"`                       // 城市
	State      string         `gorm:"not null" json:"state"`                      // 省/州
	PostalCode string         `gorm:"type:varchar(20);not null" json:"postal_code"` // 邮编
	Country    string         `gorm:"not null;default:'India'" json:"country"`    // 国家
	IsDefault  bool           `gorm:"default:false;index" json:"is_default"`      // 是否默认地址
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                    // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                 // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                             // 软删除时间
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}
