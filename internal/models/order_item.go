package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表；名称/图片/单价均为下单时快照
type OrderItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderID    uint           `gorm:"index;not null" json:"order_id"`                            // 订单ID
	ProductID  uint           `gorm:"index;not null" json:"product_id"`                          // 商品ID
	Name       string         `gorm:"not null" json:"name"`                                      // 商品名称快照
	Image      string         `gorm:"type:varchar(500)" json:"image"`                            // 展示图快照
	UnitPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`   // 单价快照
	Quantity   int            `gorm:"not null" json:"quantity"`                                  // 数量
	TotalPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`  // 小计
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
