package models

import (
	"time"
)

// InventoryLog 库存流水表；记录每次库存增量变更
type InventoryLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`           // 主键
	ProductID  uint      `gorm:"index;not null" json:"product_id"` // 商品ID
	Delta      int       `gorm:"not null" json:"delta"`          // 库存增量（负数为扣减）
	Reason     string    `gorm:"index;not null" json:"reason"`   // 变更原因
	RefID      uint      `gorm:"index" json:"ref_id"`            // 关联对象ID（订单等）
	StockAfter int       `gorm:"not null" json:"stock_after"`    // 变更后库存
	CreatedAt  time.Time `gorm:"index" json:"created_at"`        // 创建时间
}

// TableName 指定表名
func (InventoryLog) TableName() string {
	return "inventory_logs"
}
