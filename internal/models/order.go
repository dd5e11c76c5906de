package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表；金额与收货地址均为下单时快照
type Order struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                     // 主键
	OrderNo       string         `gorm:"uniqueIndex;not null" json:"order_no"`                     // 订单编号
	UserID        uint           `gorm:"index;not null" json:"user_id"`                            // 用户ID
	Status        string         `gorm:"index;not null" json:"status"`                             // 订单状态
	PaymentMethod string         `gorm:"type:varchar(20);not null" json:"payment_method"`          // 支付方式
	PaymentStatus string         `gorm:"index;not null" json:"payment_status"`                     // 支付状态
	Subtotal      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`    // 商品小计
	Discount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount"`    // 优惠金额
	ShippingFee   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fee"` // 运费
	Tax           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax"`         // 税费
	Total         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total"`       // 实付金额
	CouponID      *uint          `gorm:"index" json:"coupon_id,omitempty"`                         // 优惠券ID
	CouponCode    string         `gorm:"type:varchar(60)" json:"coupon_code,omitempty"`            // 优惠码快照
	Notes         string         `gorm:"type:text" json:"notes,omitempty"`                         // 备注
	CancelReason  string         `gorm:"type:text" json:"cancel_reason,omitempty"`                 // 取消原因
	ShipName      string         `gorm:"not null" json:"ship_name"`                                // 收件人姓名快照
	ShipPhone     string         `gorm:"type:varchar(30);not null" json:"ship_phone"`              // 收件电话快照
	ShipLine1     string         `gorm:"not null" json:"ship_line1"`                               // 地址行1快照
	ShipLine2     string         `json:"ship_line2"`                                               // 地址行2快照
	ShipCity      string         `gorm:"not null" json:"ship_city"`                                // 城市快照
	ShipState     string         `gorm:"not null" json:"ship_state"`                               // 省/州快照
	ShipPostal    string         `gorm:"type:varchar(20);not null" json:"ship_postal"`             // 邮编快照
	ShipCountry   string         `gorm:"not null" json:"ship_country"`                             // 国家快照
	DeliveredAt   *time.Time     `gorm:"index" json:"delivered_at"`                                // 送达时间
	CancelledAt   *time.Time     `gorm:"index" json:"cancelled_at"`                                // 取消时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                                  // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
