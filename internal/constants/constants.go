package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusPaid       = "paid"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusRefunded   = "refunded"
)

// 支付状态常量
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// 支付方式常量
const (
	PaymentMethodCard       = "card"
	PaymentMethodUPI        = "upi"
	PaymentMethodNetBanking = "netbanking"
	PaymentMethodWallet     = "wallet"
	PaymentMethodCOD        = "cod"
)

// 优惠券类型常量
const (
	CouponTypeFixed      = "fixed"
	CouponTypePercentage = "percentage"
)

// 营销内容类型常量
const (
	ContentKindHero  = "hero"
	ContentKindPromo = "promo"
)

// 用户角色常量
const (
	UserRoleUser  = "user"
	UserRoleAdmin = "admin"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 操作日志类型常量
const (
	ActivityOrderPlaced     = "order_placed"
	ActivityOrderCancelled  = "order_cancelled"
	ActivityOrderShipped    = "order_shipped"
	ActivityOrderDelivered  = "order_delivered"
	ActivityContentActivate = "content_activated"
	ActivityStockAdjusted   = "stock_adjusted"
)

// 库存流水原因常量
const (
	InventoryReasonOrder       = "order"
	InventoryReasonOrderCancel = "order_cancel"
	InventoryReasonAdminAdjust = "admin_adjust"
)

// 队列常量
const (
	QueueDefault        = "default"
	TaskOrderPlaced     = "order:placed"
	TaskProductLowStock = "product:low_stock"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "sn"
)

// 订单金额默认规则常量
const (
	FreeShippingThreshold = 500
	FlatShippingFee       = 50
	TaxRatePercent        = 18
)

// 营销内容激活节流默认窗口（秒）
const (
	ContentActivationCooldownSeconds = 3
)

// Banner 跳转类型常量
const (
	BannerLinkTypeNone     = "none"
	BannerLinkTypeInternal = "internal"
	BannerLinkTypeExternal = "external"
)
