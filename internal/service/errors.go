package service

import "errors"

// 业务错误哨兵值；handler 层负责映射为响应码
var (
	// 通用
	ErrNotFound     = errors.New("record not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")

	// 库存
	ErrInsufficientStock = errors.New("insufficient stock")

	// 购物车
	ErrCartEmpty       = errors.New("cart is empty")
	ErrProductInactive = errors.New("product unavailable")

	// 优惠券
	ErrCouponInvalid     = errors.New("coupon invalid")
	ErrCouponNotFound    = errors.New("coupon not found")
	ErrCouponInactive    = errors.New("coupon inactive")
	ErrCouponNotStarted  = errors.New("coupon not started")
	ErrCouponExpired     = errors.New("coupon expired")
	ErrCouponUsageLimit  = errors.New("coupon usage limit reached")
	ErrCouponAlreadyUsed = errors.New("coupon already used")
	ErrCouponMinAmount   = errors.New("coupon min purchase not met")
	ErrCouponCodeTaken   = errors.New("coupon code already exists")

	// 订单
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderStateInvalid    = errors.New("order state invalid")
	ErrPaymentMethodInvalid = errors.New("payment method invalid")

	// 营销内容激活节流
	ErrActivationThrottled = errors.New("activation throttled")

	// 用户
	ErrWeakPassword       = errors.New("password too weak")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")

	// 商品/分类
	ErrSlugTaken = errors.New("slug already exists")

	// 评价
	ErrReviewExists = errors.New("review already exists")

	// Banner
	ErrInvalidBanner = errors.New("invalid banner")
)
