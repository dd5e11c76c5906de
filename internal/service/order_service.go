package service

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/shopnext/internal/config"
	"github.com/shopnext/internal/constants"
	"github.com/shopnext/internal/logger"
	"github.com/shopnext/internal/models"
	"github.com/shopnext/internal/queue"
	"github.com/shopnext/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务：下单编排、取消与状态维护
type OrderService struct {
	orderRepo     repository.OrderRepository
	cartRepo      repository.CartRepository
	productRepo   repository.ProductRepository
	addressRepo   repository.AddressRepository
	inventoryRepo repository.InventoryLogRepository
	couponSvc     *CouponService
	activitySvc   *ActivityService
	queueClient   *queue.Client
	pricing       PricingRule
}

// PricingRule 订单金额规则（包邮门槛 / 固定运费 / 税率）
type PricingRule struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	TaxRatePercent        decimal.Decimal
}

// NewPricingRule 从配置构建金额规则
func NewPricingRule(cfg *config.OrderConfig) PricingRule {
	rule := PricingRule{
		FreeShippingThreshold: decimal.NewFromInt(constants.FreeShippingThreshold),
		FlatShippingFee:       decimal.NewFromInt(constants.FlatShippingFee),
		TaxRatePercent:        decimal.NewFromInt(constants.TaxRatePercent),
	}
	if cfg == nil {
		return rule
	}
	if cfg.FreeShippingThreshold > 0 {
		rule.FreeShippingThreshold = decimal.NewFromInt(int64(cfg.FreeShippingThreshold))
	}
	if cfg.FlatShippingFee > 0 {
		rule.FlatShippingFee = decimal.NewFromInt(int64(cfg.FlatShippingFee))
	}
	if cfg.TaxRatePercent > 0 {
		rule.TaxRatePercent = decimal.NewFromInt(int64(cfg.TaxRatePercent))
	}
	return rule
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	addressRepo repository.AddressRepository,
	inventoryRepo repository.InventoryLogRepository,
	couponSvc *CouponService,
	activitySvc *ActivityService,
	queueClient *queue.Client,
	pricing PricingRule,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		cartRepo:      cartRepo,
		productRepo:   productRepo,
		addressRepo:   addressRepo,
		inventoryRepo: inventoryRepo,
		couponSvc:     couponSvc,
		activitySvc:   activitySvc,
		queueClient:   queueClient,
		pricing:       pricing,
	}
}

// CreateOrderInput 下单输入
type CreateOrderInput struct {
	AddressID     uint
	PaymentMethod string
	CouponCode    string
	Notes         string
}

var allowedPaymentMethods = map[string]struct{}{
	constants.PaymentMethodCard:       {},
	constants.PaymentMethodUPI:        {},
	constants.PaymentMethodNetBanking: {},
	constants.PaymentMethodWallet:     {},
	constants.PaymentMethodCOD:        {},
}

// PlaceOrder 下单编排。
// 固定顺序：校验购物车/地址/库存 → 优惠券计价并记账 → 计算金额 →
// 持久化订单 → 扣减库存 → 清空购物车 → 审计。
// 订单落库之后的失败不回滚，只告警，订单本身作为对账依据。
func (s *OrderService) PlaceOrder(userID uint, input CreateOrderInput) (*models.Order, error) {
	method := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	if _, ok := allowedPaymentMethods[method]; !ok {
		return nil, ErrPaymentMethodInvalid
	}

	cartItems, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	address, err := s.addressRepo.GetByIDAndUser(input.AddressID, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrForbidden
	}

	// 按下单时点的实时库存校验每一行；校验与扣减之间存在竞争窗口，
	// 真正的兜底在存储层的原子扣减上。
	items, subtotal, err := s.snapshotCartLines(cartItems)
	if err != nil {
		return nil, err
	}

	discount := models.Money{}
	var coupon *models.Coupon
	var usage *models.CouponUsage
	if strings.TrimSpace(input.CouponCode) != "" {
		coupon, err = s.couponSvc.Validate(input.CouponCode, subtotal, userID)
		if err != nil {
			return nil, err
		}
		discount = s.couponSvc.CalculateDiscount(coupon, subtotal)
		// 用量记账一旦写入不随后续失败回滚
		usage, err = s.couponSvc.RecordUsage(coupon, userID, discount)
		if err != nil {
			return nil, err
		}
	}

	taxable := subtotal.Decimal.Sub(discount.Decimal)
	shippingFee := s.pricing.FlatShippingFee
	if taxable.GreaterThanOrEqual(s.pricing.FreeShippingThreshold) {
		shippingFee = decimal.Zero
	}
	tax := taxable.Mul(s.pricing.TaxRatePercent).Div(decimal.NewFromInt(100)).Round(2)
	total := taxable.Add(shippingFee).Add(tax)

	paymentStatus := constants.PaymentStatusPending
	if method == constants.PaymentMethodCOD {
		// 货到付款无需网关确认，直接视为支付完成
		paymentStatus = constants.PaymentStatusCompleted
	}

	order := &models.Order{
		OrderNo:       generateOrderNo(),
		UserID:        userID,
		Status:        constants.OrderStatusPending,
		PaymentMethod: method,
		PaymentStatus: paymentStatus,
		Subtotal:      subtotal,
		Discount:      discount,
		ShippingFee:   models.NewMoneyFromDecimal(shippingFee),
		Tax:           models.NewMoneyFromDecimal(tax),
		Total:         models.NewMoneyFromDecimal(total),
		Notes:         strings.TrimSpace(input.Notes),
		ShipName:      address.FullName,
		ShipPhone:     address.Phone,
		ShipLine1:     address.Line1,
		ShipLine2:     address.Line2,
		ShipCity:      address.City,
		ShipState:     address.State,
		ShipPostal:    address.PostalCode,
		ShipCountry:   address.Country,
	}
	if coupon != nil {
		order.CouponID = &coupon.ID
		order.CouponCode = coupon.Code
	}

	if err := models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Create(order, items); err != nil {
			return err
		}
		if usage != nil {
			if err := s.couponSvc.AttachUsageOrder(tx, usage.ID, order.ID); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	// 订单已落库，以下副作用失败均不回滚订单
	s.debitStockForOrder(order, items)

	if err := s.cartRepo.ClearByUser(userID); err != nil {
		logger.Warnw("checkout_cart_clear_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"user_id", userID,
			"error", err,
		)
	}

	s.activitySvc.Record(constants.ActivityOrderPlaced, userID, order.ID,
		fmt.Sprintf("order %s placed", order.OrderNo),
		models.JSON{"order_no": order.OrderNo, "total": order.Total.String()})

	if err := s.queueClient.EnqueueOrderPlaced(queue.OrderPlacedPayload{
		OrderID: order.ID,
		OrderNo: order.OrderNo,
		UserID:  userID,
	}); err != nil {
		logger.Warnw("checkout_enqueue_failed", "order_id", order.ID, "error", err)
	}

	order.Items = items
	return order, nil
}

// snapshotCartLines 将购物车行快照为订单行；单价取购物车存储的快照价，
// 不回读商品实时价格。
func (s *OrderService) snapshotCartLines(cartItems []models.CartItem) ([]models.OrderItem, models.Money, error) {
	items := make([]models.OrderItem, 0, len(cartItems))
	subtotal := decimal.Zero
	for _, line := range cartItems {
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, models.Money{}, err
		}
		if product == nil {
			return nil, models.Money{}, fmt.Errorf("%w: product %d", ErrNotFound, line.ProductID)
		}
		if product.Stock <= 0 || product.Stock < line.Quantity {
			return nil, models.Money{}, fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
		}

		lineTotal := line.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity)))
		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		items = append(items, models.OrderItem{
			ProductID:  product.ID,
			Name:       product.Name,
			Image:      image,
			UnitPrice:  line.UnitPrice,
			Quantity:   line.Quantity,
			TotalPrice: models.NewMoneyFromDecimal(lineTotal),
		})
		subtotal = subtotal.Add(lineTotal)
	}
	return items, models.NewMoneyFromDecimal(subtotal), nil
}

// debitStockForOrder 为订单逐行扣减库存并落流水；单行失败不中断其余行
func (s *OrderService) debitStockForOrder(order *models.Order, items []models.OrderItem) {
	for _, item := range items {
		updated, err := s.productRepo.ApplyStockDelta(item.ProductID, -item.Quantity)
		if err != nil {
			logger.Warnw("checkout_stock_debit_failed",
				"order_id", order.ID,
				"order_no", order.OrderNo,
				"product_id", item.ProductID,
				"quantity", item.Quantity,
				"error", err,
			)
			continue
		}
		s.recordInventory(item.ProductID, -item.Quantity, constants.InventoryReasonOrder, order.ID, updated)
		s.maybeAlertLowStock(item.ProductID, updated)
	}
}

func (s *OrderService) recordInventory(productID uint, delta int, reason string, refID uint, stockAfter int) {
	if err := s.inventoryRepo.Create(&models.InventoryLog{
		ProductID:  productID,
		Delta:      delta,
		Reason:     reason,
		RefID:      refID,
		StockAfter: stockAfter,
	}); err != nil {
		logger.Warnw("inventory_log_write_failed", "product_id", productID, "delta", delta, "error", err)
	}
}

func (s *OrderService) maybeAlertLowStock(productID uint, stock int) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil || product == nil {
		return
	}
	if stock > product.LowStockThreshold {
		return
	}
	if err := s.queueClient.EnqueueProductLowStock(queue.ProductLowStockPayload{
		ProductID: productID,
		Stock:     stock,
	}); err != nil {
		logger.Warnw("low_stock_enqueue_failed", "product_id", productID, "error", err)
	}
}

// GetByIDAndUser 获取用户订单详情
func (s *OrderService) GetByIDAndUser(id, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetByID 获取订单详情（管理端）
func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListByUser 获取用户订单列表
func (s *OrderService) ListByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(filter)
}

// ListAdmin 获取全部订单列表（管理端）
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// CancelOrder 用户取消订单：终态订单拒绝，回补库存但不恢复购物车
func (s *OrderService) CancelOrder(orderID, userID uint, reason string) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == constants.OrderStatusDelivered || order.Status == constants.OrderStatusCancelled {
		return nil, ErrOrderStateInvalid
	}

	now := time.Now()
	updates := map[string]interface{}{
		"cancelled_at":  &now,
		"cancel_reason": strings.TrimSpace(reason),
	}
	if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusCancelled, updates); err != nil {
		return nil, err
	}

	// 逐行回补库存；不触碰购物车
	for _, item := range order.Items {
		updated, err := s.productRepo.ApplyStockDelta(item.ProductID, item.Quantity)
		if err != nil {
			logger.Warnw("cancel_stock_restore_failed",
				"order_id", order.ID,
				"product_id", item.ProductID,
				"quantity", item.Quantity,
				"error", err,
			)
			continue
		}
		s.recordInventory(item.ProductID, item.Quantity, constants.InventoryReasonOrderCancel, order.ID, updated)
	}

	s.activitySvc.Record(constants.ActivityOrderCancelled, userID, order.ID,
		fmt.Sprintf("order %s cancelled", order.OrderNo),
		models.JSON{"order_no": order.OrderNo, "reason": strings.TrimSpace(reason)})

	return s.orderRepo.GetByID(order.ID)
}

var knownOrderStatuses = map[string]struct{}{
	constants.OrderStatusPending:    {},
	constants.OrderStatusPaid:       {},
	constants.OrderStatusProcessing: {},
	constants.OrderStatusShipped:    {},
	constants.OrderStatusDelivered:  {},
	constants.OrderStatusCancelled:  {},
	constants.OrderStatusRefunded:   {},
}

// UpdateStatus 管理端无条件改写订单状态；送达/取消时补时间戳，
// 发货与送达额外落审计。不做状态迁移表校验。
func (s *OrderService) UpdateStatus(orderID uint, status string) (*models.Order, error) {
	normalized := strings.ToLower(strings.TrimSpace(status))
	if _, ok := knownOrderStatuses[normalized]; !ok {
		return nil, ErrInvalidInput
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	now := time.Now()
	updates := map[string]interface{}{}
	switch normalized {
	case constants.OrderStatusDelivered:
		updates["delivered_at"] = &now
	case constants.OrderStatusCancelled:
		updates["cancelled_at"] = &now
	}
	if err := s.orderRepo.UpdateStatus(order.ID, normalized, updates); err != nil {
		return nil, err
	}

	switch normalized {
	case constants.OrderStatusShipped:
		s.activitySvc.Record(constants.ActivityOrderShipped, 0, order.ID,
			fmt.Sprintf("order %s shipped", order.OrderNo), nil)
	case constants.OrderStatusDelivered:
		s.activitySvc.Record(constants.ActivityOrderDelivered, 0, order.ID,
			fmt.Sprintf("order %s delivered", order.OrderNo), nil)
	}

	return s.orderRepo.GetByID(order.ID)
}

// generateOrderNo 生成订单号：ORD + 毫秒时间戳 + 4位随机数字。
// 随机后缀用于规避同毫秒并发下单的冲突。
func generateOrderNo() string {
	return fmt.Sprintf("ORD%d%s", time.Now().UnixMilli(), randNumeric(4))
}

func randNumeric(length int) string {
	if length <= 0 {
		return ""
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%0*d", length, time.Now().Nanosecond()%10000)
	}
	digits := make([]byte, length)
	for i, b := range buf {
		digits[i] = '0' + b%10
	}
	return string(digits)
}
