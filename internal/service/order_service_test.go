package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopnext/internal/constants"
	"github.com/shopnext/internal/models"
	"github.com/shopnext/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Coupon{},
		&models.CouponUsage{},
		&models.Activity{},
		&models.InventoryLog{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	couponSvc := NewCouponService(repository.NewCouponRepository(db), repository.NewCouponUsageRepository(db))
	activitySvc := NewActivityService(repository.NewActivityRepository(db))
	svc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		repository.NewAddressRepository(db),
		repository.NewInventoryLogRepository(db),
		couponSvc,
		activitySvc,
		nil,
		PricingRule{
			FreeShippingThreshold: decimal.NewFromInt(500),
			FlatShippingFee:       decimal.NewFromInt(50),
			TaxRatePercent:        decimal.NewFromInt(18),
		},
	)
	return svc, db
}

func seedCheckoutUser(t *testing.T, db *gorm.DB, id uint) {
	t.Helper()
	user := models.User{
		ID:           id,
		Name:         fmt.Sprintf("user-%d", id),
		Email:        fmt.Sprintf("checkout_user_%d@example.com", id),
		PasswordHash: "hash",
		Role:         constants.UserRoleUser,
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
}

func seedCheckoutAddress(t *testing.T, db *gorm.DB, id, userID uint) {
	t.Helper()
	addr := models.Address{
		ID:         id,
		UserID:     userID,
		FullName:   "Test Receiver",
		Phone:      "9999999999",
		Line1:      "221B Baker Street",
		City:       "Mumbai",
		State:      "MH",
		PostalCode: "400001",
		Country:    "India",
		IsDefault:  true,
	}
	if err := db.Create(&addr).Error; err != nil {
		t.Fatalf("create address failed: %v", err)
	}
}

func seedCheckoutProduct(t *testing.T, db *gorm.DB, id uint, price int64, stock int) *models.Product {
	t.Helper()
	category := models.Category{Name: fmt.Sprintf("cat-%d", id), Slug: fmt.Sprintf("cat-%d", id), IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		ID:                id,
		CategoryID:        category.ID,
		Name:              fmt.Sprintf("product-%d", id),
		Slug:              fmt.Sprintf("product-%d", id),
		Price:             models.NewMoneyFromInt(price),
		Stock:             stock,
		LowStockThreshold: 2,
		IsActive:          true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product
}

func seedCartLine(t *testing.T, db *gorm.DB, userID, productID uint, quantity int, unitPrice int64) {
	t.Helper()
	item := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: models.NewMoneyFromInt(unitPrice),
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
}

func TestPlaceOrderTotalsFreeShipping(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedCheckoutUser(t, db, 1)
	seedCheckoutAddress(t, db, 1, 1)
	seedCheckoutProduct(t, db, 1, 250, 10)
	seedCartLine(t, db, 1, 1, 2, 250)

	order, err := svc.PlaceOrder(1, CreateOrderInput{AddressID: 1, PaymentMethod: "card"})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.Subtotal.String() != "500.00" {
		t.Fatalf("subtotal want 500.00 got %s", order.Subtotal.String())
	}
	if !order.ShippingFee.Decimal.IsZero() {
		t.Fatalf("subtotal at threshold should ship free, got %s", order.ShippingFee.String())
	}
	if order.Tax.String() != "90.00" {
		t.Fatalf("tax want 90.00 got %s", order.Tax.String())
	}
	if order.Total.String() != "590.00" {
		t.Fatalf("total want 590.00 got %s", order.Total.String())
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("status want pending got %s", order.Status)
	}
	if order.PaymentStatus != constants.PaymentStatusPending {
		t.Fatalf("payment status want pending got %s", order.PaymentStatus)
	}
}

func TestPlaceOrderTotalsWithPercentageCoupon(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedCheckoutUser(t, db, 1)
	seedCheckoutAddress(t, db, 1, 1)
	seedCheckoutProduct(t, db, 1, 250, 10)
	seedCartLine(t, db, 1, 1, 2, 250)
	coupon := models.Coupon{
		Code:        "SAVE20",
		Type:        constants.CouponTypePercentage,
		Value:       models.NewMoneyFromInt(20),
		MaxDiscount: models.NewMoneyFromInt(50),
		IsActive:    true,
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	// 500 - 封顶折扣 50 = 450，不满包邮门槛：运费 50，税 81，合计 581
	order, err := svc.PlaceOrder(1, CreateOrderInput{AddressID: 1, PaymentMethod: "upi", CouponCode: "SAVE20"})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.Discount.String() != "50.00" {
		t.Fatalf("discount want 50.00 got %s", order.Discount.String())
	}
	if order.ShippingFee.String() != "50.00" {
		t.Fatalf("shipping want 50.00 got %s", order.ShippingFee.String())
	}
	if order.Tax.String() != "81.00" {
		t.Fatalf("tax want 81.00 got %s", order.Tax.String())
	}
	if order.Total.String() != "581.00" {
		t.Fatalf("total want 581.00 got %s", order.Total.String())
	}
	if order.CouponCode != "SAVE20" {
		t.Fatalf("coupon code snapshot missing, got %q", order.CouponCode)
	}

	var couponAfter models.Coupon
	if err := db.First(&couponAfter, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if couponAfter.UsedCount != 1 {
		t.Fatalf("used count want 1 got %d", couponAfter.UsedCount)
	}
	var usage models.CouponUsage
	if err := db.Where("coupon_id = ? AND user_id = ?", coupon.ID, 1).First(&usage).Error; err != nil {
		t.Fatalf("usage record missing: %v", err)
	}
	if usage.OrderID != order.ID {
		t.Fatalf("usage should reference order %d, got %d", order.ID, usage.OrderID)
	}
}

func TestPlaceOrderUsesCartPriceSnapshot(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedCheckoutUser(t, db, 1)
	seedCheckoutAddress(t, db, 1, 1)
	seedCheckoutProduct(t, db, 1, 100, 10)
	seedCartLine(t, db, 1, 1, 1, 100)

	// 加购后涨价不影响结算金额
	if err := db.Model(&models.Product{}).Where("id = ?", 1).
		Update("price", models.NewMoneyFromInt(999)).Error; err != nil {
		t.Fatalf("raise price failed: %v", err)
	}

	order, err := svc.PlaceOrder(1, CreateOrderInput{AddressID: 1, PaymentMethod: "cod"})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.Subtotal.String() != "100.00" {
		t.Fatalf("subtotal should use cart snapshot 100, got %s", order.Subtotal.String())
	}
	if len(order.Items) != 1 || order.Items[0].UnitPrice.String() != "100.00" {
		t.Fatalf("item unit price should stay 100, got %+v", order.Items)
	}
}

func TestPlaceOrderCODCompletesPayment(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedCheckoutUser(t, db, 1)
	seedCheckoutAddress(t, db, 1, 1)
	seedCheckoutProduct(t, db, 1, 100, 5)
	seedCartLine(t, db, 1, 1, 1, 100)

	order, err := svc.PlaceOrder(1, CreateOrderInput{AddressID: 1, PaymentMethod: "COD"})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.PaymentMethod != constants.PaymentMethodCOD {
		t.Fatalf("payment method should normalize to cod, got %s", order.PaymentMethod)
	}
	if order.PaymentStatus != constants.PaymentStatusCompleted {
		t.Fatalf("cod payment should be completed, got %s", order.PaymentStatus)
	}
}

func TestPlaceOrderSideEffects(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedCheckoutUser(t, db, 1)
	seedCheckoutAddress(t, db, 1, 1)
	seedCheckoutProduct(t, db, 1, 100, 5)
	seedCartLine(t, db, 1, 1, 3, 100)

	order, err := svc.PlaceOrder(1, CreateOrderInput{AddressID: 1, PaymentMethod: "card"})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	var product models.Product
	if err := db.First(&product, 1).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if product.Stock != 2 {
		t.Fatalf("stock want 2 after debit got %d", product.Stock)
	}

	var cartCount int64
	db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&cartCount)
	if cartCount != 0 {
		t.Fatalf("cart should be cleared, got %d rows", cartCount)
	}

	var logEntry models.InventoryLog
	if err := db.Where("product_id = ? AND reason = ?", 1, constants.InventoryReasonOrder).First(&logEntry).Error; err != nil {
		t.Fatalf("inventory log missing: %v", err)
	}
	if logEntry.Delta != -3 {
		t.Fatalf("inventory delta want -3 got %d", logEntry.Delta)
	}

	var activityCount int64
	db.Model(&models.Activity{}).Where("type = ? AND ref_id = ?", constants.ActivityOrderPlaced, order.ID).Count(&activityCount)
	if activityCount != 1 {
		t.Fatalf("order_placed activity want 1 got %d", activityCount)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedCheckoutUser(t, db, 1)
	seedCheckoutAddress(t, db, 1, 1)

	if _, err := svc.PlaceOrder(1, CreateOrderInput{AddressID: 1, PaymentMethod: "bitcoin"}); !errors.Is(err, ErrPaymentMethodInvalid) {
		t.Fatalf("unknown method want ErrPaymentMethodInvalid got %v", err)
	}
	if _, err := svc.PlaceOrder(1, CreateOrderInput{AddressID: 1, PaymentMethod: "card"}); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("empty cart want ErrCartEmpty got %v", err)
	}

	seedCheckoutProduct(t, db, 1, 100, 1)
	seedCartLine(t, db, 1, 1, 2, 100)
	if _, err := svc.PlaceOrder(1, CreateOrderInput{AddressID: 1, PaymentMethod: "card"}); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("over-stock want ErrInsufficientStock got %v", err)
	}

	// 他人地址
	seedCheckoutUser(t, db, 2)
	seedCheckoutAddress(t, db, 2, 2)
	if _, err := svc.PlaceOrder(1, CreateOrderInput{AddressID: 2, PaymentMethod: "card"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other user's address want ErrForbidden got %v", err)
	}
}

func TestPlaceOrderNonReusableCouponSecondUse(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedCheckoutUser(t, db, 1)
	seedCheckoutAddress(t, db, 1, 1)
	seedCheckoutProduct(t, db, 1, 100, 10)
	seedCartLine(t, db, 1, 1, 1, 100)
	coupon := models.Coupon{
		Code:     "ONCE",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromInt(10),
		IsActive: true,
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	if _, err := svc.PlaceOrder(1, CreateOrderInput{AddressID: 1, PaymentMethod: "card", CouponCode: "ONCE"}); err != nil {
		t.Fatalf("first order failed: %v", err)
	}

	seedCartLine(t, db, 1, 1, 1, 100)
	if _, err := svc.PlaceOrder(1, CreateOrderInput{AddressID: 1, PaymentMethod: "card", CouponCode: "ONCE"}); !errors.Is(err, ErrCouponAlreadyUsed) {
		t.Fatalf("second use want ErrCouponAlreadyUsed got %v", err)
	}
}

func TestCancelOrderRestoresStock(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedCheckoutUser(t, db, 1)
	seedCheckoutAddress(t, db, 1, 1)
	seedCheckoutProduct(t, db, 1, 100, 5)
	seedCartLine(t, db, 1, 1, 2, 100)

	order, err := svc.PlaceOrder(1, CreateOrderInput{AddressID: 1, PaymentMethod: "card"})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	cancelled, err := svc.CancelOrder(order.ID, 1, "changed my mind")
	if err != nil {
		t.Fatalf("cancel order failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("status want cancelled got %s", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Fatalf("cancelled_at should be stamped")
	}

	var product models.Product
	if err := db.First(&product, 1).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if product.Stock != 5 {
		t.Fatalf("stock want 5 after restore got %d", product.Stock)
	}

	var restoreLog models.InventoryLog
	if err := db.Where("product_id = ? AND reason = ?", 1, constants.InventoryReasonOrderCancel).First(&restoreLog).Error; err != nil {
		t.Fatalf("restore log missing: %v", err)
	}
	if restoreLog.Delta != 2 {
		t.Fatalf("restore delta want 2 got %d", restoreLog.Delta)
	}

	// 取消不恢复购物车
	var cartCount int64
	db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&cartCount)
	if cartCount != 0 {
		t.Fatalf("cancel must not restore cart, got %d rows", cartCount)
	}
}

func TestCancelOrderTerminalStates(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedCheckoutUser(t, db, 1)
	seedCheckoutAddress(t, db, 1, 1)
	seedCheckoutProduct(t, db, 1, 100, 5)
	seedCartLine(t, db, 1, 1, 1, 100)

	order, err := svc.PlaceOrder(1, CreateOrderInput{AddressID: 1, PaymentMethod: "card"})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusDelivered); err != nil {
		t.Fatalf("mark delivered failed: %v", err)
	}
	if _, err := svc.CancelOrder(order.ID, 1, ""); !errors.Is(err, ErrOrderStateInvalid) {
		t.Fatalf("cancel delivered want ErrOrderStateInvalid got %v", err)
	}
	if _, err := svc.CancelOrder(9999, 1, ""); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("cancel missing order want ErrOrderNotFound got %v", err)
	}
}

func TestUpdateStatusStampsTimestamps(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedCheckoutUser(t, db, 1)
	seedCheckoutAddress(t, db, 1, 1)
	seedCheckoutProduct(t, db, 1, 100, 5)
	seedCartLine(t, db, 1, 1, 1, 100)

	order, err := svc.PlaceOrder(1, CreateOrderInput{AddressID: 1, PaymentMethod: "card"})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if _, err := svc.UpdateStatus(order.ID, "teleported"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown status want ErrInvalidInput got %v", err)
	}

	delivered, err := svc.UpdateStatus(order.ID, "DELIVERED")
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if delivered.Status != constants.OrderStatusDelivered {
		t.Fatalf("status want delivered got %s", delivered.Status)
	}
	if delivered.DeliveredAt == nil {
		t.Fatalf("delivered_at should be stamped")
	}
}

func TestGenerateOrderNo(t *testing.T) {
	no := generateOrderNo()
	if len(no) < 3+13+4 {
		t.Fatalf("order no too short: %s", no)
	}
	if no[:3] != "ORD" {
		t.Fatalf("order no should start with ORD, got %s", no)
	}
	if no == generateOrderNo() && no == generateOrderNo() {
		t.Fatalf("order no should not repeat deterministically")
	}
}
