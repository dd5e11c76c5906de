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
	"gorm.io/gorm"
)

func setupCouponServiceTest(t *testing.T) (*CouponService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:coupon_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}, &models.CouponUsage{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewCouponService(repository.NewCouponRepository(db), repository.NewCouponUsageRepository(db))
	return svc, db
}

func TestCouponValidateChain(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	coupons := []models.Coupon{
		{Code: "INACTIVE", Type: constants.CouponTypeFixed, Value: models.NewMoneyFromInt(10), IsActive: false},
		{Code: "NOTYET", Type: constants.CouponTypeFixed, Value: models.NewMoneyFromInt(10), IsActive: true, StartsAt: &future},
		{Code: "EXPIRED", Type: constants.CouponTypeFixed, Value: models.NewMoneyFromInt(10), IsActive: true, EndsAt: &past},
		{Code: "CAPPED", Type: constants.CouponTypeFixed, Value: models.NewMoneyFromInt(10), IsActive: true, UsageLimit: 1, UsedCount: 1},
		{Code: "BIGMIN", Type: constants.CouponTypeFixed, Value: models.NewMoneyFromInt(10), IsActive: true, MinAmount: models.NewMoneyFromInt(1000)},
		{Code: "GOOD", Type: constants.CouponTypeFixed, Value: models.NewMoneyFromInt(10), IsActive: true},
	}
	for i := range coupons {
		if err := db.Create(&coupons[i]).Error; err != nil {
			t.Fatalf("create coupon failed: %v", err)
		}
	}

	total := models.NewMoneyFromInt(500)
	cases := []struct {
		code string
		want error
	}{
		{code: "", want: ErrCouponInvalid},
		{code: "MISSING", want: ErrCouponNotFound},
		{code: "INACTIVE", want: ErrCouponInactive},
		{code: "NOTYET", want: ErrCouponNotStarted},
		{code: "EXPIRED", want: ErrCouponExpired},
		{code: "CAPPED", want: ErrCouponUsageLimit},
		{code: "BIGMIN", want: ErrCouponMinAmount},
		{code: "GOOD", want: nil},
	}
	for _, tc := range cases {
		_, err := svc.Validate(tc.code, total, 1)
		if tc.want == nil {
			if err != nil {
				t.Fatalf("code %q should validate, got %v", tc.code, err)
			}
			continue
		}
		if !errors.Is(err, tc.want) {
			t.Fatalf("code %q want %v got %v", tc.code, tc.want, err)
		}
	}
}

func TestCouponValidateNonReusable(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	coupon := models.Coupon{Code: "ONCE", Type: constants.CouponTypeFixed, Value: models.NewMoneyFromInt(10), IsActive: true, IsReusable: false}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	total := models.NewMoneyFromInt(100)
	if _, err := svc.Validate("ONCE", total, 7); err != nil {
		t.Fatalf("first validate failed: %v", err)
	}
	if _, err := svc.RecordUsage(&coupon, 7, models.NewMoneyFromInt(10)); err != nil {
		t.Fatalf("record usage failed: %v", err)
	}

	if _, err := svc.Validate("ONCE", total, 7); !errors.Is(err, ErrCouponAlreadyUsed) {
		t.Fatalf("second validate want ErrCouponAlreadyUsed got %v", err)
	}
	// 其他用户不受影响
	if _, err := svc.Validate("ONCE", total, 8); err != nil {
		t.Fatalf("other user should validate, got %v", err)
	}
}

func TestCouponValidateReusable(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	coupon := models.Coupon{Code: "REUSE", Type: constants.CouponTypeFixed, Value: models.NewMoneyFromInt(10), IsActive: true, IsReusable: true}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	if _, err := svc.RecordUsage(&coupon, 7, models.NewMoneyFromInt(10)); err != nil {
		t.Fatalf("record usage failed: %v", err)
	}
	if _, err := svc.Validate("REUSE", models.NewMoneyFromInt(100), 7); err != nil {
		t.Fatalf("reusable coupon should validate again, got %v", err)
	}
}

func TestCalculateDiscountPercentage(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	coupon := &models.Coupon{
		Type:        constants.CouponTypePercentage,
		Value:       models.NewMoneyFromInt(20),
		MaxDiscount: models.NewMoneyFromInt(50),
	}

	// 20% of 200 = 40，未触顶
	got := svc.CalculateDiscount(coupon, models.NewMoneyFromInt(200))
	if got.String() != "40.00" {
		t.Fatalf("discount want 40.00 got %s", got.String())
	}
	// 20% of 500 = 100，触顶 50
	got = svc.CalculateDiscount(coupon, models.NewMoneyFromInt(500))
	if got.String() != "50.00" {
		t.Fatalf("capped discount want 50.00 got %s", got.String())
	}
}

func TestCalculateDiscountFixedClamp(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	coupon := &models.Coupon{Type: constants.CouponTypeFixed, Value: models.NewMoneyFromInt(100)}

	// 面值超过订单金额时收敛到订单金额
	got := svc.CalculateDiscount(coupon, models.NewMoneyFromInt(60))
	if got.String() != "60.00" {
		t.Fatalf("clamped discount want 60.00 got %s", got.String())
	}
	if got := svc.CalculateDiscount(nil, models.NewMoneyFromInt(60)); !got.Decimal.IsZero() {
		t.Fatalf("nil coupon discount want 0.00 got %s", got.String())
	}
}

func TestCouponCreateDuplicateCode(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	input := CouponInput{Code: "DUP", Type: constants.CouponTypeFixed, Value: models.NewMoneyFromInt(10), IsActive: boolPtr(true)}
	if _, err := svc.Create(input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(input); !errors.Is(err, ErrCouponCodeTaken) {
		t.Fatalf("duplicate code want ErrCouponCodeTaken got %v", err)
	}
}

func TestAttachUsageOrderUsesTransaction(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	coupon := models.Coupon{Code: "GOOD", Type: constants.CouponTypeFixed, Value: models.NewMoneyFromInt(10), IsActive: true}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	usage, err := svc.RecordUsage(&coupon, 7, models.NewMoneyFromInt(10))
	if err != nil {
		t.Fatalf("record usage failed: %v", err)
	}

	// 回填跟随事务：事务回滚时订单关联不落库
	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := svc.AttachUsageOrder(tx, usage.ID, 42); err != nil {
			return err
		}
		return errors.New("abort")
	})
	if txErr == nil {
		t.Fatal("transaction should abort")
	}
	var reloaded models.CouponUsage
	if err := db.First(&reloaded, usage.ID).Error; err != nil {
		t.Fatalf("reload usage failed: %v", err)
	}
	if reloaded.OrderID != 0 {
		t.Fatalf("rolled-back attach should leave order_id empty, got %d", reloaded.OrderID)
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		return svc.AttachUsageOrder(tx, usage.ID, 42)
	}); err != nil {
		t.Fatalf("attach in transaction failed: %v", err)
	}
	if err := db.First(&reloaded, usage.ID).Error; err != nil {
		t.Fatalf("reload usage failed: %v", err)
	}
	if reloaded.OrderID != 42 {
		t.Fatalf("order_id = %d want 42", reloaded.OrderID)
	}

	// 不带事务也可直接回填
	if err := svc.AttachUsageOrder(nil, usage.ID, 43); err != nil {
		t.Fatalf("attach without transaction failed: %v", err)
	}
	if err := db.First(&reloaded, usage.ID).Error; err != nil {
		t.Fatalf("reload usage failed: %v", err)
	}
	if reloaded.OrderID != 43 {
		t.Fatalf("order_id = %d want 43", reloaded.OrderID)
	}
}

func boolPtr(v bool) *bool {
	return &v
}
