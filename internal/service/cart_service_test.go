package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopnext/internal/models"
	"github.com/shopnext/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.CartItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	return svc, db
}

func TestCartAddItemSnapshotsPrice(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := seedCheckoutProduct(t, db, 1, 100, 10)

	view, err := svc.AddItem(7, product.ID, 2)
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("want 1 cart line got %d", len(view.Items))
	}
	if got := view.Items[0].UnitPrice.String(); got != "100.00" {
		t.Fatalf("unit price snapshot = %s want 100.00", got)
	}
	if got := view.Subtotal.String(); got != "200.00" {
		t.Fatalf("subtotal = %s want 200.00", got)
	}
	if view.TotalItems != 2 {
		t.Fatalf("total items = %d want 2", view.TotalItems)
	}

	// 改价不影响已入车行的单价快照
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price", models.NewMoneyFromInt(999)).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}
	view, err = svc.Get(7)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if got := view.Items[0].UnitPrice.String(); got != "100.00" {
		t.Fatalf("unit price after reprice = %s want 100.00", got)
	}
}

func TestCartAddItemMergesQuantity(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := seedCheckoutProduct(t, db, 1, 100, 10)

	if _, err := svc.AddItem(7, product.ID, 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	view, err := svc.AddItem(7, product.ID, 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("repeat add should merge into one line, got %d", len(view.Items))
	}
	if view.Items[0].Quantity != 5 {
		t.Fatalf("merged quantity = %d want 5", view.Items[0].Quantity)
	}
}

func TestCartAddItemStockCeiling(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := seedCheckoutProduct(t, db, 1, 100, 3)

	if _, err := svc.AddItem(7, product.ID, 2); err != nil {
		t.Fatalf("add within stock failed: %v", err)
	}
	// 累计数量越过库存上限
	if _, err := svc.AddItem(7, product.ID, 2); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock got %v", err)
	}
	view, err := svc.Get(7)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if view.Items[0].Quantity != 2 {
		t.Fatalf("failed add should not change quantity, got %d", view.Items[0].Quantity)
	}
}

func TestCartAddItemValidation(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := seedCheckoutProduct(t, db, 1, 100, 10)

	if _, err := svc.AddItem(7, product.ID, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero quantity want ErrInvalidInput got %v", err)
	}
	if _, err := svc.AddItem(7, 999, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing product want ErrNotFound got %v", err)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}
	if _, err := svc.AddItem(7, product.ID, 1); !errors.Is(err, ErrProductInactive) {
		t.Fatalf("inactive product want ErrProductInactive got %v", err)
	}
}

func TestCartUpdateItem(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := seedCheckoutProduct(t, db, 1, 100, 5)

	if _, err := svc.AddItem(7, product.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	view, err := svc.UpdateItem(7, product.ID, 4)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if view.Items[0].Quantity != 4 {
		t.Fatalf("quantity = %d want 4", view.Items[0].Quantity)
	}

	if _, err := svc.UpdateItem(7, product.ID, 6); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("over stock want ErrInsufficientStock got %v", err)
	}
	if _, err := svc.UpdateItem(7, product.ID, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero quantity want ErrInvalidInput got %v", err)
	}
	if _, err := svc.UpdateItem(7, 999, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing line want ErrNotFound got %v", err)
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	first := seedCheckoutProduct(t, db, 1, 100, 5)
	second := seedCheckoutProduct(t, db, 2, 50, 5)

	if _, err := svc.AddItem(7, first.ID, 1); err != nil {
		t.Fatalf("add first failed: %v", err)
	}
	if _, err := svc.AddItem(7, second.ID, 1); err != nil {
		t.Fatalf("add second failed: %v", err)
	}
	// 他人购物车互不影响
	if _, err := svc.AddItem(8, first.ID, 1); err != nil {
		t.Fatalf("add for other user failed: %v", err)
	}

	view, err := svc.RemoveItem(7, first.ID)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].ProductID != second.ID {
		t.Fatalf("only second product should remain, got %+v", view.Items)
	}
	// 移除不存在的行静默成功
	if _, err := svc.RemoveItem(7, 999); err != nil {
		t.Fatalf("remove missing line failed: %v", err)
	}

	if err := svc.Clear(7); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	view, err = svc.Get(7)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(view.Items) != 0 || view.TotalItems != 0 || view.Subtotal.String() != "0.00" {
		t.Fatalf("cart should be empty, got %+v", view)
	}

	other, err := svc.Get(8)
	if err != nil {
		t.Fatalf("get other cart failed: %v", err)
	}
	if len(other.Items) != 1 {
		t.Fatalf("other user cart should be untouched, got %d lines", len(other.Items))
	}
}
