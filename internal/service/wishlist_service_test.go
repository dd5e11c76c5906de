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

func setupWishlistServiceTest(t *testing.T) (*WishlistService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:wishlist_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.WishlistItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewWishlistService(repository.NewWishlistRepository(db), repository.NewProductRepository(db))
	return svc, db
}

func TestWishlistToggle(t *testing.T) {
	svc, db := setupWishlistServiceTest(t)
	product := seedCheckoutProduct(t, db, 1, 100, 5)

	in, err := svc.Toggle(7, product.ID)
	if err != nil {
		t.Fatalf("toggle on failed: %v", err)
	}
	if !in {
		t.Fatal("first toggle should add")
	}
	items, err := svc.ListByUser(7)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != product.ID {
		t.Fatalf("unexpected wishlist: %+v", items)
	}

	in, err = svc.Toggle(7, product.ID)
	if err != nil {
		t.Fatalf("toggle off failed: %v", err)
	}
	if in {
		t.Fatal("second toggle should remove")
	}
	items, err = svc.ListByUser(7)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("wishlist should be empty, got %d", len(items))
	}
}

func TestWishlistAddIdempotent(t *testing.T) {
	svc, db := setupWishlistServiceTest(t)
	product := seedCheckoutProduct(t, db, 1, 100, 5)

	if _, err := svc.Add(7, product.ID); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := svc.Add(7, product.ID); err != nil {
		t.Fatalf("repeat add should be idempotent: %v", err)
	}
	items, err := svc.ListByUser(7)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("repeat add should not duplicate, got %d", len(items))
	}
}

func TestWishlistRejectsUnknownOrInactive(t *testing.T) {
	svc, db := setupWishlistServiceTest(t)
	product := seedCheckoutProduct(t, db, 1, 100, 5)

	if _, err := svc.Add(7, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing product want ErrNotFound got %v", err)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := svc.Add(7, product.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("inactive product want ErrNotFound got %v", err)
	}

	if err := svc.Remove(7, product.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("remove absent item want ErrNotFound got %v", err)
	}
}

func TestWishlistIsolatedPerUser(t *testing.T) {
	svc, db := setupWishlistServiceTest(t)
	product := seedCheckoutProduct(t, db, 1, 100, 5)

	if _, err := svc.Add(7, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	items, err := svc.ListByUser(8)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("other user wishlist should be empty, got %d", len(items))
	}
	if err := svc.Remove(8, product.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other user remove want ErrNotFound got %v", err)
	}
}
