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

func setupReviewServiceTest(t *testing.T) (*ReviewService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:review_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Review{},
		&models.InventoryLog{},
		&models.Activity{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	productRepo := repository.NewProductRepository(db)
	productSvc := NewProductService(
		productRepo,
		repository.NewCategoryRepository(db),
		repository.NewInventoryLogRepository(db),
		NewActivityService(repository.NewActivityRepository(db)),
	)
	svc := NewReviewService(repository.NewReviewRepository(db), productRepo, productSvc)
	return svc, db
}

func productRating(t *testing.T, db *gorm.DB, productID uint) (float64, int) {
	t.Helper()
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	return product.RatingAvg, product.RatingCount
}

func TestReviewCreateRefreshesRating(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	product := seedCheckoutProduct(t, db, 1, 100, 5)

	review, err := svc.Create(7, product.ID, 5, "  great sound  ")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if review.Comment != "great sound" {
		t.Fatalf("comment should be trimmed, got %q", review.Comment)
	}
	if avg, count := productRating(t, db, product.ID); avg != 5 || count != 1 {
		t.Fatalf("rating = %v/%d want 5/1", avg, count)
	}

	if _, err := svc.Create(8, product.ID, 2, "meh"); err != nil {
		t.Fatalf("second review failed: %v", err)
	}
	if avg, count := productRating(t, db, product.ID); avg != 3.5 || count != 2 {
		t.Fatalf("rating = %v/%d want 3.5/2", avg, count)
	}
}

func TestReviewCreateValidation(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	product := seedCheckoutProduct(t, db, 1, 100, 5)

	if _, err := svc.Create(7, product.ID, 0, "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("rating 0 want ErrInvalidInput got %v", err)
	}
	if _, err := svc.Create(7, product.ID, 6, "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("rating 6 want ErrInvalidInput got %v", err)
	}
	if _, err := svc.Create(7, 999, 4, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing product want ErrNotFound got %v", err)
	}

	if _, err := svc.Create(7, product.ID, 4, "first"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	// 同一用户同一商品只允许一条评价
	if _, err := svc.Create(7, product.ID, 5, "again"); !errors.Is(err, ErrReviewExists) {
		t.Fatalf("duplicate review want ErrReviewExists got %v", err)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := svc.Create(8, product.ID, 4, "late"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("inactive product want ErrNotFound got %v", err)
	}
}

func TestReviewUpdateOwnerOnly(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	product := seedCheckoutProduct(t, db, 1, 100, 5)

	review, err := svc.Create(7, product.ID, 2, "early impressions")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Update(review.ID, 8, 5, "hijack"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign update want ErrForbidden got %v", err)
	}
	if _, err := svc.Update(review.ID, 7, 9, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("rating 9 want ErrInvalidInput got %v", err)
	}
	if _, err := svc.Update(999, 7, 4, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing review want ErrNotFound got %v", err)
	}

	updated, err := svc.Update(review.ID, 7, 4, "")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Rating != 4 || updated.Comment != "early impressions" {
		t.Fatalf("unexpected review after update: %+v", updated)
	}
	if avg, count := productRating(t, db, product.ID); avg != 4 || count != 1 {
		t.Fatalf("rating = %v/%d want 4/1", avg, count)
	}
}

func TestReviewDelete(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	product := seedCheckoutProduct(t, db, 1, 100, 5)

	review, err := svc.Create(7, product.ID, 5, "owner review")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(review.ID, 8, false); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign delete want ErrForbidden got %v", err)
	}
	// 管理员可删任意评价
	if err := svc.Delete(review.ID, 8, true); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if avg, count := productRating(t, db, product.ID); avg != 0 || count != 0 {
		t.Fatalf("rating should reset, got %v/%d", avg, count)
	}
	if err := svc.Delete(review.ID, 7, false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted review want ErrNotFound got %v", err)
	}
}
