package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopnext/internal/cache"
	"github.com/shopnext/internal/constants"
	"github.com/shopnext/internal/logger"
	"github.com/shopnext/internal/models"
	"github.com/shopnext/internal/repository"
)

const productCacheTTL = 5 * time.Minute

// ProductService 商品服务
type ProductService struct {
	productRepo   repository.ProductRepository
	categoryRepo  repository.CategoryRepository
	inventoryRepo repository.InventoryLogRepository
	activitySvc   *ActivityService
}

// NewProductService 创建商品服务
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	inventoryRepo repository.InventoryLogRepository,
	activitySvc *ActivityService,
) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		inventoryRepo: inventoryRepo,
		activitySvc:   activitySvc,
	}
}

// List 商品列表；onlyActive 时只返回上架商品（公开端）
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

func productDetailCacheKey(slug string) string {
	return fmt.Sprintf("product:detail:%s", slug)
}

// GetBySlug 公开端商品详情，经 Redis 读穿缓存；下架商品视作不存在
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrNotFound
	}
	var cached models.Product
	hit, err := cache.GetJSON(ctx, productDetailCacheKey(slug), &cached)
	if err != nil {
		logger.Warnw("product_cache_read_failed", "slug", slug, "error", err)
	}
	if hit {
		cached.InStock = cached.Stock > 0
		return &cached, nil
	}

	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrNotFound
	}
	if err := cache.SetJSON(ctx, productDetailCacheKey(slug), product, productCacheTTL); err != nil {
		logger.Warnw("product_cache_write_failed", "slug", slug, "error", err)
	}
	return product, nil
}

// GetByID 管理端商品详情，不过滤上架状态
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// ProductInput 商品创建/更新输入
type ProductInput struct {
	CategoryID        uint
	Name              string
	Slug              string
	Description       string
	Price             models.Money
	ComparePrice      models.Money
	Images            models.StringArray
	Stock             *int
	LowStockThreshold *int
	IsActive          *bool
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if name == "" || slug == "" {
		return nil, ErrInvalidInput
	}
	if input.Price.Decimal.IsNegative() {
		return nil, ErrInvalidInput
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: category %d", ErrNotFound, input.CategoryID)
	}
	existing, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	product := &models.Product{
		CategoryID:        input.CategoryID,
		Name:              name,
		Slug:              slug,
		Description:       input.Description,
		Price:             input.Price,
		ComparePrice:      input.ComparePrice,
		Images:            input.Images,
		LowStockThreshold: 5,
		IsActive:          true,
	}
	if input.Stock != nil && *input.Stock > 0 {
		product.Stock = *input.Stock
	}
	if input.LowStockThreshold != nil && *input.LowStockThreshold > 0 {
		product.LowStockThreshold = *input.LowStockThreshold
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	if product.Stock > 0 {
		s.recordInventory(product.ID, product.Stock, constants.InventoryReasonAdminAdjust, 0, product.Stock)
	}
	product.InStock = product.Stock > 0
	return product, nil
}

// Update 更新商品；库存不在此处改动，走 AdjustStock
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		product.Name = name
	}
	if slug := strings.ToLower(strings.TrimSpace(input.Slug)); slug != "" && slug != product.Slug {
		existing, err := s.productRepo.GetBySlug(slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != product.ID {
			return nil, ErrSlugTaken
		}
		s.invalidateDetailCache(product.Slug)
		product.Slug = slug
	}
	if input.CategoryID != 0 && input.CategoryID != product.CategoryID {
		category, err := s.categoryRepo.GetByID(input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, fmt.Errorf("%w: category %d", ErrNotFound, input.CategoryID)
		}
		product.CategoryID = input.CategoryID
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if !input.Price.Decimal.IsZero() {
		if input.Price.Decimal.IsNegative() {
			return nil, ErrInvalidInput
		}
		product.Price = input.Price
	}
	if !input.ComparePrice.Decimal.IsZero() {
		product.ComparePrice = input.ComparePrice
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.LowStockThreshold != nil && *input.LowStockThreshold > 0 {
		product.LowStockThreshold = *input.LowStockThreshold
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	s.invalidateDetailCache(product.Slug)
	product.InStock = product.Stock > 0
	return product, nil
}

// Delete 删除商品（软删除）
func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateDetailCache(product.Slug)
	return nil
}

// AdjustStock 管理端调整库存：原子增减、落流水、落审计。
// 调减不允许把库存打成负数。
func (s *ProductService) AdjustStock(productID uint, delta int, actorID uint) (*models.Product, error) {
	if delta == 0 {
		return nil, ErrInvalidInput
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if delta < 0 && product.Stock+delta < 0 {
		return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
	}

	updated, err := s.productRepo.ApplyStockDelta(productID, delta)
	if err != nil {
		return nil, err
	}
	s.recordInventory(productID, delta, constants.InventoryReasonAdminAdjust, 0, updated)
	s.activitySvc.Record(constants.ActivityStockAdjusted, actorID, productID,
		fmt.Sprintf("stock of %s adjusted by %+d", product.Name, delta),
		models.JSON{"delta": delta, "stock_after": updated})
	s.invalidateDetailCache(product.Slug)

	product.Stock = updated
	product.InStock = updated > 0
	return product, nil
}

// ListInventoryLogs 商品库存流水
func (s *ProductService) ListInventoryLogs(productID uint, page, pageSize int) ([]models.InventoryLog, int64, error) {
	return s.inventoryRepo.ListByProduct(productID, page, pageSize)
}

// RefreshRating 以评价汇总刷新商品评分快照
func (s *ProductService) RefreshRating(productID uint, avg float64, count int) error {
	if err := s.productRepo.UpdateRating(productID, avg, count); err != nil {
		return err
	}
	if product, err := s.productRepo.GetByID(productID); err == nil && product != nil {
		s.invalidateDetailCache(product.Slug)
	}
	return nil
}

func (s *ProductService) recordInventory(productID uint, delta int, reason string, refID uint, stockAfter int) {
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

func (s *ProductService) invalidateDetailCache(slug string) {
	if strings.TrimSpace(slug) == "" {
		return
	}
	if err := cache.Del(context.Background(), productDetailCacheKey(slug)); err != nil {
		logger.Warnw("product_cache_del_failed", "slug", slug, "error", err)
	}
}
