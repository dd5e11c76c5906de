package service

import (
	"strings"

	"github.com/shopnext/internal/logger"
	"github.com/shopnext/internal/models"
	"github.com/shopnext/internal/repository"
)

// ReviewService 商品评价服务。
// 一个用户对一个商品只能评价一次；写入后刷新商品评分快照。
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	productSvc  *ProductService
}

// NewReviewService 创建评价服务
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	productSvc *ProductService,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		productSvc:  productSvc,
	}
}

// ListByProduct 商品评价列表
func (s *ReviewService) ListByProduct(filter repository.ReviewListFilter) ([]models.Review, int64, error) {
	return s.reviewRepo.ListByProduct(filter)
}

// Create 发表评价
func (s *ReviewService) Create(userID, productID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidInput
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrNotFound
	}
	existing, err := s.reviewRepo.GetByProductAndUser(productID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrReviewExists
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	s.refreshProductRating(productID)
	return review, nil
}

// Update 修改自己的评价
func (s *ReviewService) Update(reviewID, userID uint, rating int, comment string) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrNotFound
	}
	if review.UserID != userID {
		return nil, ErrForbidden
	}
	if rating != 0 {
		if rating < 1 || rating > 5 {
			return nil, ErrInvalidInput
		}
		review.Rating = rating
	}
	if comment != "" {
		review.Comment = strings.TrimSpace(comment)
	}
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	s.refreshProductRating(review.ProductID)
	return review, nil
}

// Delete 删除评价；管理员可删任意评价
func (s *ReviewService) Delete(reviewID, userID uint, isAdmin bool) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrNotFound
	}
	if !isAdmin && review.UserID != userID {
		return ErrForbidden
	}
	if err := s.reviewRepo.Delete(review.ID); err != nil {
		return err
	}
	s.refreshProductRating(review.ProductID)
	return nil
}

func (s *ReviewService) refreshProductRating(productID uint) {
	avg, count, err := s.reviewRepo.Aggregate(productID)
	if err != nil {
		logger.Warnw("review_aggregate_failed", "product_id", productID, "error", err)
		return
	}
	if err := s.productSvc.RefreshRating(productID, avg, count); err != nil {
		logger.Warnw("product_rating_refresh_failed", "product_id", productID, "error", err)
	}
}
