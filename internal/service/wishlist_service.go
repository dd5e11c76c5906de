package service

import (
	"github.com/shopnext/internal/models"
	"github.com/shopnext/internal/repository"
)

// WishlistService 心愿单服务
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

// ListByUser 用户心愿单
func (s *WishlistService) ListByUser(userID uint) ([]models.WishlistItem, error) {
	return s.wishlistRepo.ListByUser(userID)
}

// Add 加入心愿单；已存在时幂等返回
func (s *WishlistService) Add(userID, productID uint) (*models.WishlistItem, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrNotFound
	}
	item := &models.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.wishlistRepo.Add(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove 移出心愿单
func (s *WishlistService) Remove(userID, productID uint) error {
	exists, err := s.wishlistRepo.Exists(userID, productID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return s.wishlistRepo.Remove(userID, productID)
}

// Toggle 切换心愿单状态，返回操作后是否在心愿单中
func (s *WishlistService) Toggle(userID, productID uint) (bool, error) {
	exists, err := s.wishlistRepo.Exists(userID, productID)
	if err != nil {
		return false, err
	}
	if exists {
		if err := s.wishlistRepo.Remove(userID, productID); err != nil {
			return true, err
		}
		return false, nil
	}
	if _, err := s.Add(userID, productID); err != nil {
		return false, err
	}
	return true, nil
}
