package service

import (
	"fmt"

	"github.com/shopnext/internal/models"
	"github.com/shopnext/internal/repository"

	"github.com/shopspring/decimal"
)

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// CartView 购物车视图；汇总字段每次读取时重新计算，不落库
type CartView struct {
	Items      []models.CartItem `json:"items"`
	TotalItems int               `json:"total_items"`
	Subtotal   models.Money      `json:"subtotal"`
}

// Get 获取用户购物车（不存在时返回空车）
func (s *CartService) Get(userID uint) (*CartView, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return buildCartView(items), nil
}

// AddItem 添加商品到购物车；单价取当前售价快照，重复添加累加数量
func (s *CartService) AddItem(userID, productID uint, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, ErrInvalidInput
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if !product.IsActive {
		return nil, ErrProductInactive
	}

	targetQty := quantity
	existing, err := s.cartRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		targetQty += existing.Quantity
	}
	if product.Stock < targetQty {
		return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  targetQty,
		UnitPrice: product.Price,
	}
	if err := s.cartRepo.Upsert(item); err != nil {
		return nil, err
	}
	return s.Get(userID)
}

// UpdateItem 调整购物车商品数量
func (s *CartService) UpdateItem(userID, productID uint, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, ErrInvalidInput
	}

	existing, err := s.cartRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if product.Stock < quantity {
		return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
	}

	existing.Quantity = quantity
	if err := s.cartRepo.Upsert(existing); err != nil {
		return nil, err
	}
	return s.Get(userID)
}

// RemoveItem 移除购物车商品
func (s *CartService) RemoveItem(userID, productID uint) (*CartView, error) {
	if err := s.cartRepo.DeleteByUserAndProduct(userID, productID); err != nil {
		return nil, err
	}
	return s.Get(userID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	return s.cartRepo.ClearByUser(userID)
}

func buildCartView(items []models.CartItem) *CartView {
	view := &CartView{Items: items}
	subtotal := decimal.Zero
	for _, item := range items {
		view.TotalItems += item.Quantity
		lineTotal := item.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
	}
	view.Subtotal = models.NewMoneyFromDecimal(subtotal)
	return view
}
