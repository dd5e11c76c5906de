package service

import (
	"strings"
	"time"

	"github.com/shopnext/internal/constants"
	"github.com/shopnext/internal/models"
	"github.com/shopnext/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CouponService 优惠券服务
type CouponService struct {
	couponRepo repository.CouponRepository
	usageRepo  repository.CouponUsageRepository
}

// NewCouponService 创建优惠券服务
func NewCouponService(couponRepo repository.CouponRepository, usageRepo repository.CouponUsageRepository) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		usageRepo:  usageRepo,
	}
}

// Validate 校验优惠码是否可用于当前购物车金额。
// 校验顺序：存在 → 启用 → 时间窗口 → 总量上限 → 使用门槛 → 非复用券的重复使用。
func (s *CouponService) Validate(code string, cartTotal models.Money, userID uint) (*models.Coupon, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, ErrCouponInvalid
	}

	coupon, err := s.couponRepo.GetByCode(trimmed)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	if !coupon.IsActive {
		return coupon, ErrCouponInactive
	}

	now := time.Now()
	if coupon.StartsAt != nil && now.Before(*coupon.StartsAt) {
		return coupon, ErrCouponNotStarted
	}
	if coupon.EndsAt != nil && now.After(*coupon.EndsAt) {
		return coupon, ErrCouponExpired
	}

	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return coupon, ErrCouponUsageLimit
	}

	if cartTotal.Decimal.Cmp(coupon.MinAmount.Decimal) < 0 {
		return coupon, ErrCouponMinAmount
	}

	if !coupon.IsReusable && userID != 0 {
		count, err := s.usageRepo.CountByUser(coupon.ID, userID)
		if err != nil {
			return coupon, err
		}
		if count > 0 {
			return coupon, ErrCouponAlreadyUsed
		}
	}

	return coupon, nil
}

// CalculateDiscount 计算折扣金额（纯函数，无副作用）。
// 百分比券按比例计算并受 MaxDiscount 封顶；固定券直接取面值；
// 结果最终收敛到 [0, cartTotal]。
func (s *CouponService) CalculateDiscount(coupon *models.Coupon, cartTotal models.Money) models.Money {
	if coupon == nil {
		return models.Money{}
	}

	var discount decimal.Decimal
	switch strings.ToLower(strings.TrimSpace(coupon.Type)) {
	case constants.CouponTypePercentage:
		percent := coupon.Value.Decimal.Div(decimal.NewFromInt(100))
		discount = cartTotal.Decimal.Mul(percent)
		if coupon.MaxDiscount.Decimal.GreaterThan(decimal.Zero) && discount.GreaterThan(coupon.MaxDiscount.Decimal) {
			discount = coupon.MaxDiscount.Decimal
		}
	case constants.CouponTypeFixed:
		discount = coupon.Value.Decimal
	default:
		return models.Money{}
	}

	if discount.LessThan(decimal.Zero) {
		discount = decimal.Zero
	}
	if discount.GreaterThan(cartTotal.Decimal) {
		discount = cartTotal.Decimal
	}
	return models.NewMoneyFromDecimal(discount)
}

// RecordUsage 记录一次优惠券消费：递增计数并落一条使用记录。
// 该写入一旦发生不做回滚，即使后续下单失败。
func (s *CouponService) RecordUsage(coupon *models.Coupon, userID uint, discount models.Money) (*models.CouponUsage, error) {
	if err := s.couponRepo.IncrementUsedCount(coupon.ID, 1); err != nil {
		return nil, err
	}
	usage := &models.CouponUsage{
		CouponID:       coupon.ID,
		UserID:         userID,
		DiscountAmount: discount,
	}
	if err := s.usageRepo.Create(usage); err != nil {
		return nil, err
	}
	return usage, nil
}

// AttachUsageOrder 回填使用记录对应的订单；传入 tx 时在该事务内执行
func (s *CouponService) AttachUsageOrder(tx *gorm.DB, usageID, orderID uint) error {
	return s.usageRepo.WithTx(tx).AttachOrder(usageID, orderID)
}

// CouponInput 创建/更新优惠券输入
type CouponInput struct {
	Code        string
	Type        string
	Value       models.Money
	MinAmount   models.Money
	MaxDiscount models.Money
	UsageLimit  int
	IsReusable  *bool
	StartsAt    *time.Time
	EndsAt      *time.Time
	IsActive    *bool
}

// Create 创建优惠券（管理端）
func (s *CouponService) Create(input CouponInput) (*models.Coupon, error) {
	coupon, err := buildCouponEntity(input, nil)
	if err != nil {
		return nil, err
	}

	existing, err := s.couponRepo.GetByCode(coupon.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCouponCodeTaken
	}

	if err := s.couponRepo.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Update 更新优惠券（管理端）
func (s *CouponService) Update(id uint, input CouponInput) (*models.Coupon, error) {
	existing, err := s.couponRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	coupon, err := buildCouponEntity(input, existing)
	if err != nil {
		return nil, err
	}

	if coupon.Code != existing.Code {
		other, err := s.couponRepo.GetByCode(coupon.Code)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, ErrCouponCodeTaken
		}
	}

	if err := s.couponRepo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Delete 删除优惠券（管理端）
func (s *CouponService) Delete(id uint) error {
	existing, err := s.couponRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.couponRepo.Delete(id)
}

// List 获取优惠券列表（管理端）
func (s *CouponService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.couponRepo.List(filter)
}

// GetByCode 根据优惠码查询
func (s *CouponService) GetByCode(code string) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

func buildCouponEntity(input CouponInput, existing *models.Coupon) (*models.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, ErrInvalidInput
	}

	couponType := strings.ToLower(strings.TrimSpace(input.Type))
	if couponType != constants.CouponTypeFixed && couponType != constants.CouponTypePercentage {
		return nil, ErrInvalidInput
	}
	if input.Value.Decimal.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidInput
	}

	// 写入时强制 validFrom < validUntil
	if input.StartsAt != nil && input.EndsAt != nil && !input.StartsAt.Before(*input.EndsAt) {
		return nil, ErrInvalidInput
	}

	coupon := existing
	if coupon == nil {
		coupon = &models.Coupon{IsActive: true}
	}
	coupon.Code = code
	coupon.Type = couponType
	coupon.Value = input.Value
	coupon.MinAmount = input.MinAmount
	coupon.MaxDiscount = input.MaxDiscount
	coupon.UsageLimit = input.UsageLimit
	coupon.StartsAt = input.StartsAt
	coupon.EndsAt = input.EndsAt
	if input.IsReusable != nil {
		coupon.IsReusable = *input.IsReusable
	}
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}
	return coupon, nil
}
