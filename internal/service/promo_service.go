package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopnext/internal/cache"
	"github.com/shopnext/internal/constants"
	"github.com/shopnext/internal/logger"
	"github.com/shopnext/internal/models"
	"github.com/shopnext/internal/repository"
)

const promoActiveCacheKey = "content:promo:active"

// PromoService 促销横幅服务
type PromoService struct {
	repo        repository.PromoRepository
	activator   *ContentActivator
	activitySvc *ActivityService
}

// NewPromoService 创建促销横幅服务
func NewPromoService(repo repository.PromoRepository, activator *ContentActivator, activitySvc *ActivityService) *PromoService {
	return &PromoService{
		repo:        repo,
		activator:   activator,
		activitySvc: activitySvc,
	}
}

// PromoInput 创建/更新促销横幅输入
type PromoInput struct {
	Title        string
	Description  string
	DiscountText string
	Code         string
	Image        string
	ExpiresAt    *time.Time
	IsActive     *bool
}

// List 获取促销横幅列表（管理端）
func (s *PromoService) List(page, pageSize int) ([]models.Promo, int64, error) {
	return s.repo.List(page, pageSize)
}

// GetByID 根据ID获取促销横幅
func (s *PromoService) GetByID(id uint) (*models.Promo, error) {
	promo, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, ErrNotFound
	}
	return promo, nil
}

// GetActive 获取当前激活的促销横幅（经缓存）
func (s *PromoService) GetActive(ctx context.Context) (*models.Promo, error) {
	var cached models.Promo
	hit, err := cache.GetJSON(ctx, promoActiveCacheKey, &cached)
	if err != nil {
		logger.Warnw("promo_active_cache_read_failed", "error", err)
	}
	if hit {
		return &cached, nil
	}

	promo, err := s.repo.GetActive()
	if err != nil {
		return nil, err
	}
	if promo != nil {
		if err := cache.SetJSON(ctx, promoActiveCacheKey, promo, contentCacheTTL); err != nil {
			logger.Warnw("promo_active_cache_write_failed", "error", err)
		}
	}
	return promo, nil
}

// Create 创建促销横幅；携带激活标记时先停用同类型全部行
func (s *PromoService) Create(input PromoInput) (*models.Promo, error) {
	promo, err := buildPromoEntity(input, nil)
	if err != nil {
		return nil, err
	}

	if promo.IsActive {
		if err := s.activator.EnsureExclusive(s.repo); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Create(promo); err != nil {
		return nil, err
	}
	s.invalidateCache()
	return promo, nil
}

// Update 更新促销横幅；补丁置激活时先停用同类型全部行
func (s *PromoService) Update(id uint, input PromoInput) (*models.Promo, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	promo, err := buildPromoEntity(input, existing)
	if err != nil {
		return nil, err
	}

	if input.IsActive != nil && *input.IsActive {
		if err := s.activator.EnsureExclusive(s.repo); err != nil {
			return nil, err
		}
		promo.IsActive = true
	}
	if err := s.repo.Update(promo); err != nil {
		return nil, err
	}
	s.invalidateCache()
	return promo, nil
}

// Delete 删除促销横幅
func (s *PromoService) Delete(id uint) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

// Activate 激活指定促销横幅（经节流窗口）
func (s *PromoService) Activate(id uint, actorID uint) (*models.Promo, error) {
	if err := s.activator.Activate(s.repo, id); err != nil {
		return nil, err
	}
	s.invalidateCache()

	promo, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.activitySvc.Record(constants.ActivityContentActivate, actorID, id,
		"promo activated", models.JSON{"kind": constants.ContentKindPromo, "id": id})
	return promo, nil
}

// Deactivate 停用指定促销横幅
func (s *PromoService) Deactivate(id uint) (*models.Promo, error) {
	if err := s.activator.Deactivate(s.repo, id); err != nil {
		return nil, err
	}
	s.invalidateCache()
	return s.repo.GetByID(id)
}

func (s *PromoService) invalidateCache() {
	if err := cache.Del(context.Background(), promoActiveCacheKey); err != nil {
		logger.Warnw("promo_active_cache_del_failed", "error", err)
	}
}

func buildPromoEntity(input PromoInput, existing *models.Promo) (*models.Promo, error) {
	title := strings.TrimSpace(input.Title)
	if existing == nil && title == "" {
		return nil, ErrInvalidInput
	}

	promo := existing
	if promo == nil {
		promo = &models.Promo{}
	}
	if title != "" {
		promo.Title = title
	}
	if input.Description != "" {
		promo.Description = strings.TrimSpace(input.Description)
	}
	if input.DiscountText != "" {
		promo.DiscountText = strings.TrimSpace(input.DiscountText)
	}
	if input.Code != "" {
		promo.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	}
	if input.Image != "" {
		promo.Image = strings.TrimSpace(input.Image)
	}
	if input.ExpiresAt != nil {
		promo.ExpiresAt = input.ExpiresAt
	}
	if existing == nil && input.IsActive != nil {
		promo.IsActive = *input.IsActive
	}
	if existing != nil && input.IsActive != nil && !*input.IsActive {
		promo.IsActive = false
	}
	return promo, nil
}
