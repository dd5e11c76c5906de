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

const heroActiveCacheKey = "content:hero:active"
const contentCacheTTL = 5 * time.Minute

// HeroService 首页主视觉服务
type HeroService struct {
	repo        repository.HeroRepository
	activator   *ContentActivator
	activitySvc *ActivityService
}

// NewHeroService 创建主视觉服务
func NewHeroService(repo repository.HeroRepository, activator *ContentActivator, activitySvc *ActivityService) *HeroService {
	return &HeroService{
		repo:        repo,
		activator:   activator,
		activitySvc: activitySvc,
	}
}

// HeroInput 创建/更新主视觉输入
type HeroInput struct {
	Title    string
	Subtitle string
	CTAText  string
	CTALink  string
	Image    string
	IsActive *bool
}

// List 获取主视觉列表（管理端）
func (s *HeroService) List(page, pageSize int) ([]models.Hero, int64, error) {
	return s.repo.List(page, pageSize)
}

// GetByID 根据ID获取主视觉
func (s *HeroService) GetByID(id uint) (*models.Hero, error) {
	hero, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if hero == nil {
		return nil, ErrNotFound
	}
	return hero, nil
}

// GetActive 获取当前激活的主视觉（经缓存）
func (s *HeroService) GetActive(ctx context.Context) (*models.Hero, error) {
	var cached models.Hero
	hit, err := cache.GetJSON(ctx, heroActiveCacheKey, &cached)
	if err != nil {
		logger.Warnw("hero_active_cache_read_failed", "error", err)
	}
	if hit {
		return &cached, nil
	}

	hero, err := s.repo.GetActive()
	if err != nil {
		return nil, err
	}
	if hero != nil {
		if err := cache.SetJSON(ctx, heroActiveCacheKey, hero, contentCacheTTL); err != nil {
			logger.Warnw("hero_active_cache_write_failed", "error", err)
		}
	}
	return hero, nil
}

// Create 创建主视觉；携带激活标记时先停用同类型全部行
func (s *HeroService) Create(input HeroInput) (*models.Hero, error) {
	hero, err := buildHeroEntity(input, nil)
	if err != nil {
		return nil, err
	}

	if hero.IsActive {
		if err := s.activator.EnsureExclusive(s.repo); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Create(hero); err != nil {
		return nil, err
	}
	s.invalidateCache()
	return hero, nil
}

// Update 更新主视觉；补丁置激活时先停用同类型全部行
func (s *HeroService) Update(id uint, input HeroInput) (*models.Hero, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	hero, err := buildHeroEntity(input, existing)
	if err != nil {
		return nil, err
	}

	if input.IsActive != nil && *input.IsActive {
		if err := s.activator.EnsureExclusive(s.repo); err != nil {
			return nil, err
		}
		hero.IsActive = true
	}
	if err := s.repo.Update(hero); err != nil {
		return nil, err
	}
	s.invalidateCache()
	return hero, nil
}

// Delete 删除主视觉
func (s *HeroService) Delete(id uint) error {
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

// Activate 激活指定主视觉（经节流窗口）
func (s *HeroService) Activate(id uint, actorID uint) (*models.Hero, error) {
	if err := s.activator.Activate(s.repo, id); err != nil {
		return nil, err
	}
	s.invalidateCache()

	hero, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.activitySvc.Record(constants.ActivityContentActivate, actorID, id,
		"hero activated", models.JSON{"kind": constants.ContentKindHero, "id": id})
	return hero, nil
}

// Deactivate 停用指定主视觉
func (s *HeroService) Deactivate(id uint) (*models.Hero, error) {
	if err := s.activator.Deactivate(s.repo, id); err != nil {
		return nil, err
	}
	s.invalidateCache()
	return s.repo.GetByID(id)
}

func (s *HeroService) invalidateCache() {
	if err := cache.Del(context.Background(), heroActiveCacheKey); err != nil {
		logger.Warnw("hero_active_cache_del_failed", "error", err)
	}
}

func buildHeroEntity(input HeroInput, existing *models.Hero) (*models.Hero, error) {
	title := strings.TrimSpace(input.Title)
	if existing == nil && title == "" {
		return nil, ErrInvalidInput
	}

	hero := existing
	if hero == nil {
		hero = &models.Hero{}
	}
	if title != "" {
		hero.Title = title
	}
	if input.Subtitle != "" {
		hero.Subtitle = strings.TrimSpace(input.Subtitle)
	}
	if input.CTAText != "" {
		hero.CTAText = strings.TrimSpace(input.CTAText)
	}
	if input.CTALink != "" {
		hero.CTALink = strings.TrimSpace(input.CTALink)
	}
	if input.Image != "" {
		hero.Image = strings.TrimSpace(input.Image)
	}
	if existing == nil && input.IsActive != nil {
		hero.IsActive = *input.IsActive
	}
	if existing != nil && input.IsActive != nil && !*input.IsActive {
		hero.IsActive = false
	}
	return hero, nil
}
