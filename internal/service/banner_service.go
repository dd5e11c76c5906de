package service

import (
	"strings"

	"github.com/shopnext/internal/constants"
	"github.com/shopnext/internal/models"
	"github.com/shopnext/internal/repository"
)

// BannerService 轮播图服务
type BannerService struct {
	bannerRepo repository.BannerRepository
}

// NewBannerService 创建轮播图服务
func NewBannerService(bannerRepo repository.BannerRepository) *BannerService {
	return &BannerService{bannerRepo: bannerRepo}
}

// ListActive 公开端轮播图列表
func (s *BannerService) ListActive() ([]models.Banner, error) {
	return s.bannerRepo.ListActive()
}

// List 管理端轮播图列表
func (s *BannerService) List(filter repository.BannerListFilter) ([]models.Banner, int64, error) {
	return s.bannerRepo.List(filter)
}

// GetByID 轮播图详情
func (s *BannerService) GetByID(id uint) (*models.Banner, error) {
	banner, err := s.bannerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if banner == nil {
		return nil, ErrNotFound
	}
	return banner, nil
}

// BannerInput 轮播图创建/更新输入
type BannerInput struct {
	Title     string
	Subtitle  string
	Image     string
	LinkType  string
	LinkValue string
	SortOrder *int
	IsActive  *bool
}

// Create 创建轮播图
func (s *BannerService) Create(input BannerInput) (*models.Banner, error) {
	banner := &models.Banner{
		Title:     strings.TrimSpace(input.Title),
		Subtitle:  strings.TrimSpace(input.Subtitle),
		Image:     strings.TrimSpace(input.Image),
		LinkType:  constants.BannerLinkTypeNone,
		LinkValue: strings.TrimSpace(input.LinkValue),
		IsActive:  true,
	}
	if banner.Title == "" || banner.Image == "" {
		return nil, ErrInvalidBanner
	}
	if input.LinkType != "" {
		linkType, err := normalizeBannerLink(input.LinkType, banner.LinkValue)
		if err != nil {
			return nil, err
		}
		banner.LinkType = linkType
	}
	if input.SortOrder != nil {
		banner.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}
	if err := s.bannerRepo.Create(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// Update 更新轮播图
func (s *BannerService) Update(id uint, input BannerInput) (*models.Banner, error) {
	banner, err := s.bannerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if banner == nil {
		return nil, ErrNotFound
	}

	if v := strings.TrimSpace(input.Title); v != "" {
		banner.Title = v
	}
	if input.Subtitle != "" {
		banner.Subtitle = strings.TrimSpace(input.Subtitle)
	}
	if v := strings.TrimSpace(input.Image); v != "" {
		banner.Image = v
	}
	if input.LinkValue != "" {
		banner.LinkValue = strings.TrimSpace(input.LinkValue)
	}
	if input.LinkType != "" {
		linkType, err := normalizeBannerLink(input.LinkType, banner.LinkValue)
		if err != nil {
			return nil, err
		}
		banner.LinkType = linkType
	}
	if input.SortOrder != nil {
		banner.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}

	if err := s.bannerRepo.Update(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// Delete 删除轮播图
func (s *BannerService) Delete(id uint) error {
	banner, err := s.bannerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if banner == nil {
		return ErrNotFound
	}
	return s.bannerRepo.Delete(id)
}

func normalizeBannerLink(linkType, linkValue string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(linkType))
	switch normalized {
	case constants.BannerLinkTypeNone:
		return normalized, nil
	case constants.BannerLinkTypeInternal, constants.BannerLinkTypeExternal:
		if strings.TrimSpace(linkValue) == "" {
			return "", ErrInvalidBanner
		}
		return normalized, nil
	default:
		return "", ErrInvalidBanner
	}
}
