package repository

import (
	"errors"

	"github.com/shopnext/internal/models"

	"gorm.io/gorm"
)

// BannerRepository 轮播图数据访问接口
type BannerRepository interface {
	GetByID(id uint) (*models.Banner, error)
	List(filter BannerListFilter) ([]models.Banner, int64, error)
	ListActive() ([]models.Banner, error)
	Create(banner *models.Banner) error
	Update(banner *models.Banner) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormBannerRepository
}

// GormBannerRepository GORM 实现
type GormBannerRepository struct {
	db *gorm.DB
}

// NewBannerRepository 创建轮播图仓库
func NewBannerRepository(db *gorm.DB) *GormBannerRepository {
	return &GormBannerRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBannerRepository) WithTx(tx *gorm.DB) *GormBannerRepository {
	if tx == nil {
		return r
	}
	return &GormBannerRepository{db: tx}
}

// GetByID 根据ID获取轮播图
func (r *GormBannerRepository) GetByID(id uint) (*models.Banner, error) {
	var banner models.Banner
	if err := r.db.First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &banner, nil
}

// List 获取轮播图列表
func (r *GormBannerRepository) List(filter BannerListFilter) ([]models.Banner, int64, error) {
	var banners []models.Banner
	query := r.db.Model(&models.Banner{})

	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("sort_order asc, id desc").Find(&banners).Error; err != nil {
		return nil, 0, err
	}
	return banners, total, nil
}

// ListActive 获取启用中的轮播图
func (r *GormBannerRepository) ListActive() ([]models.Banner, error) {
	var banners []models.Banner
	if err := r.db.Where("is_active = ?", true).Order("sort_order asc, id desc").Find(&banners).Error; err != nil {
		return nil, err
	}
	return banners, nil
}

// Create 创建轮播图
func (r *GormBannerRepository) Create(banner *models.Banner) error {
	return r.db.Create(banner).Error
}

// Update 更新轮播图
func (r *GormBannerRepository) Update(banner *models.Banner) error {
	return r.db.Save(banner).Error
}

// Delete 删除轮播图
func (r *GormBannerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Banner{}, id).Error
}
