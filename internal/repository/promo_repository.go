package repository

import (
	"errors"

	"github.com/shopnext/internal/constants"
	"github.com/shopnext/internal/models"

	"gorm.io/gorm"
)

// PromoRepository 促销横幅数据访问接口
type PromoRepository interface {
	SingletonContentRepository
	GetByID(id uint) (*models.Promo, error)
	GetActive() (*models.Promo, error)
	List(page, pageSize int) ([]models.Promo, int64, error)
	Create(promo *models.Promo) error
	Update(promo *models.Promo) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormPromoRepository
}

// GormPromoRepository GORM 实现
type GormPromoRepository struct {
	db *gorm.DB
}

// NewPromoRepository 创建促销横幅仓库
func NewPromoRepository(db *gorm.DB) *GormPromoRepository {
	return &GormPromoRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPromoRepository) WithTx(tx *gorm.DB) *GormPromoRepository {
	if tx == nil {
		return r
	}
	return &GormPromoRepository{db: tx}
}

// Kind 内容类型标识
func (r *GormPromoRepository) Kind() string {
	return constants.ContentKindPromo
}

// Exists 判断记录是否存在
func (r *GormPromoRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Promo{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetByID 根据ID获取促销横幅
func (r *GormPromoRepository) GetByID(id uint) (*models.Promo, error) {
	var promo models.Promo
	if err := r.db.First(&promo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promo, nil
}

// GetActive 获取当前激活的促销横幅
func (r *GormPromoRepository) GetActive() (*models.Promo, error) {
	var promo models.Promo
	if err := r.db.Where("is_active = ?", true).Order("updated_at desc").First(&promo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promo, nil
}

// List 获取促销横幅列表
func (r *GormPromoRepository) List(page, pageSize int) ([]models.Promo, int64, error) {
	var promos []models.Promo
	query := r.db.Model(&models.Promo{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)
	if err := query.Order("id desc").Find(&promos).Error; err != nil {
		return nil, 0, err
	}
	return promos, total, nil
}

// Create 创建促销横幅
func (r *GormPromoRepository) Create(promo *models.Promo) error {
	return r.db.Create(promo).Error
}

// Update 更新促销横幅
func (r *GormPromoRepository) Update(promo *models.Promo) error {
	return r.db.Save(promo).Error
}

// Delete 删除促销横幅
func (r *GormPromoRepository) Delete(id uint) error {
	return r.db.Delete(&models.Promo{}, id).Error
}

// DeactivateAll 停用全部促销横幅
func (r *GormPromoRepository) DeactivateAll() error {
	return r.db.Model(&models.Promo{}).Where("is_active = ?", true).UpdateColumn("is_active", false).Error
}

// SetActive 设置指定促销横幅激活状态
func (r *GormPromoRepository) SetActive(id uint, active bool) error {
	result := r.db.Model(&models.Promo{}).Where("id = ?", id).UpdateColumn("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountActive 统计激活数量
func (r *GormPromoRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Promo{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
