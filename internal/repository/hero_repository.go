package repository

import (
	"errors"

	"github.com/shopnext/internal/constants"
	"github.com/shopnext/internal/models"

	"gorm.io/gorm"
)

// HeroRepository 首页主视觉数据访问接口
type HeroRepository interface {
	SingletonContentRepository
	GetByID(id uint) (*models.Hero, error)
	GetActive() (*models.Hero, error)
	List(page, pageSize int) ([]models.Hero, int64, error)
	Create(hero *models.Hero) error
	Update(hero *models.Hero) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormHeroRepository
}

// GormHeroRepository GORM 实现
type GormHeroRepository struct {
	db *gorm.DB
}

// NewHeroRepository 创建主视觉仓库
func NewHeroRepository(db *gorm.DB) *GormHeroRepository {
	return &GormHeroRepository{db: db}
}

// WithTx 绑定事务
func (r *GormHeroRepository) WithTx(tx *gorm.DB) *GormHeroRepository {
	if tx == nil {
		return r
	}
	return &GormHeroRepository{db: tx}
}

// Kind 内容类型标识
func (r *GormHeroRepository) Kind() string {
	return constants.ContentKindHero
}

// Exists 判断记录是否存在
func (r *GormHeroRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Hero{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetByID 根据ID获取主视觉
func (r *GormHeroRepository) GetByID(id uint) (*models.Hero, error) {
	var hero models.Hero
	if err := r.db.First(&hero, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hero, nil
}

// GetActive 获取当前激活的主视觉
func (r *GormHeroRepository) GetActive() (*models.Hero, error) {
	var hero models.Hero
	if err := r.db.Where("is_active = ?", true).Order("updated_at desc").First(&hero).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hero, nil
}

// List 获取主视觉列表
func (r *GormHeroRepository) List(page, pageSize int) ([]models.Hero, int64, error) {
	var heroes []models.Hero
	query := r.db.Model(&models.Hero{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)
	if err := query.Order("id desc").Find(&heroes).Error; err != nil {
		return nil, 0, err
	}
	return heroes, total, nil
}

// Create 创建主视觉
func (r *GormHeroRepository) Create(hero *models.Hero) error {
	return r.db.Create(hero).Error
}

// Update 更新主视觉
func (r *GormHeroRepository) Update(hero *models.Hero) error {
	return r.db.Save(hero).Error
}

// Delete 删除主视觉
func (r *GormHeroRepository) Delete(id uint) error {
	return r.db.Delete(&models.Hero{}, id).Error
}

// DeactivateAll 停用全部主视觉
func (r *GormHeroRepository) DeactivateAll() error {
	return r.db.Model(&models.Hero{}).Where("is_active = ?", true).UpdateColumn("is_active", false).Error
}

// SetActive 设置指定主视觉激活状态
func (r *GormHeroRepository) SetActive(id uint, active bool) error {
	result := r.db.Model(&models.Hero{}).Where("id = ?", id).UpdateColumn("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountActive 统计激活数量
func (r *GormHeroRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Hero{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
