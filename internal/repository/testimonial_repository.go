package repository

import (
	"errors"

	"github.com/shopnext/internal/models"

	"gorm.io/gorm"
)

// TestimonialRepository 用户推荐语数据访问接口
type TestimonialRepository interface {
	GetByID(id uint) (*models.Testimonial, error)
	List(page, pageSize int) ([]models.Testimonial, int64, error)
	ListApproved() ([]models.Testimonial, error)
	Create(testimonial *models.Testimonial) error
	Update(testimonial *models.Testimonial) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormTestimonialRepository
}

// GormTestimonialRepository GORM 实现
type GormTestimonialRepository struct {
	db *gorm.DB
}

// NewTestimonialRepository 创建推荐语仓库
func NewTestimonialRepository(db *gorm.DB) *GormTestimonialRepository {
	return &GormTestimonialRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTestimonialRepository) WithTx(tx *gorm.DB) *GormTestimonialRepository {
	if tx == nil {
		return r
	}
	return &GormTestimonialRepository{db: tx}
}

// GetByID 根据ID获取推荐语
func (r *GormTestimonialRepository) GetByID(id uint) (*models.Testimonial, error) {
	var testimonial models.Testimonial
	if err := r.db.First(&testimonial, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &testimonial, nil
}

// List 获取推荐语列表（管理端）
func (r *GormTestimonialRepository) List(page, pageSize int) ([]models.Testimonial, int64, error) {
	var testimonials []models.Testimonial
	query := r.db.Model(&models.Testimonial{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)
	if err := query.Order("sort_order asc, id desc").Find(&testimonials).Error; err != nil {
		return nil, 0, err
	}
	return testimonials, total, nil
}

// ListApproved 获取审核通过的推荐语
func (r *GormTestimonialRepository) ListApproved() ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	if err := r.db.Where("is_approved = ?", true).Order("sort_order asc, id desc").Find(&testimonials).Error; err != nil {
		return nil, err
	}
	return testimonials, nil
}

// Create 创建推荐语
func (r *GormTestimonialRepository) Create(testimonial *models.Testimonial) error {
	return r.db.Create(testimonial).Error
}

// Update 更新推荐语
func (r *GormTestimonialRepository) Update(testimonial *models.Testimonial) error {
	return r.db.Save(testimonial).Error
}

// Delete 删除推荐语
func (r *GormTestimonialRepository) Delete(id uint) error {
	return r.db.Delete(&models.Testimonial{}, id).Error
}
