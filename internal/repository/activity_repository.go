package repository

import (
	"github.com/shopnext/internal/models"

	"gorm.io/gorm"
)

// ActivityRepository 操作日志数据访问接口（仅追加）
type ActivityRepository interface {
	Create(activity *models.Activity) error
	List(filter ActivityListFilter) ([]models.Activity, int64, error)
	WithTx(tx *gorm.DB) *GormActivityRepository
}

// GormActivityRepository GORM 实现
type GormActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository 创建操作日志仓库
func NewActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// WithTx 绑定事务
func (r *GormActivityRepository) WithTx(tx *gorm.DB) *GormActivityRepository {
	if tx == nil {
		return r
	}
	return &GormActivityRepository{db: tx}
}

// Create 追加一条操作日志
func (r *GormActivityRepository) Create(activity *models.Activity) error {
	return r.db.Create(activity).Error
}

// List 获取操作日志列表
func (r *GormActivityRepository) List(filter ActivityListFilter) ([]models.Activity, int64, error) {
	var activities []models.Activity
	query := r.db.Model(&models.Activity{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&activities).Error; err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}
