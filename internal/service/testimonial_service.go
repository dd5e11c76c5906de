package service

import (
	"strings"

	"github.com/shopnext/internal/models"
	"github.com/shopnext/internal/repository"
)

// TestimonialService 推荐语服务；公开端只读审核通过的条目
type TestimonialService struct {
	testimonialRepo repository.TestimonialRepository
}

// NewTestimonialService 创建推荐语服务
func NewTestimonialService(testimonialRepo repository.TestimonialRepository) *TestimonialService {
	return &TestimonialService{testimonialRepo: testimonialRepo}
}

// ListApproved 公开端推荐语列表
func (s *TestimonialService) ListApproved() ([]models.Testimonial, error) {
	return s.testimonialRepo.ListApproved()
}

// List 管理端推荐语列表
func (s *TestimonialService) List(page, pageSize int) ([]models.Testimonial, int64, error) {
	return s.testimonialRepo.List(page, pageSize)
}

// TestimonialInput 推荐语创建/更新输入
type TestimonialInput struct {
	Name       string
	Role       string
	Content    string
	Avatar     string
	Rating     *int
	SortOrder  *int
	IsApproved *bool
}

// Create 创建推荐语（默认未审核）
func (s *TestimonialService) Create(input TestimonialInput) (*models.Testimonial, error) {
	name := strings.TrimSpace(input.Name)
	content := strings.TrimSpace(input.Content)
	if name == "" || content == "" {
		return nil, ErrInvalidInput
	}
	testimonial := &models.Testimonial{
		Name:    name,
		Role:    strings.TrimSpace(input.Role),
		Content: content,
		Avatar:  strings.TrimSpace(input.Avatar),
		Rating:  5,
	}
	if input.Rating != nil {
		if *input.Rating < 1 || *input.Rating > 5 {
			return nil, ErrInvalidInput
		}
		testimonial.Rating = *input.Rating
	}
	if input.SortOrder != nil {
		testimonial.SortOrder = *input.SortOrder
	}
	if input.IsApproved != nil {
		testimonial.IsApproved = *input.IsApproved
	}
	if err := s.testimonialRepo.Create(testimonial); err != nil {
		return nil, err
	}
	return testimonial, nil
}

// Update 更新推荐语
func (s *TestimonialService) Update(id uint, input TestimonialInput) (*models.Testimonial, error) {
	testimonial, err := s.testimonialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if testimonial == nil {
		return nil, ErrNotFound
	}

	if v := strings.TrimSpace(input.Name); v != "" {
		testimonial.Name = v
	}
	if input.Role != "" {
		testimonial.Role = strings.TrimSpace(input.Role)
	}
	if v := strings.TrimSpace(input.Content); v != "" {
		testimonial.Content = v
	}
	if input.Avatar != "" {
		testimonial.Avatar = strings.TrimSpace(input.Avatar)
	}
	if input.Rating != nil {
		if *input.Rating < 1 || *input.Rating > 5 {
			return nil, ErrInvalidInput
		}
		testimonial.Rating = *input.Rating
	}
	if input.SortOrder != nil {
		testimonial.SortOrder = *input.SortOrder
	}
	if input.IsApproved != nil {
		testimonial.IsApproved = *input.IsApproved
	}

	if err := s.testimonialRepo.Update(testimonial); err != nil {
		return nil, err
	}
	return testimonial, nil
}

// Delete 删除推荐语
func (s *TestimonialService) Delete(id uint) error {
	testimonial, err := s.testimonialRepo.GetByID(id)
	if err != nil {
		return err
	}
	if testimonial == nil {
		return ErrNotFound
	}
	return s.testimonialRepo.Delete(id)
}
