package admin

import (
	"errors"
	"strconv"

	handlershared "github.com/shopnext/internal/http/handlers/shared"
	"github.com/shopnext/internal/http/response"
	"github.com/shopnext/internal/service"

	"github.com/gin-gonic/gin"
)

// TestimonialRequest 推荐语创建/更新请求
type TestimonialRequest struct {
	Name       string                 `json:"name"`
	Role       string                 `json:"role"`
	Content    string                 `json:"content"`
	Avatar     string                 `json:"avatar"`
	Rating     *int                   `json:"rating"`
	SortOrder  *int                   `json:"sort_order"`
	IsApproved handlershared.FlexBool `json:"is_approved"`
}

func (r TestimonialRequest) toInput() service.TestimonialInput {
	return service.TestimonialInput{
		Name:       r.Name,
		Role:       r.Role,
		Content:    r.Content,
		Avatar:     r.Avatar,
		Rating:     r.Rating,
		SortOrder:  r.SortOrder,
		IsApproved: r.IsApproved.Ptr(),
	}
}

// ListTestimonials 管理端推荐语列表（含未审核）
func (h *Handler) ListTestimonials(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	testimonials, total, err := h.TestimonialService.List(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "获取推荐语列表失败", err)
		return
	}
	response.SuccessWithPage(c, testimonials, buildPagination(page, pageSize, total))
}

// CreateTestimonial 创建推荐语
func (h *Handler) CreateTestimonial(c *gin.Context) {
	var req TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}
	testimonial, err := h.TestimonialService.Create(req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondError(c, response.CodeBadRequest, "推荐语信息不合法", nil)
			return
		}
		respondError(c, response.CodeInternal, "创建推荐语失败", err)
		return
	}
	response.Success(c, testimonial)
}

// UpdateTestimonial 更新推荐语
func (h *Handler) UpdateTestimonial(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}
	var req TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}
	testimonial, err := h.TestimonialService.Update(uint(id), req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "推荐语不存在", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "推荐语信息不合法", nil)
		default:
			respondError(c, response.CodeInternal, "更新推荐语失败", err)
		}
		return
	}
	response.Success(c, testimonial)
}

// DeleteTestimonial 删除推荐语
func (h *Handler) DeleteTestimonial(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}
	if err := h.TestimonialService.Delete(uint(id)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "推荐语不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "删除推荐语失败", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
