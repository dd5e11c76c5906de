package admin

import (
	"errors"
	"strconv"

	handlershared "github.com/shopnext/internal/http/handlers/shared"
	"github.com/shopnext/internal/http/response"
	"github.com/shopnext/internal/repository"
	"github.com/shopnext/internal/service"

	"github.com/gin-gonic/gin"
)

// BannerRequest 轮播图创建/更新请求
type BannerRequest struct {
	Title     string                 `json:"title"`
	Subtitle  string                 `json:"subtitle"`
	Image     string                 `json:"image"`
	LinkType  string                 `json:"link_type"`
	LinkValue string                 `json:"link_value"`
	SortOrder *int                   `json:"sort_order"`
	IsActive  handlershared.FlexBool `json:"is_active"`
}

func (r BannerRequest) toInput() service.BannerInput {
	return service.BannerInput{
		Title:     r.Title,
		Subtitle:  r.Subtitle,
		Image:     r.Image,
		LinkType:  r.LinkType,
		LinkValue: r.LinkValue,
		SortOrder: r.SortOrder,
		IsActive:  r.IsActive.Ptr(),
	}
}

// ListBanners 管理端轮播图列表
func (h *Handler) ListBanners(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.BannerListFilter{Page: page, PageSize: pageSize}
	if v := c.Query("is_active"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}

	banners, total, err := h.BannerService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取轮播图列表失败", err)
		return
	}
	response.SuccessWithPage(c, banners, buildPagination(page, pageSize, total))
}

// CreateBanner 创建轮播图
func (h *Handler) CreateBanner(c *gin.Context) {
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}
	banner, err := h.BannerService.Create(req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrInvalidBanner) {
			respondError(c, response.CodeBadRequest, "轮播图信息不合法", nil)
			return
		}
		respondError(c, response.CodeInternal, "创建轮播图失败", err)
		return
	}
	response.Success(c, banner)
}

// UpdateBanner 更新轮播图
func (h *Handler) UpdateBanner(c *gin.Context) {
	bannerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bannerID == 0 {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}
	banner, err := h.BannerService.Update(uint(bannerID), req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "轮播图不存在", nil)
		case errors.Is(err, service.ErrInvalidBanner):
			respondError(c, response.CodeBadRequest, "轮播图信息不合法", nil)
		default:
			respondError(c, response.CodeInternal, "更新轮播图失败", err)
		}
		return
	}
	response.Success(c, banner)
}

// DeleteBanner 删除轮播图
func (h *Handler) DeleteBanner(c *gin.Context) {
	bannerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bannerID == 0 {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}
	if err := h.BannerService.Delete(uint(bannerID)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "轮播图不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "删除轮播图失败", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
