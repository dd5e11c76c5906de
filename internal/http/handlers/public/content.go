package public

import (
	"github.com/shopnext/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetActiveHero 当前激活的首页主视觉；无激活项时返回 null
func (h *Handler) GetActiveHero(c *gin.Context) {
	hero, err := h.HeroService.GetActive(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "获取主视觉失败", err)
		return
	}
	response.Success(c, hero)
}

// GetActivePromo 当前激活的促销横幅；无激活项时返回 null
func (h *Handler) GetActivePromo(c *gin.Context) {
	promo, err := h.PromoService.GetActive(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "获取促销横幅失败", err)
		return
	}
	response.Success(c, promo)
}

// ListBanners 启用中的轮播图列表
func (h *Handler) ListBanners(c *gin.Context) {
	banners, err := h.BannerService.ListActive()
	if err != nil {
		respondError(c, response.CodeInternal, "获取轮播图失败", err)
		return
	}
	response.Success(c, gin.H{"items": banners})
}

// ListTestimonials 审核通过的推荐语列表
func (h *Handler) ListTestimonials(c *gin.Context) {
	testimonials, err := h.TestimonialService.ListApproved()
	if err != nil {
		respondError(c, response.CodeInternal, "获取推荐语失败", err)
		return
	}
	response.Success(c, gin.H{"items": testimonials})
}
