package admin

import (
	"errors"
	"strconv"
	"time"

	handlershared "github.com/shopnext/internal/http/handlers/shared"
	"github.com/shopnext/internal/http/response"
	"github.com/shopnext/internal/service"

	"github.com/gin-gonic/gin"
)

// HeroRequest 主视觉创建/更新请求
type HeroRequest struct {
	Title    string                 `json:"title"`
	Subtitle string                 `json:"subtitle"`
	CTAText  string                 `json:"cta_text"`
	CTALink  string                 `json:"cta_link"`
	Image    string                 `json:"image"`
	IsActive handlershared.FlexBool `json:"is_active"`
}

func (r HeroRequest) toInput() service.HeroInput {
	return service.HeroInput{
		Title:    r.Title,
		Subtitle: r.Subtitle,
		CTAText:  r.CTAText,
		CTALink:  r.CTALink,
		Image:    r.Image,
		IsActive: r.IsActive.Ptr(),
	}
}

// PromoRequest 促销横幅创建/更新请求
type PromoRequest struct {
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	DiscountText string                 `json:"discount_text"`
	Code         string                 `json:"code"`
	Image        string                 `json:"image"`
	ExpiresAt    string                 `json:"expires_at"`
	IsActive     handlershared.FlexBool `json:"is_active"`
}

func (r PromoRequest) toInput() (service.PromoInput, error) {
	var expiresAt *time.Time
	if r.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, r.ExpiresAt)
		if err != nil {
			return service.PromoInput{}, err
		}
		expiresAt = &t
	}
	return service.PromoInput{
		Title:        r.Title,
		Description:  r.Description,
		DiscountText: r.DiscountText,
		Code:         r.Code,
		Image:        r.Image,
		ExpiresAt:    expiresAt,
		IsActive:     r.IsActive.Ptr(),
	}, nil
}

func parseContentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return 0, false
	}
	return uint(id), true
}

func respondContentError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "内容不存在", nil)
	case errors.Is(err, service.ErrActivationThrottled):
		respondError(c, response.CodeTooManyRequests, "激活过于频繁，请稍后再试", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "内容信息不完整", nil)
	default:
		respondError(c, response.CodeInternal, fallbackMsg, err)
	}
}

// ListHeroes 主视觉列表
func (h *Handler) ListHeroes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	heroes, total, err := h.HeroService.List(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "获取主视觉列表失败", err)
		return
	}
	response.SuccessWithPage(c, heroes, buildPagination(page, pageSize, total))
}

// CreateHero 创建主视觉
func (h *Handler) CreateHero(c *gin.Context) {
	var req HeroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}
	hero, err := h.HeroService.Create(req.toInput())
	if err != nil {
		respondContentError(c, err, "创建主视觉失败")
		return
	}
	response.Success(c, hero)
}

// UpdateHero 更新主视觉
func (h *Handler) UpdateHero(c *gin.Context) {
	id, ok := parseContentID(c)
	if !ok {
		return
	}
	var req HeroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}
	hero, err := h.HeroService.Update(id, req.toInput())
	if err != nil {
		respondContentError(c, err, "更新主视觉失败")
		return
	}
	response.Success(c, hero)
}

// DeleteHero 删除主视觉
func (h *Handler) DeleteHero(c *gin.Context) {
	id, ok := parseContentID(c)
	if !ok {
		return
	}
	if err := h.HeroService.Delete(id); err != nil {
		respondContentError(c, err, "删除主视觉失败")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ActivateHero 激活主视觉（带节流）
func (h *Handler) ActivateHero(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	id, ok := parseContentID(c)
	if !ok {
		return
	}
	hero, err := h.HeroService.Activate(id, adminID)
	if err != nil {
		respondContentError(c, err, "激活主视觉失败")
		return
	}
	response.Success(c, hero)
}

// DeactivateHero 停用主视觉
func (h *Handler) DeactivateHero(c *gin.Context) {
	id, ok := parseContentID(c)
	if !ok {
		return
	}
	hero, err := h.HeroService.Deactivate(id)
	if err != nil {
		respondContentError(c, err, "停用主视觉失败")
		return
	}
	response.Success(c, hero)
}

// ListPromos 促销横幅列表
func (h *Handler) ListPromos(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	promos, total, err := h.PromoService.List(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "获取促销横幅列表失败", err)
		return
	}
	response.SuccessWithPage(c, promos, buildPagination(page, pageSize, total))
}

// CreatePromo 创建促销横幅
func (h *Handler) CreatePromo(c *gin.Context) {
	var req PromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "时间格式错误", err)
		return
	}
	promo, err := h.PromoService.Create(input)
	if err != nil {
		respondContentError(c, err, "创建促销横幅失败")
		return
	}
	response.Success(c, promo)
}

// UpdatePromo 更新促销横幅
func (h *Handler) UpdatePromo(c *gin.Context) {
	id, ok := parseContentID(c)
	if !ok {
		return
	}
	var req PromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "时间格式错误", err)
		return
	}
	promo, err := h.PromoService.Update(id, input)
	if err != nil {
		respondContentError(c, err, "更新促销横幅失败")
		return
	}
	response.Success(c, promo)
}

// DeletePromo 删除促销横幅
func (h *Handler) DeletePromo(c *gin.Context) {
	id, ok := parseContentID(c)
	if !ok {
		return
	}
	if err := h.PromoService.Delete(id); err != nil {
		respondContentError(c, err, "删除促销横幅失败")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ActivatePromo 激活促销横幅（带节流）
func (h *Handler) ActivatePromo(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	id, ok := parseContentID(c)
	if !ok {
		return
	}
	promo, err := h.PromoService.Activate(id, adminID)
	if err != nil {
		respondContentError(c, err, "激活促销横幅失败")
		return
	}
	response.Success(c, promo)
}

// DeactivatePromo 停用促销横幅
func (h *Handler) DeactivatePromo(c *gin.Context) {
	id, ok := parseContentID(c)
	if !ok {
		return
	}
	promo, err := h.PromoService.Deactivate(id)
	if err != nil {
		respondContentError(c, err, "停用促销横幅失败")
		return
	}
	response.Success(c, promo)
}
