package admin

import (
	"errors"
	"strconv"
	"time"

	handlershared "github.com/shopnext/internal/http/handlers/shared"
	"github.com/shopnext/internal/http/response"
	"github.com/shopnext/internal/models"
	"github.com/shopnext/internal/repository"
	"github.com/shopnext/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CouponRequest 优惠券创建/更新请求
type CouponRequest struct {
	Code        string                 `json:"code"`
	Type        string                 `json:"type"`
	Value       float64                `json:"value"`
	MinAmount   float64                `json:"min_amount"`
	MaxDiscount float64                `json:"max_discount"`
	UsageLimit  int                    `json:"usage_limit"`
	IsReusable  handlershared.FlexBool `json:"is_reusable"`
	StartsAt    string                 `json:"starts_at"`
	EndsAt      string                 `json:"ends_at"`
	IsActive    handlershared.FlexBool `json:"is_active"`
}

func (r CouponRequest) toInput() (service.CouponInput, error) {
	startsAt, err := parseTimeNullable(r.StartsAt)
	if err != nil {
		return service.CouponInput{}, err
	}
	endsAt, err := parseTimeNullable(r.EndsAt)
	if err != nil {
		return service.CouponInput{}, err
	}
	return service.CouponInput{
		Code:        r.Code,
		Type:        r.Type,
		Value:       models.NewMoneyFromDecimal(decimal.NewFromFloat(r.Value)),
		MinAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(r.MinAmount)),
		MaxDiscount: models.NewMoneyFromDecimal(decimal.NewFromFloat(r.MaxDiscount)),
		UsageLimit:  r.UsageLimit,
		IsReusable:  r.IsReusable.Ptr(),
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		IsActive:    r.IsActive.Ptr(),
	}, nil
}

func parseTimeNullable(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListCoupons 优惠券列表
func (h *Handler) ListCoupons(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	coupons, total, err := h.CouponService.List(repository.CouponListFilter{
		Code:     c.Query("code"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取优惠券列表失败", err)
		return
	}
	response.SuccessWithPage(c, coupons, buildPagination(page, pageSize, total))
}

// CreateCoupon 创建优惠券
func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "时间格式错误", err)
		return
	}
	coupon, err := h.CouponService.Create(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCouponInvalid):
			respondError(c, response.CodeBadRequest, "优惠券信息不合法", nil)
		case errors.Is(err, service.ErrCouponCodeTaken):
			respondError(c, response.CodeConflict, "优惠码已存在", nil)
		default:
			respondError(c, response.CodeInternal, "创建优惠券失败", err)
		}
		return
	}
	response.Success(c, coupon)
}

// UpdateCoupon 更新优惠券
func (h *Handler) UpdateCoupon(c *gin.Context) {
	couponID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || couponID == 0 {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "时间格式错误", err)
		return
	}
	coupon, err := h.CouponService.Update(uint(couponID), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "优惠券不存在", nil)
		case errors.Is(err, service.ErrCouponInvalid):
			respondError(c, response.CodeBadRequest, "优惠券信息不合法", nil)
		case errors.Is(err, service.ErrCouponCodeTaken):
			respondError(c, response.CodeConflict, "优惠码已存在", nil)
		default:
			respondError(c, response.CodeInternal, "更新优惠券失败", err)
		}
		return
	}
	response.Success(c, coupon)
}

// DeleteCoupon 删除优惠券
func (h *Handler) DeleteCoupon(c *gin.Context) {
	couponID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || couponID == 0 {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}
	if err := h.CouponService.Delete(uint(couponID)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "优惠券不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "删除优惠券失败", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
