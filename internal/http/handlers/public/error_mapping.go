package public

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopnext/internal/http/response"
	"github.com/shopnext/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
// withDetail 规则把哨兵错误之外的包装信息（如缺货商品名）拼进提示语。
type mappedHandlerError struct {
	target     error
	code       int
	msg        string
	withDetail bool
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			msg := rule.msg
			if rule.withDetail {
				if detail := wrappedErrorDetail(err, rule.target); detail != "" {
					msg = fmt.Sprintf("%s：%s", rule.msg, detail)
				}
			}
			respondError(c, rule.code, msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

// wrappedErrorDetail 取出 fmt.Errorf("%w: %s", sentinel, detail) 中的 detail 部分
func wrappedErrorDetail(err, target error) string {
	full := err.Error()
	prefix := target.Error() + ":"
	if !strings.HasPrefix(full, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(full, prefix))
}

var couponErrorRules = []mappedHandlerError{
	{target: service.ErrCouponInvalid, code: response.CodeBadRequest, msg: "优惠码无效"},
	{target: service.ErrCouponNotFound, code: response.CodeBadRequest, msg: "优惠码不存在"},
	{target: service.ErrCouponInactive, code: response.CodeBadRequest, msg: "优惠码已停用"},
	{target: service.ErrCouponNotStarted, code: response.CodeBadRequest, msg: "优惠码未生效"},
	{target: service.ErrCouponExpired, code: response.CodeBadRequest, msg: "优惠码已过期"},
	{target: service.ErrCouponUsageLimit, code: response.CodeBadRequest, msg: "优惠码已达使用上限"},
	{target: service.ErrCouponAlreadyUsed, code: response.CodeBadRequest, msg: "优惠码已使用过"},
	{target: service.ErrCouponMinAmount, code: response.CodeBadRequest, msg: "未满足优惠码最低消费"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "购物车为空"},
	{target: service.ErrPaymentMethodInvalid, code: response.CodeBadRequest, msg: "不支持的支付方式"},
	{target: service.ErrForbidden, code: response.CodeForbidden, msg: "无权使用该收货地址"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "库存不足", withDetail: true},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "商品不存在"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "参数错误"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "商品不存在"},
	{target: service.ErrProductInactive, code: response.CodeBadRequest, msg: "商品已下架"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "库存不足", withDetail: true},
}
