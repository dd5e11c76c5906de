package public

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopnext/internal/http/response"
	"github.com/shopnext/internal/service"

	"github.com/gin-gonic/gin"
)

func mappedErrorResponse(t *testing.T, err error, rules []mappedHandlerError) (int, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondWithMappedError(c, err, rules, response.CodeInternal, "操作失败")

	var resp struct {
		StatusCode int    `json:"status_code"`
		Msg        string `json:"msg"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp.StatusCode, resp.Msg
}

func TestMappedInsufficientStockNamesProduct(t *testing.T) {
	err := fmt.Errorf("%w: %s", service.ErrInsufficientStock, "Wireless Earbuds")

	code, msg := mappedErrorResponse(t, err, checkoutErrorRules)
	if code != response.CodeBadRequest {
		t.Fatalf("status_code want 400 got %d", code)
	}
	if !strings.Contains(msg, "库存不足") || !strings.Contains(msg, "Wireless Earbuds") {
		t.Fatalf("message should name the product, got %q", msg)
	}

	// 加购路径同样要带出商品名
	code, msg = mappedErrorResponse(t, err, cartErrorRules)
	if code != response.CodeBadRequest {
		t.Fatalf("status_code want 400 got %d", code)
	}
	if !strings.Contains(msg, "Wireless Earbuds") {
		t.Fatalf("cart message should name the product, got %q", msg)
	}
}

func TestMappedInsufficientStockBareSentinel(t *testing.T) {
	code, msg := mappedErrorResponse(t, service.ErrInsufficientStock, checkoutErrorRules)
	if code != response.CodeBadRequest {
		t.Fatalf("status_code want 400 got %d", code)
	}
	if msg != "库存不足" {
		t.Fatalf("bare sentinel should keep the plain message, got %q", msg)
	}
}

func TestMappedErrorFallback(t *testing.T) {
	code, msg := mappedErrorResponse(t, errors.New("boom"), checkoutErrorRules)
	if code != response.CodeInternal {
		t.Fatalf("status_code want 500 got %d", code)
	}
	if msg != "操作失败" {
		t.Fatalf("fallback message want 操作失败 got %q", msg)
	}
}

func TestMappedCouponRules(t *testing.T) {
	code, msg := mappedErrorResponse(t, service.ErrCouponExpired, couponErrorRules)
	if code != response.CodeBadRequest || msg != "优惠码已过期" {
		t.Fatalf("unexpected mapping: %d %q", code, msg)
	}
}
