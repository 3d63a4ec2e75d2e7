package public

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/shopworks/storefront/internal/http/response"
	"github.com/shopworks/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

func recordMappedError(t *testing.T, err error, rules []mappedHandlerError) response.Response {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondWithMappedError(c, err, rules, response.CodeInternal, "internal error")

	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return body
}

func TestRespondWithMappedErrorOutOfStockIncludesProductName(t *testing.T) {
	err := fmt.Errorf("decrement stock: %w", &service.OutOfStockError{
		ProductID:   3,
		ProductName: "机械键盘",
	})

	body := recordMappedError(t, err, checkoutErrorRules)
	if body.StatusCode != response.CodeBadRequest {
		t.Fatalf("status code want %d got %d", response.CodeBadRequest, body.StatusCode)
	}
	if body.Msg != "insufficient stock: 机械键盘" {
		t.Fatalf("msg want product name included, got %q", body.Msg)
	}
}

func TestRespondWithMappedErrorOutOfStockWithoutName(t *testing.T) {
	body := recordMappedError(t, service.ErrOutOfStock, cartErrorRules)
	if body.Msg != "insufficient stock" {
		t.Fatalf("msg want plain text, got %q", body.Msg)
	}
}

func TestRespondWithMappedErrorFallback(t *testing.T) {
	body := recordMappedError(t, fmt.Errorf("boom"), checkoutErrorRules)
	if body.StatusCode != response.CodeInternal {
		t.Fatalf("status code want %d got %d", response.CodeInternal, body.StatusCode)
	}
	if body.Msg != "internal error" {
		t.Fatalf("msg want fallback, got %q", body.Msg)
	}
}
