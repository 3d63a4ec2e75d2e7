package public

import (
	"errors"

	"github.com/shopworks/storefront/internal/http/response"
	"github.com/shopworks/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, describeMappedError(err, rule.msg), nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

// describeMappedError 在映射文案基础上补充商品上下文，方便用户定位是哪个商品缺货。
func describeMappedError(err error, msg string) string {
	var oos *service.OutOfStockError
	if errors.As(err, &oos) && oos.ProductName != "" {
		return msg + ": " + oos.ProductName
	}
	return msg
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "invalid quantity"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, msg: "cart item not found"},
	{target: service.ErrOutOfStock, code: response.CodeBadRequest, msg: "insufficient stock"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrOutOfStock, code: response.CodeBadRequest, msg: "insufficient stock"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrPaymentMethodInvalid, code: response.CodeBadRequest, msg: "payment method invalid"},
	{target: service.ErrCardNotFound, code: response.CodeBadRequest, msg: "card not found"},
	{target: service.ErrPromotionNotFound, code: response.CodeBadRequest, msg: "promotion code invalid"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest, msg: "order status does not allow this action"},
}

var cardErrorRules = []mappedHandlerError{
	{target: service.ErrCardNotFound, code: response.CodeNotFound, msg: "card not found"},
	{target: service.ErrCardInvalid, code: response.CodeBadRequest, msg: "invalid card"},
}
