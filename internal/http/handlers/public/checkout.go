package public

import (
	"github.com/shopworks/storefront/internal/http/response"
	"github.com/shopworks/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 结算请求
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
	CardID        uint   `json:"card_id"`
	PromoCode     string `json:"promo_code"`
}

// Checkout 购物车结算下单
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	order, err := h.CheckoutService.Checkout(service.CheckoutInput{
		UserID:        uid,
		PaymentMethod: req.PaymentMethod,
		CardID:        req.CardID,
		PromoCode:     req.PromoCode,
	})
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "checkout failed")
		return
	}
	response.Success(c, order)
}
