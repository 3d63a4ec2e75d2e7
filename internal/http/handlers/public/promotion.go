package public

import (
	"errors"
	"time"

	"github.com/shopworks/storefront/internal/http/response"
	"github.com/shopworks/storefront/internal/models"
	"github.com/shopworks/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ValidatePromotion 校验优惠码并预览当前购物车的折扣
func (h *Handler) ValidatePromotion(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	code := c.Param("code")
	promotion, err := h.PromotionService.Resolve(code, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrPromotionNotFound) {
			respondError(c, response.CodeNotFound, "promotion code invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "validate promotion failed", err)
		return
	}

	view, err := h.CartService.GetCart(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "fetch cart failed", err)
		return
	}
	discount := service.ComputeDiscount(promotion, view.Subtotal.Decimal)
	total := view.Subtotal.Sub(discount)
	if total.LessThan(decimal.Zero) {
		total = decimal.Zero
	}

	response.Success(c, gin.H{
		"code":     promotion.Code,
		"type":     promotion.Type,
		"value":    promotion.Value,
		"subtotal": view.Subtotal,
		"discount": models.NewMoneyFromDecimal(discount),
		"total":    models.NewMoneyFromDecimal(total),
	})
}
