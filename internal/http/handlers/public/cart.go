package public

import (
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopworks/storefront/internal/http/response"
	"github.com/shopworks/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// guestCartCookieName 游客购物车 Cookie
const guestCartCookieName = "guest_cart"

// CartItemRequest 购物车项请求
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// CartQuantityRequest 购物车数量更新请求
type CartQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// MergeCartRequest 游客购物车合并请求
type MergeCartRequest struct {
	Items []service.GuestCartItem `json:"items"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	view, err := h.CartService.GetCart(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "fetch cart failed", err)
		return
	}
	response.Success(c, view)
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	view, err := h.CartService.AddItem(uid, req.ProductID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "add cart item failed")
		return
	}
	response.Success(c, view)
}

// UpdateCartItem 更新购物车项数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "invalid cart item id", nil)
		return
	}
	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	view, err := h.CartService.SetItemQuantity(uid, uint(itemID), *req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "update cart item failed")
		return
	}
	response.Success(c, view)
}

// DeleteCartItem 移除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "invalid cart item id", nil)
		return
	}
	view, err := h.CartService.RemoveItem(uid, uint(itemID))
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "remove cart item failed")
		return
	}
	response.Success(c, view)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(uid); err != nil {
		respondError(c, response.CodeInternal, "clear cart failed", err)
		return
	}
	response.Success(c, nil)
}

// MergeCart 合并游客购物车
// 条目来自请求体，缺省时回退到 guest_cart Cookie
func (h *Handler) MergeCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req MergeCartRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	items := req.Items
	if len(items) == 0 {
		items = readGuestCartCookie(c)
	}

	view, err := h.CartService.Merge(uid, items)
	if err != nil {
		respondError(c, response.CodeInternal, "merge cart failed", err)
		return
	}
	c.SetCookie(guestCartCookieName, "", -1, "/", "", false, true)
	response.Success(c, view)
}

func readGuestCartCookie(c *gin.Context) []service.GuestCartItem {
	raw, err := c.Cookie(guestCartCookieName)
	if err != nil || strings.TrimSpace(raw) == "" {
		return nil
	}
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		decoded = raw
	}
	var items []service.GuestCartItem
	if err := json.Unmarshal([]byte(decoded), &items); err != nil {
		return nil
	}
	return items
}
