package public

import (
	"strconv"
	"strings"

	handlershared "github.com/shopworks/storefront/internal/http/handlers/shared"
	"github.com/shopworks/storefront/internal/http/response"
	"github.com/shopworks/storefront/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListOrders 当前用户订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
	}
	orders, total, err := h.OrderService.ListByUser(uid, filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list orders failed", err)
		return
	}
	response.SuccessWithPage(c, orders, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// GetOrder 当前用户订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	order, err := h.OrderService.GetByIDAndUser(uint(orderID), uid)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "fetch order failed")
		return
	}
	response.Success(c, order)
}

// CancelOrder 取消待支付订单
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	order, err := h.OrderService.Cancel(uint(orderID), uid)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "cancel order failed")
		return
	}
	response.Success(c, order)
}
