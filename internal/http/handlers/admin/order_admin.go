package admin

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/shopworks/storefront/internal/http/handlers/shared"
	"github.com/shopworks/storefront/internal/http/response"
	"github.com/shopworks/storefront/internal/repository"
	"github.com/shopworks/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderStatusRequest 订单状态更新请求
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListOrders 订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	}
	if raw := c.Query("user_id"); raw != "" {
		if userID, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.UserID = uint(userID)
		}
	}
	orders, total, err := h.OrderService.AdminList(filter)
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

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	orderID, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.AdminGet(orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "fetch order failed", err)
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatus 推进订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	order, err := h.OrderService.UpdateStatus(orderID, strings.TrimSpace(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "status transition not allowed", nil)
		default:
			respondError(c, response.CodeInternal, "update order status failed", err)
		}
		return
	}
	response.Success(c, order)
}
