package admin

import (
	"errors"
	"strconv"
	"time"

	handlershared "github.com/shopworks/storefront/internal/http/handlers/shared"
	"github.com/shopworks/storefront/internal/http/response"
	"github.com/shopworks/storefront/internal/models"
	"github.com/shopworks/storefront/internal/repository"
	"github.com/shopworks/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// PromotionRequest 优惠码写入请求
type PromotionRequest struct {
	Code     string       `json:"code" binding:"required"`
	Type     string       `json:"type" binding:"required"`
	Value    models.Money `json:"value"`
	StartsAt *time.Time   `json:"starts_at"`
	EndsAt   *time.Time   `json:"ends_at"`
	IsActive bool         `json:"is_active"`
}

func (r PromotionRequest) toInput() service.PromotionInput {
	return service.PromotionInput{
		Code:     r.Code,
		Type:     r.Type,
		Value:    r.Value,
		StartsAt: r.StartsAt,
		EndsAt:   r.EndsAt,
		IsActive: r.IsActive,
	}
}

func respondPromotionError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrPromotionNotFound):
		respondError(c, response.CodeNotFound, "promotion not found", nil)
	case errors.Is(err, service.ErrPromotionExists):
		respondError(c, response.CodeConflict, "promotion code already exists", nil)
	case errors.Is(err, service.ErrPromotionInvalid):
		respondError(c, response.CodeBadRequest, "promotion invalid", nil)
	default:
		respondError(c, response.CodeInternal, fallbackMsg, err)
	}
}

// ListPromotions 优惠码列表
func (h *Handler) ListPromotions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.PromotionListFilter{
		Page:     page,
		PageSize: pageSize,
		Code:     c.Query("code"),
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}
	promotions, total, err := h.PromotionAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list promotions failed", err)
		return
	}
	response.SuccessWithPage(c, promotions, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// GetPromotion 优惠码详情
func (h *Handler) GetPromotion(c *gin.Context) {
	promotionID, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	promotion, err := h.PromotionAdminService.Get(promotionID)
	if err != nil {
		respondPromotionError(c, err, "fetch promotion failed")
		return
	}
	response.Success(c, promotion)
}

// CreatePromotion 创建优惠码
func (h *Handler) CreatePromotion(c *gin.Context) {
	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	promotion, err := h.PromotionAdminService.Create(req.toInput())
	if err != nil {
		respondPromotionError(c, err, "create promotion failed")
		return
	}
	response.Success(c, promotion)
}

// UpdatePromotion 更新优惠码
func (h *Handler) UpdatePromotion(c *gin.Context) {
	promotionID, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	promotion, err := h.PromotionAdminService.Update(promotionID, req.toInput())
	if err != nil {
		respondPromotionError(c, err, "update promotion failed")
		return
	}
	response.Success(c, promotion)
}

// DeletePromotion 删除优惠码
func (h *Handler) DeletePromotion(c *gin.Context) {
	promotionID, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	if err := h.PromotionAdminService.Delete(promotionID); err != nil {
		respondPromotionError(c, err, "delete promotion failed")
		return
	}
	response.Success(c, nil)
}
