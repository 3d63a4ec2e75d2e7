package admin

import (
	"strconv"

	handlershared "github.com/shopworks/storefront/internal/http/handlers/shared"
	"github.com/shopworks/storefront/internal/http/response"
	"github.com/shopworks/storefront/internal/repository"

	"github.com/gin-gonic/gin"
)

// Dashboard 后台概览指标
func (h *Handler) Dashboard(c *gin.Context) {
	overview, err := h.DashboardService.Overview()
	if err != nil {
		respondError(c, response.CodeInternal, "load dashboard failed", err)
		return
	}
	response.Success(c, overview)
}

// ListPageViews 页面访问记录
func (h *Handler) ListPageViews(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.PageViewListFilter{
		Page:     page,
		PageSize: pageSize,
		PageURL:  c.Query("page_url"),
	}
	views, total, err := h.PageViewService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list page views failed", err)
		return
	}
	response.SuccessWithPage(c, views, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}
