package admin

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/shopworks/storefront/internal/http/handlers/shared"
	"github.com/shopworks/storefront/internal/http/response"
	"github.com/shopworks/storefront/internal/models"
	"github.com/shopworks/storefront/internal/repository"
	"github.com/shopworks/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest 商品写入请求
type ProductRequest struct {
	Name        string       `json:"name" binding:"required"`
	Description string       `json:"description"`
	Price       models.Money `json:"price"`
	Stock       int          `json:"stock"`
	IsActive    bool         `json:"is_active"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		IsActive:    r.IsActive,
	}
}

// ListProducts 商品列表（含下架）
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	}
	products, total, err := h.ProductService.AdminList(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list products failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	productID, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.AdminGet(productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "fetch product failed", err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondError(c, response.CodeInternal, "create product failed", err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	productID, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	product, err := h.ProductService.Update(productID, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "update product failed", err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	productID, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(productID); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "delete product failed", err)
		return
	}
	response.Success(c, nil)
}
