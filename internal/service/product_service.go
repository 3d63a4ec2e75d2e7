package service

import (
	"strings"

	"github.com/shopworks/storefront/internal/models"
	"github.com/shopworks/storefront/internal/repository"
)

// ProductService 商品服务
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// List 商品列表（商城侧只展示上架商品）
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = true
	return s.productRepo.List(filter)
}

// Get 获取上架商品详情
func (s *ProductService) Get(productID uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// AdminList 管理侧商品列表
func (s *ProductService) AdminList(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// AdminGet 管理侧商品详情
func (s *ProductService) AdminGet(productID uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ProductInput 商品写入参数
type ProductInput struct {
	Name        string
	Description string
	Price       models.Money
	Stock       int
	IsActive    bool
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProductNotAvailable
	}
	if input.Stock < 0 {
		input.Stock = 0
	}
	product := &models.Product{
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		IsActive:    input.IsActive,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品
func (s *ProductService) Update(productID uint, input ProductInput) (*models.Product, error) {
	product, err := s.AdminGet(productID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name != "" {
		product.Name = name
	}
	product.Description = input.Description
	product.Price = input.Price
	if input.Stock >= 0 {
		product.Stock = input.Stock
	}
	product.IsActive = input.IsActive
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 下架并删除商品
func (s *ProductService) Delete(productID uint) error {
	product, err := s.AdminGet(productID)
	if err != nil {
		return err
	}
	return s.productRepo.Delete(product.ID)
}
