package service

import (
	"github.com/shopworks/storefront/internal/models"
	"github.com/shopworks/storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	ItemID    uint            `json:"item_id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     models.Money    `json:"price"`
	LineTotal models.Money    `json:"line_total"`
	Product   *models.Product `json:"product,omitempty"`
}

// CartView 购物车视图
type CartView struct {
	CartID   uint             `json:"cart_id"`
	Items    []CartItemDetail `json:"items"`
	Subtotal models.Money     `json:"subtotal"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart 获取用户购物车，不存在时惰性创建
func (s *CartService) GetCart(userID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	return buildCartView(cart), nil
}

// AddItem 加入购物车，价格以当前售价快照
func (s *CartService) AddItem(userID, productID uint, quantity int) (*CartView, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotAvailable
	}

	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.GetItemByProduct(cart.ID, productID)
	if err != nil {
		return nil, err
	}
	combined := quantity
	if existing != nil {
		combined += existing.Quantity
	}
	if combined > product.Stock {
		return nil, &OutOfStockError{ProductID: product.ID, ProductName: product.Name}
	}

	if existing != nil {
		// 数量合并时保留首次加入的价格快照
		if err := s.cartRepo.UpdateItemQuantity(existing.ID, combined); err != nil {
			return nil, err
		}
	} else {
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  quantity,
			Price:     product.Price,
		}
		if err := s.cartRepo.CreateItem(item); err != nil {
			return nil, err
		}
	}
	return s.reloadView(userID)
}

// SetItemQuantity 设置购物车项数量，0 表示移除
func (s *CartService) SetItemQuantity(userID, itemID uint, quantity int) (*CartView, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartItemNotFound
	}
	item, err := s.cartRepo.GetItem(cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}

	if quantity == 0 {
		if err := s.cartRepo.DeleteItem(item.ID); err != nil {
			return nil, err
		}
		return s.reloadView(userID)
	}

	product, err := s.productRepo.GetByID(item.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotAvailable
	}
	if quantity > product.Stock {
		return nil, &OutOfStockError{ProductID: product.ID, ProductName: product.Name}
	}
	if err := s.cartRepo.UpdateItemQuantity(item.ID, quantity); err != nil {
		return nil, err
	}
	return s.reloadView(userID)
}

// RemoveItem 移除购物车项
func (s *CartService) RemoveItem(userID, itemID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartItemNotFound
	}
	item, err := s.cartRepo.GetItem(cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if err := s.cartRepo.DeleteItem(item.ID); err != nil {
		return nil, err
	}
	return s.reloadView(userID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	return s.cartRepo.ClearItems(cart.ID)
}

func (s *CartService) reloadView(userID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	return buildCartView(cart), nil
}

func buildCartView(cart *models.Cart) *CartView {
	if cart == nil {
		return &CartView{Items: []CartItemDetail{}}
	}
	view := &CartView{
		CartID: cart.ID,
		Items:  make([]CartItemDetail, 0, len(cart.Items)),
	}
	subtotal := decimal.Zero
	for _, item := range cart.Items {
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		view.Items = append(view.Items, CartItemDetail{
			ItemID:    item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			LineTotal: models.NewMoneyFromDecimal(lineTotal),
			Product:   item.Product,
		})
	}
	view.Subtotal = models.NewMoneyFromDecimal(subtotal)
	return view
}
