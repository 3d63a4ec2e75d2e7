package service

import (
	"encoding/json"
	"strconv"

	"github.com/shopworks/storefront/internal/models"
)

// GuestCartItem 游客购物车条目
// 前端 Cookie 里的 JSON 字段类型不稳定，数量可能是数字或字符串
type GuestCartItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// UnmarshalJSON 宽松解析游客购物车条目
func (g *GuestCartItem) UnmarshalJSON(b []byte) error {
	var raw struct {
		ProductID json.RawMessage `json:"product_id"`
		Quantity  json.RawMessage `json:"quantity"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if id, ok := parseLooseInt(raw.ProductID); ok && id > 0 {
		g.ProductID = uint(id)
	}
	g.Quantity = 1
	if len(raw.Quantity) > 0 {
		if q, ok := parseLooseInt(raw.Quantity); ok {
			g.Quantity = int(q)
		} else {
			g.Quantity = 0
		}
	}
	return nil
}

// parseLooseInt 解析数字或字符串形式的整数
func parseLooseInt(raw json.RawMessage) (int64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	text := string(raw)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		text = s
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Merge 登录后合并游客购物车
// 非法条目跳过，数量按库存收敛，已有条目合并后再次按库存收敛
func (s *CartService) Merge(userID uint, guestItems []GuestCartItem) (*CartView, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	for _, guest := range guestItems {
		if guest.ProductID == 0 || guest.Quantity <= 0 {
			continue
		}
		product, err := s.productRepo.GetByID(guest.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.IsActive || product.Stock <= 0 {
			continue
		}

		quantity := guest.Quantity
		if quantity > product.Stock {
			quantity = product.Stock
		}

		existing, err := s.cartRepo.GetItemByProduct(cart.ID, guest.ProductID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			item := &models.CartItem{
				CartID:    cart.ID,
				ProductID: product.ID,
				Quantity:  quantity,
				Price:     product.Price,
			}
			if err := s.cartRepo.CreateItem(item); err != nil {
				return nil, err
			}
			continue
		}

		combined := existing.Quantity + quantity
		if combined > product.Stock {
			combined = product.Stock
		}
		if combined != existing.Quantity {
			if err := s.cartRepo.UpdateItemQuantity(existing.ID, combined); err != nil {
				return nil, err
			}
		}
	}
	return s.reloadView(userID)
}
