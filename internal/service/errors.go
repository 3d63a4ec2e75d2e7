package service

import (
	"errors"
	"fmt"
)

// 业务错误定义，处理层通过 errors.Is 判断并映射为响应码
var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserDisabled       = errors.New("user disabled")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserStatusInvalid  = errors.New("user status invalid")
	ErrInvalidName        = errors.New("invalid name")

	ErrProductNotFound     = errors.New("product not found")
	ErrProductNotAvailable = errors.New("product not available")

	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrOutOfStock       = errors.New("insufficient stock")

	ErrPromotionNotFound = errors.New("promotion not found")
	ErrPromotionExists   = errors.New("promotion code already exists")
	ErrPromotionInvalid  = errors.New("promotion invalid")

	ErrCardNotFound = errors.New("card not found")
	ErrCardInvalid  = errors.New("invalid card")

	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderStatusInvalid   = errors.New("order status invalid")
	ErrPaymentMethodInvalid = errors.New("payment method invalid")
	ErrCheckoutFailed       = errors.New("checkout failed")
)

// OutOfStockError 库存不足错误，携带具体商品信息
type OutOfStockError struct {
	ProductID   uint
	ProductName string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d (%s)", e.ProductID, e.ProductName)
}

// Unwrap 支持 errors.Is(err, ErrOutOfStock)
func (e *OutOfStockError) Unwrap() error {
	return ErrOutOfStock
}
