package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopworks/storefront/internal/constants"
	"github.com/shopworks/storefront/internal/logger"
	"github.com/shopworks/storefront/internal/models"
	"github.com/shopworks/storefront/internal/queue"
	"github.com/shopworks/storefront/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutInput 结算参数
type CheckoutInput struct {
	UserID        uint
	PaymentMethod string
	CardID        uint
	PromoCode     string
}

// CheckoutService 结算服务
// 下单、扣减库存、应用优惠、清空购物车在同一事务内完成
type CheckoutService struct {
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	cardRepo     repository.CardRepository
	promotionSvc *PromotionService
	queueClient  *queue.Client
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	cardRepo repository.CardRepository,
	promotionSvc *PromotionService,
	queueClient *queue.Client,
) *CheckoutService {
	return &CheckoutService{
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		cardRepo:     cardRepo,
		promotionSvc: promotionSvc,
		queueClient:  queueClient,
	}
}

// Checkout 购物车结算下单
func (s *CheckoutService) Checkout(input CheckoutInput) (*models.Order, error) {
	method := strings.TrimSpace(input.PaymentMethod)
	if method != constants.PaymentMethodCard && method != constants.PaymentMethodCashOnDelivery {
		return nil, ErrPaymentMethodInvalid
	}

	cart, err := s.cartRepo.GetByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	var card *models.Card
	if method == constants.PaymentMethodCard {
		if input.CardID == 0 {
			return nil, ErrCardNotFound
		}
		card, err = s.cardRepo.GetByIDAndUser(input.CardID, input.UserID)
		if err != nil {
			return nil, err
		}
		if card == nil {
			return nil, ErrCardNotFound
		}
	}

	// 事务前只校验优惠码存在性，生效窗口在事务内落单时再复核
	now := time.Now()
	var promotion *models.Promotion
	if strings.TrimSpace(input.PromoCode) != "" {
		promotion, err = s.promotionSvc.Lookup(input.PromoCode)
		if err != nil {
			return nil, err
		}
	}

	// 事务前先按当前库存校验，事务内条件更新兜底并发超卖
	productIDs := make([]uint, 0, len(cart.Items))
	for _, item := range cart.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.productRepo.ListByIDs(productIDs)
	if err != nil {
		return nil, err
	}
	productByID := make(map[uint]*models.Product, len(products))
	for idx := range products {
		productByID[products[idx].ID] = &products[idx]
	}
	for _, item := range cart.Items {
		product := productByID[item.ProductID]
		if product == nil || !product.IsActive {
			return nil, ErrProductNotAvailable
		}
		if item.Quantity > product.Stock {
			return nil, &OutOfStockError{ProductID: product.ID, ProductName: product.Name}
		}
	}

	// 金额以加入购物车时的价格快照计算
	originalAmount := decimal.Zero
	for _, item := range cart.Items {
		originalAmount = originalAmount.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	order := &models.Order{
		OrderNo:        generateOrderNo(),
		UserID:         input.UserID,
		Status:         constants.OrderStatusPending,
		PaymentMethod:  method,
		PaymentStatus:  constants.PaymentStatusPending,
		OriginalAmount: models.NewMoneyFromDecimal(originalAmount),
		DiscountAmount: models.NewMoneyFromDecimal(decimal.Zero),
		TotalAmount:    models.NewMoneyFromDecimal(originalAmount),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if promotion != nil {
		order.PromotionID = &promotion.ID
	}
	if card != nil {
		order.CardID = &card.ID
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		if err := orderRepo.Create(order); err != nil {
			return err
		}

		// 失效的优惠码静默不打折，不阻断下单
		if promotion != nil && promotion.IsRunning(time.Now()) {
			discount := ComputeDiscount(promotion, originalAmount)
			totalAmount := originalAmount.Sub(discount)
			if totalAmount.LessThan(decimal.Zero) {
				totalAmount = decimal.Zero
			}
			updates := map[string]interface{}{
				"discount_amount": models.NewMoneyFromDecimal(discount),
				"total_amount":    models.NewMoneyFromDecimal(totalAmount),
			}
			if err := orderRepo.UpdateStatus(order.ID, updates); err != nil {
				return err
			}
			order.DiscountAmount = models.NewMoneyFromDecimal(discount)
			order.TotalAmount = models.NewMoneyFromDecimal(totalAmount)
		}

		items := make([]models.OrderItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			product := productByID[item.ProductID]
			items = append(items, models.OrderItem{
				OrderID:     order.ID,
				ProductID:   item.ProductID,
				ProductName: product.Name,
				UnitPrice:   item.Price,
				Quantity:    item.Quantity,
				TotalPrice:  models.NewMoneyFromDecimal(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))),
			})
		}
		if err := orderRepo.CreateItems(items); err != nil {
			return err
		}

		for _, item := range cart.Items {
			affected, err := productRepo.DecrementStock(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				product := productByID[item.ProductID]
				return &OutOfStockError{ProductID: product.ID, ProductName: product.Name}
			}
		}

		// 卡支付为模拟支付，下单即扣款成功
		if method == constants.PaymentMethodCard {
			paidAt := time.Now()
			updates := map[string]interface{}{
				"status":         constants.OrderStatusPaid,
				"payment_status": constants.PaymentStatusPaid,
				"paid_at":        paidAt,
			}
			if err := orderRepo.UpdateStatus(order.ID, updates); err != nil {
				return err
			}
			order.Status = constants.OrderStatusPaid
			order.PaymentStatus = constants.PaymentStatusPaid
			order.PaidAt = &paidAt
		}

		return cartRepo.ClearItems(cart.ID)
	})
	if err != nil {
		if _, ok := err.(*OutOfStockError); ok {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}

	created, err := s.orderRepo.GetByID(order.ID)
	if err != nil || created == nil {
		return order, nil
	}
	if s.queueClient.Enabled() {
		payload := queue.OrderStatusNotifyPayload{OrderID: created.ID, Status: created.Status}
		if err := s.queueClient.EnqueueOrderStatusNotify(payload); err != nil {
			logger.Warnw("checkout_enqueue_status_notify_failed", "order_id", created.ID, "error", err)
		}
	}
	return created, nil
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	randPart := randNumeric(6)
	return fmt.Sprintf("SF%s%s", now, randPart)
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
