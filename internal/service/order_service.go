package service

import (
	"time"

	"github.com/shopworks/storefront/internal/constants"
	"github.com/shopworks/storefront/internal/logger"
	"github.com/shopworks/storefront/internal/models"
	"github.com/shopworks/storefront/internal/queue"
	"github.com/shopworks/storefront/internal/repository"

	"gorm.io/gorm"
)

// allowedTransitions 订单状态机
var allowedTransitions = map[string][]string{
	constants.OrderStatusPending: {constants.OrderStatusPaid, constants.OrderStatusCancelled},
	constants.OrderStatusPaid:    {constants.OrderStatusShipped, constants.OrderStatusCancelled},
	constants.OrderStatusShipped: {constants.OrderStatusDelivered},
}

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		queueClient: queueClient,
	}
}

// ListByUser 用户订单列表
func (s *OrderService) ListByUser(userID uint, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	filter.UserID = userID
	return s.orderRepo.List(filter)
}

// GetByIDAndUser 用户订单详情
func (s *OrderService) GetByIDAndUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// Cancel 用户取消订单，仅限待支付订单
func (s *OrderService) Cancel(orderID, userID uint) (*models.Order, error) {
	order, err := s.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order.Status != constants.OrderStatusPending {
		return nil, ErrOrderStatusInvalid
	}
	if err := s.cancelWithStockRestore(order); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(order.ID)
}

// AdminList 管理侧订单列表
func (s *OrderService) AdminList(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// AdminGet 管理侧订单详情
func (s *OrderService) AdminGet(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatus 管理侧推进订单状态
func (s *OrderService) UpdateStatus(orderID uint, nextStatus string) (*models.Order, error) {
	order, err := s.AdminGet(orderID)
	if err != nil {
		return nil, err
	}
	if !isTransitionAllowed(order.Status, nextStatus) {
		return nil, ErrOrderStatusInvalid
	}

	switch nextStatus {
	case constants.OrderStatusCancelled:
		if err := s.cancelWithStockRestore(order); err != nil {
			return nil, err
		}
	case constants.OrderStatusPaid:
		now := time.Now()
		updates := map[string]interface{}{
			"status":         constants.OrderStatusPaid,
			"payment_status": constants.PaymentStatusPaid,
			"paid_at":        now,
		}
		if err := s.orderRepo.UpdateStatus(order.ID, updates); err != nil {
			return nil, err
		}
	default:
		updates := map[string]interface{}{"status": nextStatus}
		if err := s.orderRepo.UpdateStatus(order.ID, updates); err != nil {
			return nil, err
		}
	}

	updated, err := s.orderRepo.GetByID(order.ID)
	if err != nil {
		return nil, err
	}
	s.notifyStatusChange(updated)
	return updated, nil
}

// cancelWithStockRestore 取消订单并回补库存
func (s *OrderService) cancelWithStockRestore(order *models.Order) error {
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		now := time.Now()
		updates := map[string]interface{}{
			"status":       constants.OrderStatusCancelled,
			"cancelled_at": now,
		}
		if err := orderRepo.UpdateStatus(order.ID, updates); err != nil {
			return err
		}
		for _, item := range order.Items {
			if err := productRepo.IncrementStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	order.Status = constants.OrderStatusCancelled
	s.notifyStatusChange(order)
	return nil
}

func (s *OrderService) notifyStatusChange(order *models.Order) {
	if order == nil || !s.queueClient.Enabled() {
		return
	}
	payload := queue.OrderStatusNotifyPayload{OrderID: order.ID, Status: order.Status}
	if err := s.queueClient.EnqueueOrderStatusNotify(payload); err != nil {
		logger.Warnw("order_enqueue_status_notify_failed", "order_id", order.ID, "error", err)
	}
}

func isTransitionAllowed(current, next string) bool {
	for _, allowed := range allowedTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}
