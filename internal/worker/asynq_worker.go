package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/shopworks/storefront/internal/logger"
	"github.com/shopworks/storefront/internal/models"
	"github.com/shopworks/storefront/internal/provider"
	"github.com/shopworks/storefront/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPageViewTrack, c.handlePageViewTrack)
	mux.HandleFunc(queue.TaskOrderStatusNotify, c.handleOrderStatusNotify)
}

func (c *Consumer) handlePageViewTrack(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_page_view_track_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PageViewTrackPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_page_view_track_unmarshal_failed", "error", err)
		return err
	}
	pageURL := strings.TrimSpace(payload.PageURL)
	if pageURL == "" {
		logger.Debugw("worker_page_view_track_skip_empty_url")
		return nil
	}
	view := &models.PageView{
		UserID:    payload.UserID,
		PageURL:   pageURL,
		IPAddress: payload.IPAddress,
		UserAgent: payload.UserAgent,
	}
	if err := c.PageViewRepo.Create(view); err != nil {
		logger.Warnw("worker_page_view_track_create_failed", "page_url", pageURL, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderStatusNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_notify_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_notify_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_notify_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}
	var receiverEmail string
	if order.UserID != 0 {
		user, err := c.UserRepo.GetByID(order.UserID)
		if err != nil {
			logger.Warnw("worker_order_status_notify_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
			return err
		}
		if user != nil {
			receiverEmail = strings.TrimSpace(user.Email)
		}
	}
	// 暂无对接外部通知渠道，记录结构化日志便于排查与审计
	logger.Infow("order_status_notify",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"status", status,
		"receiver_email", receiverEmail,
	)
	return nil
}
