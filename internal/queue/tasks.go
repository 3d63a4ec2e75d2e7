package queue

import (
	"encoding/json"

	"github.com/shopworks/storefront/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPageViewTrack 页面访问记录任务
	TaskPageViewTrack = constants.TaskPageViewTrack
	// TaskOrderStatusNotify 订单状态通知任务
	TaskOrderStatusNotify = constants.TaskOrderStatusNotify
)

// PageViewTrackPayload 页面访问记录任务载荷
type PageViewTrackPayload struct {
	UserID    *uint  `json:"user_id,omitempty"`
	PageURL   string `json:"page_url"`
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
}

// OrderStatusNotifyPayload 订单状态通知任务载荷
type OrderStatusNotifyPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// NewPageViewTrackTask 创建页面访问记录任务
func NewPageViewTrackTask(payload PageViewTrackPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPageViewTrack, body), nil
}

// NewOrderStatusNotifyTask 创建订单状态通知任务
func NewOrderStatusNotifyTask(payload OrderStatusNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusNotify, body), nil
}
