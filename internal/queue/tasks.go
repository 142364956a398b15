package queue

import (
	"encoding/json"

	"github.com/skigrip-bot/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderNotify 新订单通知任务
	TaskOrderNotify = constants.TaskOrderNotify
)

// OrderNotifyPayload 新订单通知任务载荷
type OrderNotifyPayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderNotifyTask 创建新订单通知任务
func NewOrderNotifyTask(payload OrderNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderNotify, body), nil
}
