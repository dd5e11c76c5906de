package queue

import (
	"encoding/json"

	"github.com/shopnext/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderPlaced 下单通知任务
	TaskOrderPlaced = constants.TaskOrderPlaced
	// TaskProductLowStock 低库存告警任务
	TaskProductLowStock = constants.TaskProductLowStock
)

// OrderPlacedPayload 下单通知任务载荷
type OrderPlacedPayload struct {
	OrderID uint   `json:"order_id"`
	OrderNo string `json:"order_no"`
	UserID  uint   `json:"user_id"`
}

// ProductLowStockPayload 低库存告警任务载荷
type ProductLowStockPayload struct {
	ProductID uint `json:"product_id"`
	Stock     int  `json:"stock"`
}

// NewOrderPlacedTask 创建下单通知任务
func NewOrderPlacedTask(payload OrderPlacedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPlaced, body), nil
}

// NewProductLowStockTask 创建低库存告警任务
func NewProductLowStockTask(payload ProductLowStockPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskProductLowStock, body), nil
}
