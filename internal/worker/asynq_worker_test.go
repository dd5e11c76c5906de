package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/shopnext/internal/models"
	"github.com/shopnext/internal/provider"
	"github.com/shopnext/internal/queue"
	"github.com/shopnext/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	container := &provider.Container{
		UserRepo:    repository.NewUserRepository(db),
		ProductRepo: repository.NewProductRepository(db),
		OrderRepo:   repository.NewOrderRepository(db),
	}
	return NewConsumer(container), db
}

func orderPlacedTask(t *testing.T, payload queue.OrderPlacedPayload) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	return asynq.NewTask(queue.TaskOrderPlaced, data)
}

func TestHandleOrderPlaced(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	user := models.User{Name: "Asha", Email: "asha@example.com", PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	order := models.Order{
		UserID:  user.ID,
		OrderNo: "ORD17000000000001",
		Total:   models.NewMoneyFromInt(590),
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	task := orderPlacedTask(t, queue.OrderPlacedPayload{OrderID: order.ID})
	if err := consumer.handleOrderPlaced(context.Background(), task); err != nil {
		t.Fatalf("handle order placed failed: %v", err)
	}
}

func TestHandleOrderPlacedSkipsBadPayload(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	// 非法 JSON 返回错误，交给 asynq 重试
	bad := asynq.NewTask(queue.TaskOrderPlaced, []byte("{not-json"))
	if err := consumer.handleOrderPlaced(context.Background(), bad); err == nil {
		t.Fatal("malformed payload should surface an error")
	}

	// 零值 ID 与查无订单都静默吞掉，不触发重试
	if err := consumer.handleOrderPlaced(context.Background(), orderPlacedTask(t, queue.OrderPlacedPayload{})); err != nil {
		t.Fatalf("zero order id should be skipped: %v", err)
	}
	if err := consumer.handleOrderPlaced(context.Background(), orderPlacedTask(t, queue.OrderPlacedPayload{OrderID: 404})); err != nil {
		t.Fatalf("missing order should be skipped: %v", err)
	}
}

func TestHandleProductLowStock(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	category := models.Category{Name: "cat", Slug: "cat", IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		CategoryID:        category.ID,
		Name:              "lamp",
		Slug:              "lamp",
		Price:             models.NewMoneyFromInt(100),
		Stock:             1,
		LowStockThreshold: 2,
		IsActive:          true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	data, err := json.Marshal(queue.ProductLowStockPayload{ProductID: product.ID, Stock: 1})
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	if err := consumer.handleProductLowStock(context.Background(), asynq.NewTask(queue.TaskProductLowStock, data)); err != nil {
		t.Fatalf("handle low stock failed: %v", err)
	}

	missing, err := json.Marshal(queue.ProductLowStockPayload{ProductID: 404, Stock: 0})
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	if err := consumer.handleProductLowStock(context.Background(), asynq.NewTask(queue.TaskProductLowStock, missing)); err != nil {
		t.Fatalf("missing product should be skipped: %v", err)
	}
}

func TestRegisterNilSafe(t *testing.T) {
	var consumer *Consumer
	consumer.Register(nil)

	mux := asynq.NewServeMux()
	NewConsumer(nil).Register(mux)
}
