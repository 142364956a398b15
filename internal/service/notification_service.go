package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/skigrip-bot/internal/logger"
	"github.com/skigrip-bot/internal/models"
	"github.com/skigrip-bot/internal/queue"
	"github.com/skigrip-bot/internal/repository"

	"github.com/hibiken/asynq"
)

// NotificationService 新订单通知服务。
// 队列可用时走异步任务，否则在后台直接发送；
// 通知属尽力而为，失败只记录日志。
type NotificationService struct {
	orderRepo      repository.OrderRepository
	queueClient    *queue.Client
	telegramSender *TelegramNotifyService
}

// NewNotificationService 创建通知服务
func NewNotificationService(orderRepo repository.OrderRepository, queueClient *queue.Client, telegramSender *TelegramNotifyService) *NotificationService {
	return &NotificationService{
		orderRepo:      orderRepo,
		queueClient:    queueClient,
		telegramSender: telegramSender,
	}
}

// NotifyNewOrder 触发新订单通知
func (s *NotificationService) NotifyNewOrder(orderID uint) {
	if s == nil || !s.telegramSender.Enabled() {
		return
	}
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueOrderNotify(queue.OrderNotifyPayload{OrderID: orderID}, asynq.MaxRetry(5)); err != nil {
			logger.Warnw("order_notify_enqueue_failed", "order_id", orderID, "error", err)
		}
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Dispatch(ctx, queue.OrderNotifyPayload{OrderID: orderID}); err != nil {
			logger.Warnw("order_notify_send_failed", "order_id", orderID, "error", err)
		}
	}()
}

// Dispatch 处理通知任务：加载订单并发送给管理员
func (s *NotificationService) Dispatch(ctx context.Context, payload queue.OrderNotifyPayload) error {
	if s == nil || !s.telegramSender.Enabled() {
		return nil
	}
	order, err := s.orderRepo.GetByID(payload.OrderID)
	if err != nil {
		return err
	}
	if order == nil {
		logger.Warnw("order_notify_order_missing", "order_id", payload.OrderID)
		return nil
	}
	return s.telegramSender.SendToAdmin(ctx, ComposeOrderMessage(order))
}

// ComposeOrderMessage 渲染新订单通知文本
func ComposeOrderMessage(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🆕 新订单 #%d\n", order.ID)
	fmt.Fprintf(&b, "👤 %s（ID %d）\n", order.UserName, order.UserID)
	fmt.Fprintf(&b, "🕒 %s\n\n", order.CreatedAt.Format("2006-01-02 15:04:05"))
	for _, item := range order.Items {
		name := fmt.Sprintf("商品 %d", item.ProductID)
		if item.Product != nil && item.Product.ID != 0 {
			name = item.Product.Name
		}
		fmt.Fprintf(&b, "· %s ×%d = %s ₽\n", name, item.Quantity, formatAmount(item.TotalPrice))
	}
	fmt.Fprintf(&b, "\n💬 %s\n", order.Comment)
	fmt.Fprintf(&b, "💰 合计：%s ₽", formatAmount(order.TotalAmount))
	return b.String()
}

// formatAmount 按千位分隔输出整数金额
func formatAmount(m models.Money) string {
	digits := m.Decimal.Round(0).String()
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	out := strings.Join(parts, " ")
	if neg {
		out = "-" + out
	}
	return out
}
