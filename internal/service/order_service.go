package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skigrip-bot/internal/logger"
	"github.com/skigrip-bot/internal/models"
	"github.com/skigrip-bot/internal/pricing"
	"github.com/skigrip-bot/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	UserID   int64
	UserName string
	Comment  string
}

// ReceiptLine 订单回执行
type ReceiptLine struct {
	ProductID uint         `json:"product_id"`
	Name      string       `json:"name"`
	Quantity  int          `json:"quantity"`
	UnitPrice models.Money `json:"unit_price"`
	LineTotal models.Money `json:"line_total"`
}

// Receipt 订单回执
type Receipt struct {
	OrderID     uint          `json:"order_id"`
	UserID      int64         `json:"user_id"`
	UserName    string        `json:"user_name"`
	Comment     string        `json:"comment"`
	Lines       []ReceiptLine `json:"lines"`
	TotalItems  int           `json:"total_items"`
	UnitPrice   models.Money  `json:"unit_price"`
	TotalAmount models.Money  `json:"total_amount"`
	CreatedAt   time.Time     `json:"created_at"`
}

// OrderSummary 订单列表项（管理端）
type OrderSummary struct {
	ID          uint         `json:"id"`
	UserID      int64        `json:"user_id"`
	UserName    string       `json:"user_name"`
	TotalAmount models.Money `json:"total_amount"`
	Comment     string       `json:"comment"`
	ItemsText   string       `json:"items_text"`
	CreatedAt   time.Time    `json:"created_at"`
}

// OrderService 订单服务
type OrderService struct {
	orderRepo           repository.OrderRepository
	productRepo         repository.ProductRepository
	cartRepo            repository.CartRepository
	notificationService *NotificationService
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cartRepo repository.CartRepository, notificationService *NotificationService) *OrderService {
	return &OrderService{
		orderRepo:           orderRepo,
		productRepo:         productRepo,
		cartRepo:            cartRepo,
		notificationService: notificationService,
	}
}

// CreateOrder 把购物车原子地转换为订单。
// 单个事务内完成：购物车快照、逐行库存校验、条件库存扣减、
// 订单与订单行写入、购物车清空。任一步失败整体回滚。
func (s *OrderService) CreateOrder(input CreateOrderInput) (*Receipt, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidUser
	}
	comment := strings.TrimSpace(input.Comment)
	if comment == "" {
		return nil, ErrCommentRequired
	}
	userName := strings.TrimSpace(input.UserName)
	if userName == "" {
		userName = fmt.Sprintf("用户 %d", input.UserID)
	}

	var receipt Receipt
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		cartItems, err := cartRepo.ListByUser(input.UserID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrCartEmpty
		}

		totalItems := 0
		for _, item := range cartItems {
			totalItems += item.Quantity
		}
		unitPrice := decimal.NewFromInt(pricing.UnitPrice(totalItems))

		totalAmount := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(cartItems))
		lines := make([]ReceiptLine, 0, len(cartItems))
		for _, item := range cartItems {
			product := item.Product
			if product == nil || product.ID == 0 {
				return ErrNotFound
			}
			if item.Quantity > product.Quantity {
				return &StockShortageError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Available:   product.Quantity,
					Requested:   item.Quantity,
				}
			}

			// 条件扣减再次校验库存，避免快照读取后的并发写入
			affected, err := productRepo.DecrementStock(product.ID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return &StockShortageError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Available:   product.Quantity,
					Requested:   item.Quantity,
				}
			}

			lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			totalAmount = totalAmount.Add(lineTotal)
			orderItems = append(orderItems, models.OrderItem{
				ProductID:  product.ID,
				Quantity:   item.Quantity,
				UnitPrice:  models.NewMoneyFromDecimal(unitPrice),
				TotalPrice: models.NewMoneyFromDecimal(lineTotal),
			})
			lines = append(lines, ReceiptLine{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  item.Quantity,
				UnitPrice: models.NewMoneyFromDecimal(unitPrice),
				LineTotal: models.NewMoneyFromDecimal(lineTotal),
			})
		}

		order := &models.Order{
			UserID:      input.UserID,
			UserName:    userName,
			TotalAmount: models.NewMoneyFromDecimal(totalAmount),
			Comment:     comment,
		}
		if err := orderRepo.Create(order, orderItems); err != nil {
			return err
		}

		if err := cartRepo.ClearByUser(input.UserID); err != nil {
			return err
		}

		receipt = Receipt{
			OrderID:     order.ID,
			UserID:      input.UserID,
			UserName:    userName,
			Comment:     comment,
			Lines:       lines,
			TotalItems:  totalItems,
			UnitPrice:   models.NewMoneyFromDecimal(unitPrice),
			TotalAmount: models.NewMoneyFromDecimal(totalAmount),
			CreatedAt:   order.CreatedAt,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCartEmpty) || errors.Is(err, ErrStockInsufficient) || errors.Is(err, ErrNotFound) {
			return nil, err
		}
		logger.Errorw("order_create_failed", "user_id", input.UserID, "error", err)
		return nil, ErrOrderCreateFailed
	}

	logger.Infow("order_created",
		"order_id", receipt.OrderID,
		"user_id", receipt.UserID,
		"total_items", receipt.TotalItems,
		"total_amount", receipt.TotalAmount.String(),
	)

	// 通知失败不影响订单结果
	if s.notificationService != nil {
		s.notificationService.NotifyNewOrder(receipt.OrderID)
	}

	return &receipt, nil
}

// GetByID 按 ID 获取订单
func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// ListOrders 按创建时间倒序列出订单并拼出行摘要，limit 为 0 时不限条数
func (s *OrderService) ListOrders(limit int) ([]OrderSummary, error) {
	orders, err := s.orderRepo.ListAll(limit)
	if err != nil {
		return nil, err
	}
	summaries := make([]OrderSummary, 0, len(orders))
	for _, order := range orders {
		parts := make([]string, 0, len(order.Items))
		for _, item := range order.Items {
			name := fmt.Sprintf("商品 %d", item.ProductID)
			if item.Product != nil && item.Product.ID != 0 {
				name = item.Product.Name
			}
			parts = append(parts, fmt.Sprintf("%s ×%d", name, item.Quantity))
		}
		summaries = append(summaries, OrderSummary{
			ID:          order.ID,
			UserID:      order.UserID,
			UserName:    order.UserName,
			TotalAmount: order.TotalAmount,
			Comment:     order.Comment,
			ItemsText:   strings.Join(parts, "，"),
			CreatedAt:   order.CreatedAt,
		})
	}
	return summaries, nil
}
