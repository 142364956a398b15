package service

import (
	"fmt"

	"github.com/skigrip-bot/internal/models"
	"github.com/skigrip-bot/internal/pricing"
	"github.com/skigrip-bot/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	ProductID      uint         `json:"product_id"`
	Name           string       `json:"name"`
	Quantity       int          `json:"quantity"`
	AvailableStock int          `json:"available_stock"`
	UnitPrice      models.Money `json:"unit_price"`
	PhotoID        string       `json:"photo_id,omitempty"`
}

// CartMutation 购物车变更结果
type CartMutation struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Removed   bool   `json:"removed"`
	Message   string `json:"message"`
}

// CartTotals 购物车汇总（按商品标价计算）
type CartTotals struct {
	TotalItems int64        `json:"total_items"`
	TotalPrice models.Money `json:"total_price"`
}

// CartPreviewLine 结算预览行
type CartPreviewLine struct {
	ProductID uint         `json:"product_id"`
	Name      string       `json:"name"`
	Quantity  int          `json:"quantity"`
	UnitPrice models.Money `json:"unit_price"`
	LineTotal models.Money `json:"line_total"`
}

// CartPreview 结算预览，单价按整车总件数的阶梯价计算
type CartPreview struct {
	Lines       []CartPreviewLine `json:"lines"`
	TotalItems  int               `json:"total_items"`
	UnitPrice   models.Money      `json:"unit_price"`
	TotalAmount models.Money      `json:"total_amount"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// ListByUser 获取用户购物车，已删除商品的残留项会被跳过并清理
func (s *CartService) ListByUser(userID int64) ([]CartItemDetail, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	details := make([]CartItemDetail, 0, len(items))
	for _, item := range items {
		product := item.Product
		if product == nil || product.ID == 0 {
			_ = s.cartRepo.DeleteByUserAndProduct(userID, item.ProductID)
			continue
		}
		details = append(details, CartItemDetail{
			ProductID:      item.ProductID,
			Name:           product.Name,
			Quantity:       item.Quantity,
			AvailableStock: product.Quantity,
			UnitPrice:      product.Price,
			PhotoID:        product.PhotoID,
		})
	}
	return details, nil
}

// AddItem 向购物车加入商品。在事务内校验库存上限：
// 购物车已有数量加上本次增量不得超过当前库存。
func (s *CartService) AddItem(userID int64, productID uint, delta int) (*CartMutation, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}
	if productID == 0 {
		return nil, ErrNotFound
	}
	if delta <= 0 {
		return nil, ErrInvalidQuantity
	}

	var result CartMutation
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		product, err := productRepo.GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrNotFound
		}

		existing, err := cartRepo.GetByUserAndProduct(userID, productID)
		if err != nil {
			return err
		}
		inCart := 0
		if existing != nil {
			inCart = existing.Quantity
		}

		if inCart+delta > product.Quantity {
			maxAddable := product.Quantity - inCart
			if maxAddable < 0 {
				maxAddable = 0
			}
			return &StockLimitError{
				ProductID:  productID,
				Available:  product.Quantity,
				InCart:     inCart,
				MaxAddable: maxAddable,
			}
		}

		if existing == nil {
			if err := cartRepo.Create(&models.CartItem{
				UserID:    userID,
				ProductID: productID,
				Quantity:  delta,
			}); err != nil {
				return err
			}
			result = CartMutation{
				ProductID: productID,
				Quantity:  delta,
				Message:   fmt.Sprintf("%s 已加入购物车", product.Name),
			}
			return nil
		}

		newQty := inCart + delta
		if err := cartRepo.UpdateQuantity(userID, productID, newQty); err != nil {
			return err
		}
		result = CartMutation{
			ProductID: productID,
			Quantity:  newQty,
			Message:   fmt.Sprintf("%s 数量已更新为 %d", product.Name, newQty),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RemoveItem 从购物车减少商品数量，减至 0 时整行删除
func (s *CartService) RemoveItem(userID int64, productID uint, delta int) (*CartMutation, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}
	if delta <= 0 {
		return nil, ErrInvalidQuantity
	}

	var result CartMutation
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)

		existing, err := cartRepo.GetByUserAndProduct(userID, productID)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrCartItemNotFound
		}

		newQty := existing.Quantity - delta
		if newQty <= 0 {
			if err := cartRepo.DeleteByUserAndProduct(userID, productID); err != nil {
				return err
			}
			result = CartMutation{
				ProductID: productID,
				Quantity:  0,
				Removed:   true,
				Message:   "商品已从购物车移除",
			}
			return nil
		}

		if err := cartRepo.UpdateQuantity(userID, productID, newQty); err != nil {
			return err
		}
		result = CartMutation{
			ProductID: productID,
			Quantity:  newQty,
			Message:   fmt.Sprintf("数量已减少为 %d", newQty),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Clear 清空用户购物车
func (s *CartService) Clear(userID int64) error {
	if userID == 0 {
		return ErrInvalidUser
	}
	return s.cartRepo.ClearByUser(userID)
}

// Totals 购物车汇总，金额按商品标价乘以数量聚合。
// 阶梯价只在结算预览与下单时生效，此处保持标价口径。
func (s *CartService) Totals(userID int64) (*CartTotals, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}
	totalItems, totalPrice, err := s.cartRepo.TotalsByUser(userID)
	if err != nil {
		return nil, err
	}
	return &CartTotals{
		TotalItems: totalItems,
		TotalPrice: totalPrice,
	}, nil
}

// Preview 结算预览：按整车总件数取阶梯单价，统一套用到每一行
func (s *CartService) Preview(userID int64) (*CartPreview, error) {
	details, err := s.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	totalItems := 0
	for _, d := range details {
		totalItems += d.Quantity
	}
	if totalItems == 0 {
		return &CartPreview{
			Lines:       []CartPreviewLine{},
			UnitPrice:   models.NewMoneyFromInt(0),
			TotalAmount: models.NewMoneyFromInt(0),
		}, nil
	}

	unitPrice := decimal.NewFromInt(pricing.UnitPrice(totalItems))
	lines := make([]CartPreviewLine, 0, len(details))
	totalAmount := decimal.Zero
	for _, d := range details {
		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(d.Quantity)))
		totalAmount = totalAmount.Add(lineTotal)
		lines = append(lines, CartPreviewLine{
			ProductID: d.ProductID,
			Name:      d.Name,
			Quantity:  d.Quantity,
			UnitPrice: models.NewMoneyFromDecimal(unitPrice),
			LineTotal: models.NewMoneyFromDecimal(lineTotal),
		})
	}

	return &CartPreview{
		Lines:       lines,
		TotalItems:  totalItems,
		UnitPrice:   models.NewMoneyFromDecimal(unitPrice),
		TotalAmount: models.NewMoneyFromDecimal(totalAmount),
	}, nil
}
