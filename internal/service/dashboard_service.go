package service

import (
	"github.com/skigrip-bot/internal/constants"
	"github.com/skigrip-bot/internal/models"
	"github.com/skigrip-bot/internal/repository"
)

// StoreStats 店铺概览统计
type StoreStats struct {
	TotalProducts int64            `json:"total_products"`
	TotalStock    int64            `json:"total_stock"`
	TotalOrders   int64            `json:"total_orders"`
	TotalRevenue  models.Money     `json:"total_revenue"`
	LowStock      []models.Product `json:"low_stock"` // 库存告警商品
}

// DashboardService 管理端统计服务
type DashboardService struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

// NewDashboardService 创建统计服务
func NewDashboardService(productRepo repository.ProductRepository, orderRepo repository.OrderRepository) *DashboardService {
	return &DashboardService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// Stats 汇总商品、库存与订单数据
func (s *DashboardService) Stats() (*StoreStats, error) {
	products, err := s.productRepo.List()
	if err != nil {
		return nil, err
	}

	var totalStock int64
	lowStock := make([]models.Product, 0)
	for _, p := range products {
		totalStock += int64(p.Quantity)
		if p.Quantity <= constants.LowStockThreshold {
			lowStock = append(lowStock, p)
		}
	}

	totalOrders, err := s.orderRepo.Count()
	if err != nil {
		return nil, err
	}
	totalRevenue, err := s.orderRepo.SumTotalAmount()
	if err != nil {
		return nil, err
	}

	return &StoreStats{
		TotalProducts: int64(len(products)),
		TotalStock:    totalStock,
		TotalOrders:   totalOrders,
		TotalRevenue:  totalRevenue,
		LowStock:      lowStock,
	}, nil
}
