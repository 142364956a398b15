package service

import (
	"errors"
	"strings"

	"github.com/skigrip-bot/internal/logger"
	"github.com/skigrip-bot/internal/models"
	"github.com/skigrip-bot/internal/repository"

	"gorm.io/gorm"
)

// CreateProductInput 创建商品输入
type CreateProductInput struct {
	Name     string
	Quantity int
	Price    models.Money
	PhotoID  string
}

// ProductService 商品服务
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// List 列出全部商品。读取失败时记录日志并返回空列表，
// 浏览目录的调用方不需要感知存储故障。
func (s *ProductService) List() []models.Product {
	products, err := s.productRepo.List()
	if err != nil {
		logger.Errorw("product_list_failed", "error", err)
		return []models.Product{}
	}
	return products
}

// Get 按 ID 获取商品，未找到或读取失败返回 nil
func (s *ProductService) Get(id uint) *models.Product {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		logger.Errorw("product_get_failed", "product_id", id, "error", err)
		return nil
	}
	return product
}

// Create 创建商品。名称去除首尾空白后不能为空，数量与价格为负时归零
func (s *ProductService) Create(input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProductNameRequired
	}
	quantity := input.Quantity
	if quantity < 0 {
		quantity = 0
	}
	price := input.Price
	if price.Decimal.IsNegative() {
		price = models.NewMoneyFromInt(0)
	}

	product := &models.Product{
		Name:     name,
		Quantity: quantity,
		Price:    price,
		PhotoID:  strings.TrimSpace(input.PhotoID),
	}
	if err := s.productRepo.Create(product); err != nil {
		logger.Errorw("product_create_failed", "name", name, "error", err)
		return nil, ErrStoreFailure
	}
	logger.Infow("product_created", "product_id", product.ID, "name", name)
	return product, nil
}

// UpdateQuantity 更新库存数量，负值归零
func (s *ProductService) UpdateQuantity(id uint, quantity int) error {
	if quantity < 0 {
		quantity = 0
	}
	affected, err := s.productRepo.UpdateQuantity(id, quantity)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePrice 更新商品价格，负值归零
func (s *ProductService) UpdatePrice(id uint, price models.Money) error {
	if price.Decimal.IsNegative() {
		price = models.NewMoneyFromInt(0)
	}
	affected, err := s.productRepo.UpdatePrice(id, price)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePhoto 更新商品图片标识，传空串即清除图片
func (s *ProductService) UpdatePhoto(id uint, photoID string) error {
	affected, err := s.productRepo.UpdatePhoto(id, strings.TrimSpace(photoID))
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete 删除商品。被历史订单引用的商品拒绝删除，
// 购物车中的残留项由外键级联一并清除。
func (s *ProductService) Delete(id uint) error {
	refs, err := s.productRepo.CountOrderReferences(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrProductInUse
	}
	if err := s.productRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		// 并发写入的订单行也可能触发外键约束
		logger.Warnw("product_delete_rejected", "product_id", id, "error", err)
		return ErrProductInUse
	}
	logger.Infow("product_deleted", "product_id", id)
	return nil
}
