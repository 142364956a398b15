package repository

import (
	"errors"

	"github.com/skigrip-bot/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	UpdateQuantity(id uint, quantity int) (int64, error)
	UpdatePrice(id uint, price models.Money) (int64, error)
	UpdatePhoto(id uint, photoID string) (int64, error)
	Delete(id uint) error
	CountOrderReferences(id uint) (int64, error)
	DecrementStock(id uint, quantity int) (int64, error)
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// List 按 ID 升序返回全部商品
func (r *GormProductRepository) List() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("id asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID 根据 ID 获取商品，未找到返回 nil
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// UpdateQuantity 更新库存数量
func (r *GormProductRepository) UpdateQuantity(id uint, quantity int) (int64, error) {
	result := r.db.Model(&models.Product{}).Where("id = ?", id).Update("quantity", quantity)
	return result.RowsAffected, result.Error
}

// UpdatePrice 更新基准单价
func (r *GormProductRepository) UpdatePrice(id uint, price models.Money) (int64, error) {
	result := r.db.Model(&models.Product{}).Where("id = ?", id).Update("price", price)
	return result.RowsAffected, result.Error
}

// UpdatePhoto 更新图片句柄（原样写入，不做任何解释）
func (r *GormProductRepository) UpdatePhoto(id uint, photoID string) (int64, error) {
	result := r.db.Model(&models.Product{}).Where("id = ?", id).Update("photo_id", photoID)
	return result.RowsAffected, result.Error
}

// Delete 删除商品。被历史订单项引用时由外键约束拦截并返回错误
func (r *GormProductRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountOrderReferences 统计历史订单项中对该商品的引用数
func (r *GormProductRepository) CountOrderReferences(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&count).Error
	return count, err
}

// DecrementStock 条件扣减库存：库存不足时不更新任何行
func (r *GormProductRepository) DecrementStock(id uint, quantity int) (int64, error) {
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	return result.RowsAffected, result.Error
}
