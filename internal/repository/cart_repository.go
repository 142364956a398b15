package repository

import (
	"errors"

	"github.com/skigrip-bot/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByUser(userID int64) ([]models.CartItem, error)
	GetByUserAndProduct(userID int64, productID uint) (*models.CartItem, error)
	Create(item *models.CartItem) error
	UpdateQuantity(userID int64, productID uint, quantity int) error
	DeleteByUserAndProduct(userID int64, productID uint) error
	ClearByUser(userID int64) error
	TotalsByUser(userID int64) (int64, models.Money, error)
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByUser 获取用户购物车项（带商品快照）
func (r *GormCartRepository) ListByUser(userID int64) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Where("user_id = ?", userID).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByUserAndProduct 获取指定商品的购物车项，未找到返回 nil
func (r *GormCartRepository) GetByUserAndProduct(userID int64, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create 新建购物车项
func (r *GormCartRepository) Create(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateQuantity 更新购物车项数量
func (r *GormCartRepository) UpdateQuantity(userID int64, productID uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity).Error
}

// DeleteByUserAndProduct 删除购物车项
func (r *GormCartRepository) DeleteByUserAndProduct(userID int64, productID uint) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.CartItem{}).Error
}

// ClearByUser 清空购物车
func (r *GormCartRepository) ClearByUser(userID int64) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// TotalsByUser 聚合购物车件数与按基准单价的金额合计。
// 这里沿用基准单价求和；结算时的阶梯价合计由订单侧计算，两者口径不同。
func (r *GormCartRepository) TotalsByUser(userID int64) (int64, models.Money, error) {
	var row struct {
		TotalItems int64
		TotalPrice models.Money
	}
	err := r.db.Model(&models.CartItem{}).
		Select("COALESCE(SUM(cart_items.quantity), 0) AS total_items, COALESCE(SUM(cart_items.quantity * products.price), 0) AS total_price").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return 0, models.Money{}, err
	}
	return row.TotalItems, row.TotalPrice, nil
}
