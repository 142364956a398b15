package models

import (
	"time"
)

// CartItem 购物车项：(user_id, product_id) 唯一，数量为零的行直接删除、不落库
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                         // 主键
	UserID    int64     `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`    // 用户ID（由外部会话层传入）
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"` // 商品ID
	Quantity  int       `gorm:"not null" json:"quantity"`                                     // 数量
	CreatedAt time.Time `json:"created_at"`                                                   // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                                   // 更新时间

	// 商品被删除时购物车项级联删除
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
