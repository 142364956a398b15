package models

import (
	"time"
)

// Product 商品表
type Product struct {
	ID        uint      `gorm:"primarykey" json:"id"`                             // 主键
	Name      string    `gorm:"not null" json:"name"`                             // 商品名称
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`               // 当前库存
	Price     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 基准单价（仅展示，结算价由阶梯价决定）
	PhotoID   string    `gorm:"type:varchar(255)" json:"photo_id"`                // 图片句柄（不透明字符串，原样存取）
	CreatedAt time.Time `gorm:"index" json:"created_at"`                          // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                       // 更新时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
