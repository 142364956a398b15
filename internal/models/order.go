package models

import (
	"time"
)

// Order 订单表。订单一经创建不再修改或删除
type Order struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                      // 主键
	UserID      int64     `gorm:"index;not null" json:"user_id"`                             // 用户ID
	UserName    string    `gorm:"type:varchar(200)" json:"user_name"`                        // 下单时的用户显示名
	TotalAmount Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 订单总额（阶梯价小计之和）
	Comment     string    `gorm:"type:text" json:"comment"`                                  // 联系方式与配送备注
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                                   // 创建时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
