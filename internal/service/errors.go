package service

import (
	"errors"
	"fmt"
)

// 业务错误哨兵，按错误类别划分：
// 校验类、容量类、未找到类、引用完整性类，以及兜底的存储故障类。
var (
	ErrNotFound            = errors.New("记录不存在")
	ErrProductNameRequired = errors.New("商品名称不能为空")
	ErrInvalidQuantity     = errors.New("数量必须大于 0")
	ErrInvalidUser         = errors.New("用户标识无效")
	ErrCommentRequired     = errors.New("请填写联系方式与配送信息")
	ErrCartEmpty           = errors.New("购物车是空的")
	ErrCartItemNotFound    = errors.New("购物车中没有该商品")
	ErrStockExceeded       = errors.New("超出可加入数量上限")
	ErrStockInsufficient   = errors.New("库存不足")
	ErrProductInUse        = errors.New("商品已被历史订单引用，无法删除")
	ErrInvalidCredentials  = errors.New("用户名或密码错误")
	ErrOrderCreateFailed   = errors.New("订单创建失败")
	ErrStoreFailure        = errors.New("存储操作失败")
)

// StockLimitError 加购超限错误，携带还能加入的最大数量
type StockLimitError struct {
	ProductID  uint
	Available  int // 当前库存
	InCart     int // 购物车中已有数量
	MaxAddable int // 还能加入的最大数量
}

func (e *StockLimitError) Error() string {
	return fmt.Sprintf("最多还能加入 %d 件", e.MaxAddable)
}

// Is 支持 errors.Is(err, ErrStockExceeded)
func (e *StockLimitError) Is(target error) bool {
	return target == ErrStockExceeded
}

// StockShortageError 下单时库存不足错误，指明不足的商品
type StockShortageError struct {
	ProductID   uint
	ProductName string
	Available   int
	Requested   int
}

func (e *StockShortageError) Error() string {
	return fmt.Sprintf("商品 %s（ID %d）库存不足：需要 %d 件，仅剩 %d 件", e.ProductName, e.ProductID, e.Requested, e.Available)
}

// Is 支持 errors.Is(err, ErrStockInsufficient)
func (e *StockShortageError) Is(target error) bool {
	return target == ErrStockInsufficient
}
