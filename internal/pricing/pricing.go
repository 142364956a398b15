// Package pricing 实现按购物车总量取阶梯单价的定价规则。
// 阶梯由整车商品总数决定，对车内每一行统一生效，而非按单行数量分别计算。
package pricing

// 阶梯价表：总量 1/2/3/4 档，5 件及以上封底
const (
	priceTier1    = 650
	priceTier2    = 625
	priceTier3    = 600
	priceTier4    = 575
	priceTierBulk = 550
)

// UnitPrice 按购物车总量解析阶梯单价。
// 调用方保证 totalQuantity ≥ 1。
func UnitPrice(totalQuantity int) int64 {
	switch totalQuantity {
	case 1:
		return priceTier1
	case 2:
		return priceTier2
	case 3:
		return priceTier3
	case 4:
		return priceTier4
	default:
		return priceTierBulk
	}
}
