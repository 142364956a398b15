package public

import (
	"strconv"

	"github.com/skigrip-bot/internal/http/response"
	"github.com/skigrip-bot/internal/models"
	"github.com/skigrip-bot/internal/pricing"

	"github.com/gin-gonic/gin"
)

// ProductResponse 商品摘要
type ProductResponse struct {
	ID       uint         `json:"id"`
	Name     string       `json:"name"`
	Quantity int          `json:"quantity"`
	Price    models.Money `json:"price"`
	PhotoID  string       `json:"photo_id,omitempty"`
}

func toProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Quantity: p.Quantity,
		Price:    p.Price,
		PhotoID:  p.PhotoID,
	}
}

// ListProducts 商品目录
func (h *Handler) ListProducts(c *gin.Context) {
	products := h.ProductService.List()
	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, toProductResponse(&products[i]))
	}
	response.Success(c, gin.H{"items": items})
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "商品 ID 无效")
		return
	}
	product := h.ProductService.Get(uint(id))
	if product == nil {
		response.NotFound(c, "商品不存在")
		return
	}
	response.Success(c, toProductResponse(product))
}

// PriceTierItem 阶梯价表项
type PriceTierItem struct {
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}

// GetPriceTiers 阶梯价表，供前端展示批量优惠
func (h *Handler) GetPriceTiers(c *gin.Context) {
	tiers := make([]PriceTierItem, 0, 5)
	for qty := 1; qty <= 5; qty++ {
		tiers = append(tiers, PriceTierItem{Quantity: qty, UnitPrice: pricing.UnitPrice(qty)})
	}
	response.Success(c, gin.H{"tiers": tiers})
}
