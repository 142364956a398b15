package public

import (
	"errors"

	"github.com/skigrip-bot/internal/http/response"
	"github.com/skigrip-bot/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 购物车变更请求，数量缺省为 1
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// GetCart 获取购物车，附带标价口径汇总与阶梯价预览
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.CartService.ListByUser(uid)
	if err != nil {
		response.Error(c, response.CodeInternal, "购物车读取失败")
		return
	}
	totals, err := h.CartService.Totals(uid)
	if err != nil {
		response.Error(c, response.CodeInternal, "购物车读取失败")
		return
	}
	preview, err := h.CartService.Preview(uid)
	if err != nil {
		response.Error(c, response.CodeInternal, "购物车读取失败")
		return
	}

	response.Success(c, gin.H{
		"items":   items,
		"totals":  totals,
		"preview": preview,
	})
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	result, err := h.CartService.AddItem(uid, req.ProductID, quantity)
	if err != nil {
		var limitErr *service.StockLimitError
		switch {
		case errors.As(err, &limitErr):
			response.ErrorWithData(c, response.CodeConflict, limitErr.Error(), gin.H{
				"product_id":  limitErr.ProductID,
				"available":   limitErr.Available,
				"in_cart":     limitErr.InCart,
				"max_addable": limitErr.MaxAddable,
			})
		case errors.Is(err, service.ErrNotFound):
			response.NotFound(c, "商品不存在")
		case errors.Is(err, service.ErrInvalidQuantity):
			response.BadRequest(c, "数量必须大于 0")
		default:
			response.Error(c, response.CodeInternal, "购物车更新失败")
		}
		return
	}
	response.SuccessWithMsg(c, result.Message, result)
}

// RemoveCartItem 从购物车减少数量
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	result, err := h.CartService.RemoveItem(uid, req.ProductID, quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartItemNotFound):
			response.NotFound(c, "购物车中没有该商品")
		case errors.Is(err, service.ErrInvalidQuantity):
			response.BadRequest(c, "数量必须大于 0")
		default:
			response.Error(c, response.CodeInternal, "购物车更新失败")
		}
		return
	}
	response.SuccessWithMsg(c, result.Message, result)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(uid); err != nil {
		response.Error(c, response.CodeInternal, "购物车更新失败")
		return
	}
	response.SuccessWithMsg(c, "购物车已清空", nil)
}
