package public

import (
	"errors"

	"github.com/skigrip-bot/internal/http/response"
	"github.com/skigrip-bot/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// CreateOrder 把当前购物车转换为订单
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请填写联系方式与配送信息")
		return
	}

	receipt, err := h.OrderService.CreateOrder(service.CreateOrderInput{
		UserID:   uid,
		UserName: getUserName(c),
		Comment:  req.Comment,
	})
	if err != nil {
		var shortage *service.StockShortageError
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			response.BadRequest(c, "购物车是空的")
		case errors.Is(err, service.ErrCommentRequired):
			response.BadRequest(c, "请填写联系方式与配送信息")
		case errors.As(err, &shortage):
			response.ErrorWithData(c, response.CodeConflict, shortage.Error(), gin.H{
				"product_id": shortage.ProductID,
				"available":  shortage.Available,
				"requested":  shortage.Requested,
			})
		case errors.Is(err, service.ErrStockInsufficient):
			response.Conflict(c, "库存不足")
		case errors.Is(err, service.ErrNotFound):
			response.Conflict(c, "部分商品已下架，请刷新购物车")
		default:
			response.Error(c, response.CodeInternal, "订单创建失败")
		}
		return
	}
	response.SuccessWithMsg(c, "订单已创建", receipt)
}
