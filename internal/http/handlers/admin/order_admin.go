package admin

import (
	"errors"
	"strconv"

	"github.com/skigrip-bot/internal/constants"
	"github.com/skigrip-bot/internal/http/response"
	"github.com/skigrip-bot/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminOrders 订单列表 (Admin)，缺省只取最近若干条
func (h *Handler) GetAdminOrders(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.OrderListPageLimit)))
	if err != nil || limit < 0 {
		limit = constants.OrderListPageLimit
	}
	orders, err := h.OrderService.ListOrders(limit)
	if err != nil {
		response.Error(c, response.CodeInternal, "订单读取失败")
		return
	}
	response.Success(c, gin.H{"items": orders})
}

// GetAdminOrder 订单详情 (Admin)
func (h *Handler) GetAdminOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "订单 ID 无效")
		return
	}
	order, err := h.OrderService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "订单不存在")
			return
		}
		response.Error(c, response.CodeInternal, "订单读取失败")
		return
	}
	response.Success(c, order)
}
