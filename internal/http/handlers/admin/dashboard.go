package admin

import (
	"github.com/skigrip-bot/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats 店铺统计 (Admin)
func (h *Handler) GetDashboardStats(c *gin.Context) {
	stats, err := h.DashboardService.Stats()
	if err != nil {
		response.Error(c, response.CodeInternal, "统计数据读取失败")
		return
	}
	response.Success(c, stats)
}
