package admin

import (
	"errors"

	"github.com/skigrip-bot/internal/http/response"
	"github.com/skigrip-bot/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 管理员登录请求。
// 用户名可省略，省略时按配置的默认管理员处理。
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

// Login 管理员登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "用户名或密码错误")
			return
		}
		response.Error(c, response.CodeInternal, "登录失败")
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt.Unix(),
		"admin": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
		},
	})
}
