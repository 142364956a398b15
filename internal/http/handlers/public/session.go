package public

import (
	"errors"

	"github.com/skigrip-bot/internal/http/response"
	"github.com/skigrip-bot/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionTransitionRequest 会话流转请求
type SessionTransitionRequest struct {
	To string `json:"to" binding:"required"`
}

// GetSession 当前会话状态
func (h *Handler) GetSession(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	current, err := h.SessionManager.Current(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, response.CodeInternal, "会话读取失败")
		return
	}
	response.Success(c, gin.H{"state": current})
}

// TransitionSession 会话状态流转
func (h *Handler) TransitionSession(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req SessionTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}

	state, err := h.SessionManager.Transition(c.Request.Context(), uid, req.To)
	if err != nil {
		if errors.Is(err, session.ErrTransitionNotAllowed) {
			response.Conflict(c, err.Error())
			return
		}
		response.Error(c, response.CodeInternal, "会话更新失败")
		return
	}
	response.Success(c, state)
}

// ResetSession 重置会话回主菜单
func (h *Handler) ResetSession(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.SessionManager.Reset(c.Request.Context(), uid); err != nil {
		response.Error(c, response.CodeInternal, "会话更新失败")
		return
	}
	response.Success(c, gin.H{"state": session.InitialState})
}
