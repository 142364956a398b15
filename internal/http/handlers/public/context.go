package public

import (
	"strconv"
	"strings"

	"github.com/skigrip-bot/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 用户身份由接入层透传，不做鉴权：
// 聊天平台的用户 ID 对平台本身可信。
const userIDHeader = "X-User-ID"
const userNameHeader = "X-User-Name"

func getUserID(c *gin.Context) (int64, bool) {
	raw := strings.TrimSpace(c.GetHeader(userIDHeader))
	if raw == "" {
		response.BadRequest(c, "缺少用户标识")
		return 0, false
	}
	uid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || uid == 0 {
		response.BadRequest(c, "用户标识无效")
		return 0, false
	}
	return uid, true
}

func getUserName(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(userNameHeader))
}
