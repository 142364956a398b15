package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/skigrip-bot/internal/config"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramNotifyService 通过 Bot API 发送管理员通知
type TelegramNotifyService struct {
	cfg        config.NotifyConfig
	httpClient *http.Client
	apiBase    string
}

// NewTelegramNotifyService 创建通知发送服务
func NewTelegramNotifyService(cfg config.NotifyConfig) *TelegramNotifyService {
	timeout := 5 * time.Second
	if cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	return &TelegramNotifyService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		apiBase:    telegramAPIBase,
	}
}

// Enabled 判断通知是否可用
func (s *TelegramNotifyService) Enabled() bool {
	return s != nil && s.cfg.Enabled && strings.TrimSpace(s.cfg.BotToken) != "" && s.cfg.AdminChatID != 0
}

// 通知文本不含任何标记，按纯文本发送。
// 指定 parse_mode 会让含 < 或 & 的用户输入触发实体解析错误导致整条消息被拒。
type telegramSendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

type telegramAPIResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage 调用 sendMessage 接口
func (s *TelegramNotifyService) SendMessage(ctx context.Context, chatID int64, text string) error {
	if !s.Enabled() {
		return nil
	}

	body, err := json.Marshal(telegramSendMessageRequest{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.cfg.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return err
	}
	var apiResp telegramAPIResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return fmt.Errorf("通知接口响应解析失败: status=%d", resp.StatusCode)
	}
	if !apiResp.OK {
		return fmt.Errorf("通知发送被拒绝: %s", apiResp.Description)
	}
	return nil
}

// SendToAdmin 向配置的管理员会话发送文本
func (s *TelegramNotifyService) SendToAdmin(ctx context.Context, text string) error {
	return s.SendMessage(ctx, s.cfg.AdminChatID, text)
}
