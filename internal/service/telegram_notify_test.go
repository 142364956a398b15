package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skigrip-bot/internal/config"
)

func newTelegramTestService(t *testing.T, handler http.HandlerFunc) *TelegramNotifyService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewTelegramNotifyService(config.NotifyConfig{
		Enabled:     true,
		BotToken:    "test-token",
		AdminChatID: 777,
	})
	svc.apiBase = server.URL
	return svc
}

func TestSendMessagePlainTextPayload(t *testing.T) {
	var captured map[string]interface{}
	svc := newTelegramTestService(t, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read request body failed: %v", err)
		}
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Fatalf("unmarshal request body failed: %v", err)
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	text := "💬 价格 <650> & 免邮"
	if err := svc.SendToAdmin(context.Background(), text); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if got := captured["text"]; got != text {
		t.Fatalf("text want %q got %v", text, got)
	}
	if got := captured["chat_id"]; got != float64(777) {
		t.Fatalf("chat_id want 777 got %v", got)
	}
	// 纯文本发送，不携带 parse_mode
	if _, ok := captured["parse_mode"]; ok {
		t.Fatalf("payload should not carry parse_mode: %v", captured)
	}
}

func TestSendMessageRejectedByAPI(t *testing.T) {
	svc := newTelegramTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	})

	err := svc.SendToAdmin(context.Background(), "hello")
	if err == nil {
		t.Fatalf("expected error for ok=false response")
	}
}

func TestSendMessageDisabledIsNoop(t *testing.T) {
	svc := NewTelegramNotifyService(config.NotifyConfig{Enabled: false})
	if svc.Enabled() {
		t.Fatalf("service should be disabled without token and chat id")
	}
	if err := svc.SendToAdmin(context.Background(), "hello"); err != nil {
		t.Fatalf("disabled send should be a no-op, got %v", err)
	}
}
