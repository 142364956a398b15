package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestLimitDecision(t *testing.T) {
	rule := RateLimitRule{WindowSeconds: 60, MaxRequests: 5, BlockSeconds: 300}

	cases := []struct {
		name     string
		count    int64
		ttl      int64
		rejected bool
		wait     int
	}{
		{name: "under_limit", count: 3, ttl: 40, rejected: false},
		{name: "at_limit", count: 5, ttl: 40, rejected: false},
		{name: "over_limit", count: 6, ttl: 300, rejected: true, wait: 300},
		{name: "blocked", count: rateLimitBlocked, ttl: 120, rejected: true, wait: 120},
		{name: "blocked_no_ttl", count: rateLimitBlocked, ttl: 0, rejected: true, wait: 60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rejected, wait := limitDecision(tc.count, tc.ttl, rule)
			if rejected != tc.rejected {
				t.Fatalf("rejected want %v got %v", tc.rejected, rejected)
			}
			if rejected && wait != tc.wait {
				t.Fatalf("wait want %d got %d", tc.wait, wait)
			}
		})
	}
}

func TestLimitDecisionMinimumWait(t *testing.T) {
	// 窗口配置为 0 时仍给出至少 1 秒的等待提示
	rejected, wait := limitDecision(2, 0, RateLimitRule{WindowSeconds: 0, MaxRequests: 1})
	if !rejected {
		t.Fatalf("expected rejection over limit")
	}
	if wait != 1 {
		t.Fatalf("wait want 1 got %d", wait)
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.POST("/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("expected handler response body, got %s", w.Body.String())
	}
}
