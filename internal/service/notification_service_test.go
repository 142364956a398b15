package service

import (
	"strings"
	"testing"
	"time"

	"github.com/skigrip-bot/internal/models"
)

func TestFormatAmount(t *testing.T) {
	cases := map[int64]string{
		0:       "0",
		650:     "650",
		2750:    "2 750",
		1000000: "1 000 000",
		-2750:   "-2 750",
	}
	for amount, want := range cases {
		got := formatAmount(models.NewMoneyFromInt(amount))
		if got != want {
			t.Fatalf("formatAmount(%d) = %q, want %q", amount, got, want)
		}
	}
}

func TestComposeOrderMessage(t *testing.T) {
	order := &models.Order{
		ID:          42,
		UserID:      100500,
		UserName:    "Ivan",
		TotalAmount: models.NewMoneyFromInt(2750),
		Comment:     "地址：莫斯科",
		CreatedAt:   time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{
				ProductID:  1,
				Quantity:   2,
				UnitPrice:  models.NewMoneyFromInt(550),
				TotalPrice: models.NewMoneyFromInt(1100),
				Product:    &models.Product{ID: 1, Name: "绑板带 35cm"},
			},
			{
				ProductID:  2,
				Quantity:   3,
				UnitPrice:  models.NewMoneyFromInt(550),
				TotalPrice: models.NewMoneyFromInt(1650),
			},
		},
	}

	msg := ComposeOrderMessage(order)
	for _, want := range []string{
		"新订单 #42",
		"Ivan（ID 100500）",
		"绑板带 35cm ×2 = 1 100 ₽",
		"商品 2 ×3 = 1 650 ₽", // 商品被删时退回 ID 展示
		"地址：莫斯科",
		"合计：2 750 ₽",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestComposeOrderMessageKeepsMarkupCharacters(t *testing.T) {
	order := &models.Order{
		ID:          7,
		UserID:      42,
		UserName:    "A & B <shop>",
		TotalAmount: models.NewMoneyFromInt(650),
		Comment:     "价格 <650> & 免邮",
		CreatedAt:   time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{
				ProductID:  1,
				Quantity:   1,
				UnitPrice:  models.NewMoneyFromInt(650),
				TotalPrice: models.NewMoneyFromInt(650),
				Product:    &models.Product{ID: 1, Name: "绑板带 <新款>"},
			},
		},
	}

	// 用户输入原样进入纯文本消息，不做任何转义
	msg := ComposeOrderMessage(order)
	for _, want := range []string{
		"A & B <shop>",
		"价格 <650> & 免邮",
		"绑板带 <新款> ×1",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}
