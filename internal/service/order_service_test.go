package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/skigrip-bot/internal/models"
	"github.com/skigrip-bot/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newOrderTestService(t *testing.T) (*OrderService, *CartService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:order_svc_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderSvc := NewOrderService(orderRepo, productRepo, cartRepo, nil)
	cartSvc := NewCartService(cartRepo, productRepo)
	return orderSvc, cartSvc, db
}

func TestCreateOrderEmptyCart(t *testing.T) {
	svc, _, _ := newOrderTestService(t)

	_, err := svc.CreateOrder(CreateOrderInput{UserID: 200500, Comment: "电话 +7 900"})
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got: %v", err)
	}
}

func TestCreateOrderRequiresComment(t *testing.T) {
	svc, cartSvc, db := newOrderTestService(t)
	product := createTestProduct(t, db, "绑板带 35cm", 10, 650)
	if _, err := cartSvc.AddItem(200501, product.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	_, err := svc.CreateOrder(CreateOrderInput{UserID: 200501, Comment: "   "})
	if !errors.Is(err, ErrCommentRequired) {
		t.Fatalf("expected ErrCommentRequired, got: %v", err)
	}
}

func TestCreateOrderSuccess(t *testing.T) {
	svc, cartSvc, db := newOrderTestService(t)
	a := createTestProduct(t, db, "绑板带 35cm", 10, 650)
	b := createTestProduct(t, db, "绑板带 50cm", 8, 650)
	userID := int64(200502)

	if _, err := cartSvc.AddItem(userID, a.ID, 2); err != nil {
		t.Fatalf("add a failed: %v", err)
	}
	if _, err := cartSvc.AddItem(userID, b.ID, 3); err != nil {
		t.Fatalf("add b failed: %v", err)
	}

	receipt, err := svc.CreateOrder(CreateOrderInput{
		UserID:   userID,
		UserName: "Ivan",
		Comment:  "地址：莫斯科，电话 +7 900 000-00-00",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if receipt.OrderID == 0 {
		t.Fatalf("expected persisted order id")
	}
	if receipt.TotalItems != 5 {
		t.Fatalf("expected 5 items, got %d", receipt.TotalItems)
	}
	// 整车 5 件触发 550 档
	if !receipt.UnitPrice.Decimal.Equal(decimal.NewFromInt(550)) {
		t.Fatalf("expected unit price 550, got %s", receipt.UnitPrice.String())
	}
	if !receipt.TotalAmount.Decimal.Equal(decimal.NewFromInt(2750)) {
		t.Fatalf("expected total 2750, got %s", receipt.TotalAmount.String())
	}
	if len(receipt.Lines) != 2 {
		t.Fatalf("expected 2 receipt lines, got %d", len(receipt.Lines))
	}

	// 库存已扣减
	var pa, pb models.Product
	if err := db.First(&pa, a.ID).Error; err != nil {
		t.Fatalf("load product a failed: %v", err)
	}
	if err := db.First(&pb, b.ID).Error; err != nil {
		t.Fatalf("load product b failed: %v", err)
	}
	if pa.Quantity != 8 || pb.Quantity != 5 {
		t.Fatalf("expected stock 8/5, got %d/%d", pa.Quantity, pb.Quantity)
	}

	// 购物车已清空
	items, err := cartSvc.ListByUser(userID)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart after order, got: %+v", items)
	}

	// 订单行落库且带阶梯单价
	order, err := svc.GetByID(receipt.OrderID)
	if err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}
	for _, item := range order.Items {
		if !item.UnitPrice.Decimal.Equal(decimal.NewFromInt(550)) {
			t.Fatalf("order item unit price mismatch: %+v", item)
		}
	}
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	svc, cartSvc, db := newOrderTestService(t)
	a := createTestProduct(t, db, "绑板带 35cm", 10, 650)
	b := createTestProduct(t, db, "绑板带 50cm", 10, 650)
	userID := int64(200503)

	if _, err := cartSvc.AddItem(userID, a.ID, 2); err != nil {
		t.Fatalf("add a failed: %v", err)
	}
	if _, err := cartSvc.AddItem(userID, b.ID, 3); err != nil {
		t.Fatalf("add b failed: %v", err)
	}

	// 加购之后库存被并发下单抢走
	if err := db.Model(&models.Product{}).Where("id = ?", b.ID).Update("quantity", 2).Error; err != nil {
		t.Fatalf("shrink stock failed: %v", err)
	}

	_, err := svc.CreateOrder(CreateOrderInput{UserID: userID, Comment: "电话 +7 900"})
	if !errors.Is(err, ErrStockInsufficient) {
		t.Fatalf("expected ErrStockInsufficient, got: %v", err)
	}
	var shortage *StockShortageError
	if !errors.As(err, &shortage) {
		t.Fatalf("expected StockShortageError, got: %v", err)
	}
	if shortage.ProductID != b.ID || shortage.Available != 2 || shortage.Requested != 3 {
		t.Fatalf("unexpected shortage details: %+v", shortage)
	}

	// 全部回滚：第一行的库存不能被扣掉
	var pa models.Product
	if err := db.First(&pa, a.ID).Error; err != nil {
		t.Fatalf("load product a failed: %v", err)
	}
	if pa.Quantity != 10 {
		t.Fatalf("expected stock 10 after rollback, got %d", pa.Quantity)
	}

	// 购物车保持原样
	items, err := cartSvc.ListByUser(userID)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected cart intact, got: %+v", items)
	}

	// 没有半成品订单
	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no orders, got %d", orderCount)
	}
}

func TestCreateOrderDefaultsUserName(t *testing.T) {
	svc, cartSvc, db := newOrderTestService(t)
	product := createTestProduct(t, db, "绑板带 35cm", 10, 650)
	userID := int64(200504)

	if _, err := cartSvc.AddItem(userID, product.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	receipt, err := svc.CreateOrder(CreateOrderInput{UserID: userID, Comment: "电话 +7 900"})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if receipt.UserName != fmt.Sprintf("用户 %d", userID) {
		t.Fatalf("unexpected fallback user name: %s", receipt.UserName)
	}
	// 单件走 650 档
	if !receipt.TotalAmount.Decimal.Equal(decimal.NewFromInt(650)) {
		t.Fatalf("expected total 650, got %s", receipt.TotalAmount.String())
	}
}

func TestListOrdersBuildsItemSummaries(t *testing.T) {
	svc, cartSvc, db := newOrderTestService(t)
	a := createTestProduct(t, db, "绑板带 35cm", 10, 650)
	b := createTestProduct(t, db, "绑板带 50cm", 10, 650)
	userID := int64(200505)

	if _, err := cartSvc.AddItem(userID, a.ID, 2); err != nil {
		t.Fatalf("add a failed: %v", err)
	}
	if _, err := cartSvc.AddItem(userID, b.ID, 1); err != nil {
		t.Fatalf("add b failed: %v", err)
	}
	if _, err := svc.CreateOrder(CreateOrderInput{UserID: userID, UserName: "Ivan", Comment: "电话 +7 900"}); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	summaries, err := svc.ListOrders(0)
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 order, got %d", len(summaries))
	}
	if summaries[0].ItemsText != "绑板带 35cm ×2，绑板带 50cm ×1" {
		t.Fatalf("unexpected items text: %s", summaries[0].ItemsText)
	}
}
