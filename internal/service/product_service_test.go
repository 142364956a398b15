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

func newProductTestService(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:product_svc_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", time.Now().UnixNano())
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
	return NewProductService(repository.NewProductRepository(db)), db
}

func TestCreateProductValidatesInput(t *testing.T) {
	svc, _ := newProductTestService(t)

	if _, err := svc.Create(CreateProductInput{Name: "   "}); !errors.Is(err, ErrProductNameRequired) {
		t.Fatalf("expected ErrProductNameRequired, got: %v", err)
	}

	product, err := svc.Create(CreateProductInput{
		Name:     "  绑板带 35cm  ",
		Quantity: -5,
		Price:    models.NewMoneyFromInt(-100),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.Name != "绑板带 35cm" {
		t.Fatalf("expected trimmed name, got %q", product.Name)
	}
	if product.Quantity != 0 {
		t.Fatalf("expected quantity clamped to 0, got %d", product.Quantity)
	}
	if !product.Price.Decimal.Equal(decimal.Zero) {
		t.Fatalf("expected price clamped to 0, got %s", product.Price.String())
	}
}

func TestUpdateOperationsReportNotFound(t *testing.T) {
	svc, _ := newProductTestService(t)

	if err := svc.UpdateQuantity(9999, 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if err := svc.UpdatePrice(9999, models.NewMoneyFromInt(700)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if err := svc.UpdatePhoto(9999, "photo"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestUpdateQuantityClampsNegative(t *testing.T) {
	svc, db := newProductTestService(t)
	product := createTestProduct(t, db, "绑板带 35cm", 10, 650)

	if err := svc.UpdateQuantity(product.ID, -3); err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	loaded := svc.Get(product.ID)
	if loaded == nil || loaded.Quantity != 0 {
		t.Fatalf("expected quantity 0, got: %+v", loaded)
	}
}

func TestDeleteProductReferencedByOrder(t *testing.T) {
	svc, db := newProductTestService(t)
	product := createTestProduct(t, db, "绑板带 35cm", 10, 650)

	order := models.Order{
		UserID:      300500,
		UserName:    "Ivan",
		TotalAmount: models.NewMoneyFromInt(650),
		Comment:     "电话 +7 900",
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	item := models.OrderItem{
		OrderID:    order.ID,
		ProductID:  product.ID,
		Quantity:   1,
		UnitPrice:  models.NewMoneyFromInt(650),
		TotalPrice: models.NewMoneyFromInt(650),
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create order item failed: %v", err)
	}

	if err := svc.Delete(product.ID); !errors.Is(err, ErrProductInUse) {
		t.Fatalf("expected ErrProductInUse, got: %v", err)
	}

	// 商品仍然存在
	if svc.Get(product.ID) == nil {
		t.Fatalf("product disappeared after rejected delete")
	}
}

func TestDeleteProductCascadesCartRows(t *testing.T) {
	svc, db := newProductTestService(t)
	product := createTestProduct(t, db, "绑板带 35cm", 10, 650)

	cartItem := models.CartItem{
		UserID:    300501,
		ProductID: product.ID,
		Quantity:  2,
	}
	if err := db.Create(&cartItem).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}

	if err := svc.Delete(product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("product_id = ?", product.ID).Count(&count).Error; err != nil {
		t.Fatalf("count cart rows failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected cart rows cascaded, got %d", count)
	}
}

func TestDeleteMissingProduct(t *testing.T) {
	svc, _ := newProductTestService(t)

	if err := svc.Delete(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}
