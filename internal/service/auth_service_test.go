package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/skigrip-bot/internal/config"
	"github.com/skigrip-bot/internal/models"
	"github.com/skigrip-bot/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newAuthTestService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:auth_svc_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "auth-test-secret-key-0123456789abcdef"
	cfg.JWT.ExpireHours = 24
	cfg.Admin.Username = "admin"

	return NewAuthService(cfg, repository.NewAdminRepository(db)), db
}

func createTestAdmin(t *testing.T, svc *AuthService, db *gorm.DB, username, password string) *models.Admin {
	t.Helper()
	hash, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	admin := models.Admin{Username: username, PasswordHash: hash}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return &admin
}

func TestLoginWrongPassword(t *testing.T) {
	svc, db := newAuthTestService(t)
	createTestAdmin(t, svc, db, "admin", "correct-password")

	_, _, _, err := svc.Login("admin", "wrong-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUsername(t *testing.T) {
	svc, db := newAuthTestService(t)
	createTestAdmin(t, svc, db, "admin", "correct-password")

	_, _, _, err := svc.Login("nobody", "correct-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginEmptyUsernameUsesConfiguredAdmin(t *testing.T) {
	svc, db := newAuthTestService(t)
	created := createTestAdmin(t, svc, db, "admin", "correct-password")

	admin, token, expiresAt, err := svc.Login("  ", "correct-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if admin.ID != created.ID || admin.Username != "admin" {
		t.Fatalf("expected configured admin, got %+v", admin)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("token should expire in the future, got %v", expiresAt)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	svc, db := newAuthTestService(t)
	admin := createTestAdmin(t, svc, db, "admin", "correct-password")

	token, _, err := svc.GenerateJWT(admin)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.AdminID != admin.ID {
		t.Fatalf("admin id want %d got %d", admin.ID, claims.AdminID)
	}
	if claims.Username != "admin" {
		t.Fatalf("username want admin got %s", claims.Username)
	}
}

func TestParseJWTRejectsForgedToken(t *testing.T) {
	svc, db := newAuthTestService(t)
	admin := createTestAdmin(t, svc, db, "admin", "correct-password")

	otherCfg := &config.Config{}
	otherCfg.JWT.SecretKey = "another-secret-key-totally-different"
	otherCfg.JWT.ExpireHours = 24
	other := NewAuthService(otherCfg, nil)

	forged, _, err := other.GenerateJWT(admin)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	if _, err := svc.ParseJWT(forged); err == nil {
		t.Fatalf("expected error for token signed with a different key")
	}
}
