package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopnext/internal/config"
	"github.com/shopnext/internal/constants"
	"github.com/shopnext/internal/models"
	"github.com/shopnext/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.ExpireHours = 1
	cfg.Security.BcryptCost = bcrypt.MinCost
	return NewAuthService(cfg, repository.NewUserRepository(db)), db
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	user, token, expiresAt, err := svc.Register("Asha", " ASHA@Example.COM ", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "asha@example.com" {
		t.Fatalf("email should be normalized, got %q", user.Email)
	}
	if user.Role != constants.UserRoleUser || user.Status != constants.UserStatusActive {
		t.Fatalf("unexpected role/status: %s/%s", user.Role, user.Status)
	}
	if user.PasswordHash == "secret1" {
		t.Fatal("password must not be stored in plain text")
	}
	if token == "" || !expiresAt.After(time.Now()) {
		t.Fatalf("register should issue a live token, expires %v", expiresAt)
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email || claims.Role != constants.UserRoleUser {
		t.Fatalf("claims mismatch: %+v", claims)
	}

	logged, loginToken, _, err := svc.Login("asha@example.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != user.ID || loginToken == "" {
		t.Fatal("login should return the registered user with a token")
	}
	if logged.LastLoginAt == nil {
		t.Fatal("login should stamp last_login_at")
	}
}

func TestAuthRegisterValidation(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	if _, _, _, err := svc.Register("", "a@example.com", "secret1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank name want ErrInvalidInput got %v", err)
	}
	if _, _, _, err := svc.Register("Asha", "not-an-email", "secret1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad email want ErrInvalidInput got %v", err)
	}
	if _, _, _, err := svc.Register("Asha", "a@example.com", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("short password want ErrWeakPassword got %v", err)
	}

	if _, _, _, err := svc.Register("Asha", "a@example.com", "secret1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	// 邮箱归一化后判重
	if _, _, _, err := svc.Register("Ravi", "A@Example.com", "secret1"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate email want ErrEmailTaken got %v", err)
	}
}

func TestAuthPasswordPolicy(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	svc.cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{
		MinLength:     8,
		RequireUpper:  true,
		RequireNumber: true,
	}

	if _, _, _, err := svc.Register("Asha", "a@example.com", "lowercase1"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("missing upper want ErrWeakPassword got %v", err)
	}
	if _, _, _, err := svc.Register("Asha", "a@example.com", "Lowercase"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("missing number want ErrWeakPassword got %v", err)
	}
	if _, _, _, err := svc.Register("Asha", "a@example.com", "Passw0rd"); err != nil {
		t.Fatalf("conforming password rejected: %v", err)
	}
}

func TestAuthLoginFailures(t *testing.T) {
	svc, db := setupAuthServiceTest(t)

	user, _, _, err := svc.Register("Asha", "a@example.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, _, err := svc.Login("a@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("nobody@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email want ErrInvalidCredentials got %v", err)
	}

	if err := db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, _, _, err := svc.Login("a@example.com", "secret1"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("disabled user want ErrUserDisabled got %v", err)
	}
}

func TestAuthParseJWTRejectsForgery(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	_, token, _, err := svc.Register("Asha", "a@example.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	otherCfg := &config.Config{}
	otherCfg.JWT.SecretKey = "other-secret"
	otherCfg.Security.BcryptCost = bcrypt.MinCost
	other := NewAuthService(otherCfg, svc.userRepo)
	if _, err := other.ParseJWT(token); err == nil {
		t.Fatal("token signed with another secret should be rejected")
	}
	if _, err := svc.ParseJWT("not.a.token"); err == nil {
		t.Fatal("malformed token should be rejected")
	}
}

func TestAuthChangePassword(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	user, _, _, err := svc.Register("Asha", "a@example.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ChangePassword(user.ID, "wrong-old", "newsecret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong old password want ErrInvalidCredentials got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "secret1", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("weak new password want ErrWeakPassword got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "secret1", "newsecret1"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, _, _, err := svc.Login("a@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should stop working, got %v", err)
	}
	if _, _, _, err := svc.Login("a@example.com", "newsecret1"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestAuthUpdateProfile(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	user, _, _, err := svc.Register("Asha", "a@example.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	updated, err := svc.UpdateProfile(user.ID, ProfileInput{Phone: "9876543210"})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.Phone != "9876543210" {
		t.Fatalf("phone = %q want 9876543210", updated.Phone)
	}
	if updated.Name != "Asha" {
		t.Fatalf("untouched name changed: %q", updated.Name)
	}
	if _, err := svc.UpdateProfile(999, ProfileInput{Name: "Ghost"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing user want ErrNotFound got %v", err)
	}
}

func TestAuthSetUserStatus(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	user, _, _, err := svc.Register("Asha", "a@example.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.SetUserStatus(user.ID, "banned"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown status want ErrInvalidInput got %v", err)
	}
	if err := svc.SetUserStatus(user.ID, constants.UserStatusDisabled); err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	if _, _, _, err := svc.Login("a@example.com", "secret1"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("disabled user want ErrUserDisabled got %v", err)
	}
	if err := svc.SetUserStatus(999, constants.UserStatusActive); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing user want ErrNotFound got %v", err)
	}
}
