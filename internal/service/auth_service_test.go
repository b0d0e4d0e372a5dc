package service

import (
	"errors"
	"testing"
	"time"

	"millionaire_backend/internal/config"
	"millionaire_backend/internal/model"
	"millionaire_backend/internal/util"

	"gorm.io/gorm"
)

func newTestAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	s := newTestService(t)
	cfg := testConfig()
	cfg.JWT = config.JWTConfig{Secret: "test-secret-test-secret-test-secret", ExpireTime: time.Hour}
	return NewAuthService(s.UserRepo, cfg), s.DB
}

func TestRegisterAndLogin(t *testing.T) {
	as, _ := newTestAuthService(t)

	user := &model.User{Name: "player", Email: "player@example.com", Password: "pa55word"}
	if err := as.Register(user); err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Password == "pa55word" {
		t.Fatal("password stored in clear text")
	}
	if user.Role != model.Player {
		t.Fatalf("role = %q, want default %q", user.Role, model.Player)
	}

	token, err := as.Login("player@example.com", "pa55word")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := util.ParseJWT(token, as.Cfg.JWT.Secret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("token user = %d, want %d", claims.UserID, user.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	as, _ := newTestAuthService(t)

	if err := as.Register(&model.User{Name: "a", Email: "dup@example.com", Password: "x1y2z3"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := as.Register(&model.User{Name: "b", Email: "dup@example.com", Password: "x1y2z3"})
	if !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("expected ErrEmailRegistered, got %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	as, _ := newTestAuthService(t)

	if err := as.Register(&model.User{Name: "player", Email: "player@example.com", Password: "pa55word"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := as.Login("player@example.com", "wrong"); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("wrong password: expected ErrUserNotFound, got %v", err)
	}
	if _, err := as.Login("nobody@example.com", "pa55word"); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("unknown email: expected ErrUserNotFound, got %v", err)
	}
}

func TestLoginSurvivesLastLoginWriteFailure(t *testing.T) {
	as, db := newTestAuthService(t)

	user := &model.User{Name: "player", Email: "player@example.com", Password: "pa55word"}
	if err := as.Register(user); err != nil {
		t.Fatalf("register: %v", err)
	}

	// 冻结users表的更新,模拟登录时间写入失败
	freeze := `CREATE TRIGGER users_frozen BEFORE UPDATE ON users
		BEGIN SELECT RAISE(ABORT, 'users table frozen'); END`
	if err := db.Exec(freeze).Error; err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	token, err := as.Login("player@example.com", "pa55word")
	if err != nil {
		t.Fatalf("login must tolerate a failed last-login write, got %v", err)
	}
	if token == "" {
		t.Fatal("no token issued")
	}
}
