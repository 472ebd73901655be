package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"lavtracker/backend/config"
	"lavtracker/backend/internal/dto"
	"lavtracker/backend/internal/model"
	"lavtracker/backend/pkg/jwt"
)

type mockBlacklist struct {
	revoked map[string]time.Duration
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.revoked[jti] = ttl
	return nil
}

func setupTestAuthService(t *testing.T) (AuthService, *mockStore, *jwt.Manager, *mockBlacklist) {
	t.Helper()
	repo, st := newMockRepository()
	jwtMgr := jwt.NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-0123456789",
		AccessTokenTTL: time.Hour,
	})
	bl := &mockBlacklist{revoked: make(map[string]time.Duration)}
	return NewAuthService(repo, jwtMgr, bl, zap.NewNop()), st, jwtMgr, bl
}

func seedLoginUser(t *testing.T, st *mockStore, email, password string, admin, active bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	u := &model.User{Username: "Ana", Email: email, IsAdmin: admin, Active: active, PasswordHash: string(hash)}
	_ = st.user.Create(context.Background(), u)
	return u
}

func TestLogin_Success(t *testing.T) {
	svc, st, jwtMgr, _ := setupTestAuthService(t)
	u := seedLoginUser(t, st, "ana@example.com", "password123", true, true)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ana@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("期望登录成功，实际: %v", err)
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("期望 ExpiresIn=3600，实际 %d", resp.ExpiresIn)
	}

	claims, err := jwtMgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("签发的 Token 应可解析: %v", err)
	}
	if claims.UserID != u.UserID || claims.Role != jwt.RoleAdmin {
		t.Errorf("Claims 不符: uid=%d role=%s", claims.UserID, claims.Role)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, st, _, _ := setupTestAuthService(t)
	seedLoginUser(t, st, "ana@example.com", "password123", false, true)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ana@example.com", Password: "nope"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _, _ := setupTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ghost@example.com", Password: "x"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_NoPasswordSet(t *testing.T) {
	svc, st, _, _ := setupTestAuthService(t)
	_ = st.user.Create(context.Background(), &model.User{Username: "Bo", Email: "bo@example.com", Active: true})

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "bo@example.com", Password: ""})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("未设置密码的用户应无法登录，实际: %v", err)
	}
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, st, _, _ := setupTestAuthService(t)
	seedLoginUser(t, st, "ana@example.com", "password123", false, false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ana@example.com", Password: "password123"})
	if !errors.Is(err, ErrUserInactive) {
		t.Errorf("期望 ErrUserInactive，实际: %v", err)
	}
}

func TestLogout_BlacklistsToken(t *testing.T) {
	svc, st, jwtMgr, bl := setupTestAuthService(t)
	u := seedLoginUser(t, st, "ana@example.com", "password123", false, true)

	token, _ := jwtMgr.GenerateAccessToken(u.UserID, jwt.RoleStaff)
	claims, _ := jwtMgr.ParseToken(token)

	if err := svc.Logout(context.Background(), claims); err != nil {
		t.Fatalf("登出失败: %v", err)
	}
	ttl, ok := bl.revoked[claims.ID]
	if !ok {
		t.Fatal("Token 应被加入黑名单")
	}
	if ttl <= 0 || ttl > time.Hour {
		t.Errorf("黑名单 TTL 应为剩余有效期，实际 %s", ttl)
	}
}

func TestLogout_NoBlacklist(t *testing.T) {
	repo, _ := newMockRepository()
	svc := NewAuthService(repo, nil, nil, zap.NewNop())
	if err := svc.Logout(context.Background(), &jwt.Claims{}); err != nil {
		t.Errorf("无 Redis 时登出应直接成功，实际: %v", err)
	}
}

func TestMe_NotFound(t *testing.T) {
	svc, _, _, _ := setupTestAuthService(t)
	if _, err := svc.Me(context.Background(), 99); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}
