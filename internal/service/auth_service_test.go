package service

import (
	"context"
	"errors"
	"testing"

	"shoptrack/internal/model"
	"shoptrack/internal/repository"
)

func newAuthEnv(t *testing.T) (AuthService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	auth := NewAuthService(repository.NewUserRepository(env.db), repository.NewProfileRepository(env.db))
	return auth, env
}

func TestRegisterAndLogin(t *testing.T) {
	auth, env := newAuthEnv(t)
	ctx := context.Background()

	tokens, err := auth.Register(ctx, RegisterRequest{Email: "shop@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if tokens.Token == "" || tokens.RefreshToken == "" {
		t.Fatalf("missing tokens: %+v", tokens)
	}

	// Registration upserts the directory profile.
	var profiles int64
	if err := env.db.Model(&model.Profile{}).Count(&profiles).Error; err != nil {
		t.Fatalf("count profiles: %v", err)
	}
	if profiles != 1 {
		t.Fatalf("profiles: got %d, want 1", profiles)
	}

	if _, err := auth.Login(ctx, LoginRequest{Email: "shop@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := auth.Login(ctx, LoginRequest{Email: "shop@example.com", Password: "wrong"}); err == nil {
		t.Fatal("wrong password must fail")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	auth, _ := newAuthEnv(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, RegisterRequest{Email: "dup@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := auth.Register(ctx, RegisterRequest{Email: "dup@example.com", Password: "other456"})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRefreshTokenIsSingleUse(t *testing.T) {
	auth, _ := newAuthEnv(t)
	ctx := context.Background()

	tokens, err := auth.Register(ctx, RegisterRequest{Email: "rotate@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	rotated, err := auth.Refresh(ctx, RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.RefreshToken == tokens.RefreshToken {
		t.Fatal("refresh token must rotate")
	}

	if _, err := auth.Refresh(ctx, RefreshTokenRequest{RefreshToken: tokens.RefreshToken}); err == nil {
		t.Fatal("replayed refresh token must fail")
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	auth, _ := newAuthEnv(t)
	ctx := context.Background()

	tokens, err := auth.Register(ctx, RegisterRequest{Email: "bye@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := auth.Logout(ctx, tokens.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := auth.Refresh(ctx, RefreshTokenRequest{RefreshToken: tokens.RefreshToken}); err == nil {
		t.Fatal("revoked refresh token must fail")
	}
}
