package service

import (
	"context"
	"errors"
	"testing"

	"recipe-finder/internal/api/dto"
	"recipe-finder/internal/testutil"
	"recipe-finder/pkg/utils"
)

func registerRequest(email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		FullName:       "Ann Lee",
		Email:          email,
		PhoneNumber:    "0123",
		Password:       "secret123",
		VerifyPassword: "secret123",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	testutil.LoadConfig(t)
	ctx := context.Background()
	f := newFixture(t)
	s := NewAuthService(f.userRepo, &fakeRevoker{})

	user, err := s.Register(ctx, registerRequest(" Ann@Example.com "))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" || user.Email != "ann@example.com" || user.FullName != "Ann Lee" {
		t.Errorf("user = %+v", user)
	}

	stored, _ := f.userRepo.GetByID(ctx, user.ID)
	if stored.Password == "secret123" {
		t.Error("password stored in plaintext")
	}

	token, err := s.Login(ctx, &dto.LoginRequest{Email: "ann@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token.TokenType != "bearer" || token.ExpiresIn != 3600 || token.User.ID != user.ID {
		t.Errorf("token = %+v", token)
	}
	claims, err := utils.ParseToken(token.Token)
	if err != nil || claims.UserID != user.ID {
		t.Errorf("claims = %+v, %v", claims, err)
	}
}

func TestRegisterValidation(t *testing.T) {
	testutil.LoadConfig(t)
	ctx := context.Background()
	f := newFixture(t)
	s := NewAuthService(f.userRepo, nil)

	req := registerRequest("ann@example.com")
	req.VerifyPassword = "different"
	if _, err := s.Register(ctx, req); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("mismatch err = %v", err)
	}

	if _, err := s.Register(ctx, registerRequest("ann@example.com")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Register(ctx, registerRequest("ANN@example.com")); !errors.Is(err, ErrEmailExists) {
		t.Errorf("duplicate err = %v", err)
	}
}

func TestLoginInvalidCredential(t *testing.T) {
	testutil.LoadConfig(t)
	ctx := context.Background()
	f := newFixture(t)
	s := NewAuthService(f.userRepo, nil)
	s.Register(ctx, registerRequest("ann@example.com"))

	if _, err := s.Login(ctx, &dto.LoginRequest{Email: "ann@example.com", Password: "wrong-pass"}); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, err := s.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"}); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("unknown email err = %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	testutil.LoadConfig(t)
	ctx := context.Background()
	f := newFixture(t)
	revoker := &fakeRevoker{}
	s := NewAuthService(f.userRepo, revoker)

	_, claims, err := utils.GenerateToken("u1")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Logout(ctx, claims); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if ttl, ok := revoker.revoked[claims.ID]; !ok || ttl <= 0 {
		t.Errorf("revoked = %v", revoker.revoked)
	}

	revoker.err = errBoom
	if err := s.Logout(ctx, claims); !errors.Is(err, ErrTokenRevokeFailure) {
		t.Errorf("logout err = %v", err)
	}
}

func TestGetCurrentUser(t *testing.T) {
	testutil.LoadConfig(t)
	ctx := context.Background()
	f := newFixture(t)
	s := NewAuthService(f.userRepo, nil)
	user, _ := s.Register(ctx, registerRequest("ann@example.com"))

	got, err := s.GetCurrentUser(ctx, user.ID)
	if err != nil || got.Email != "ann@example.com" {
		t.Errorf("current = %+v, %v", got, err)
	}
	if _, err := s.GetCurrentUser(ctx, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("missing err = %v", err)
	}
}
