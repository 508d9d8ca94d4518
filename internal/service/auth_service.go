package service

import (
	"context"
	"errors"
	"strings"

	"recipe-finder/internal/api/dto"
	"recipe-finder/internal/config"
	"recipe-finder/internal/model"
	"recipe-finder/internal/repository"
	"recipe-finder/pkg/logger"
	"recipe-finder/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailExists        = errors.New("该邮箱已注册")
	ErrPasswordMismatch   = errors.New("两次输入的密码不一致")
	ErrInvalidCredential  = errors.New("邮箱或密码错误")
	ErrTokenRevokeFailure = errors.New("退出登录失败，请稍后重试")
)

type AuthService struct {
	userRepo *repository.UserRepository
	revoker  TokenRevoker
}

func NewAuthService(userRepo *repository.UserRepository, revoker TokenRevoker) *AuthService {
	return &AuthService{userRepo: userRepo, revoker: revoker}
}

// Register 用户注册
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserInfo, error) {
	if req.Password != req.VerifyPassword {
		return nil, ErrPasswordMismatch
	}

	email := normalizeEmail(req.Email)
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:          uuid.NewString(),
		FullName:    strings.TrimSpace(req.FullName),
		Email:       email,
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Password:    hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User registered", zap.String("user_id", user.ID))
	return toUserInfo(user), nil
}

// Login 邮箱登录，返回 token 数据
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenData, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredential
	}

	token, _, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	expireSeconds := int(config.GetJWT().ExpireDuration().Seconds())

	return &dto.TokenData{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: expireSeconds,
		User:      *toUserInfo(user),
	}, nil
}

// Logout 拉黑当前令牌直到其过期
func (s *AuthService) Logout(ctx context.Context, claims *utils.Claims) error {
	if s.revoker == nil || claims == nil {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		logger.Error("Revoke token failed", zap.String("user_id", claims.UserID), zap.Error(err))
		return ErrTokenRevokeFailure
	}
	return nil
}

// GetCurrentUser 根据用户 ID 获取用户信息
func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:          user.ID,
		FullName:    user.FullName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		AvatarURL:   user.AvatarURL,
	}
}
