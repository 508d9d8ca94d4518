package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"recipe-finder/internal/api/dto"
	"recipe-finder/internal/repository"
	"recipe-finder/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrAvatarUnavailable = errors.New("头像存储服务不可用")
	ErrInvalidAvatar     = errors.New("仅支持 jpg、png、webp 格式的头像")
	ErrAvatarTooLarge    = errors.New("头像文件不能超过 5MB")
)

// MaxAvatarSize 头像大小上限
const MaxAvatarSize = 5 << 20

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type UserService struct {
	userRepo     *repository.UserRepository
	favoriteRepo *repository.FavoriteRepository
	commentRepo  *repository.CommentRepository
	avatars      AvatarStorage
}

func NewUserService(userRepo *repository.UserRepository, favoriteRepo *repository.FavoriteRepository, commentRepo *repository.CommentRepository, avatars AvatarStorage) *UserService {
	return &UserService{
		userRepo:     userRepo,
		favoriteRepo: favoriteRepo,
		commentRepo:  commentRepo,
		avatars:      avatars,
	}
}

// GetProfile 个人资料，附带收藏数和评论数
func (s *UserService) GetProfile(ctx context.Context, userID string) (*dto.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	profile := &dto.UserProfile{UserInfo: *toUserInfo(user)}
	if n, err := s.favoriteRepo.CountByUser(ctx, userID); err == nil {
		profile.FavoriteCount = n
	} else {
		logger.Warn("Count user favorites failed", zap.String("user_id", userID), zap.Error(err))
	}
	if n, err := s.commentRepo.CountByUser(ctx, userID); err == nil {
		profile.CommentCount = n
	} else {
		logger.Warn("Count user comments failed", zap.String("user_id", userID), zap.Error(err))
	}
	return profile, nil
}

// UpdateProfile 更新本人资料
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *dto.UserUpdateRequest) (*dto.UserProfile, error) {
	updates := make(map[string]interface{})
	if req.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = strings.TrimSpace(*req.PhoneNumber)
	}

	if len(updates) == 0 {
		return s.GetProfile(ctx, userID)
	}

	if _, err := s.userRepo.Update(ctx, userID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// UploadAvatar 上传头像并更新用户头像地址
func (s *UserService) UploadAvatar(ctx context.Context, userID string, reader io.Reader, size int64, contentType string) (*dto.UserInfo, error) {
	if s.avatars == nil {
		return nil, ErrAvatarUnavailable
	}
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return nil, ErrInvalidAvatar
	}
	if size > MaxAvatarSize {
		return nil, ErrAvatarTooLarge
	}

	objectName := path.Join(userID, fmt.Sprintf("%s%s", uuid.NewString(), ext))
	avatarURL, err := s.avatars.UploadAvatar(ctx, objectName, reader, size, contentType)
	if err != nil {
		logger.Error("Upload avatar failed", zap.String("user_id", userID), zap.Error(err))
		return nil, ErrAvatarUnavailable
	}

	user, err := s.userRepo.Update(ctx, userID, map[string]interface{}{"avatar_url": avatarURL})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserInfo(user), nil
}
