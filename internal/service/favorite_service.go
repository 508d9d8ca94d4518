package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipe-finder/internal/api/dto"
	infraKafka "recipe-finder/internal/infra/kafka"
	"recipe-finder/internal/model"
	"recipe-finder/internal/repository"
	"recipe-finder/pkg/async"
	"recipe-finder/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	ErrInvalidFavoriteKey = errors.New("用户ID和菜谱ID不能为空")
)

// favoriteWriteTimeout 合并后的切换不随单个调用方取消
const favoriteWriteTimeout = 10 * time.Second

// FavoriteOutcome 一次收藏切换的确认结果
// Confirmed 为 true 时 State 是新的确认状态；否则 State 是调用方应回退到的状态
type FavoriteOutcome struct {
	UserID    string
	MealID    string
	Desired   bool
	Confirmed bool
	Changed   bool
	State     FavoriteState
	Message   string
	Err       error
}

type FavoriteService struct {
	favoriteRepo *repository.FavoriteRepository
	events       *eventQueue
	states       *favoriteStateTable
	inflight     singleflight.Group
}

func NewFavoriteService(favoriteRepo *repository.FavoriteRepository, publisher EventPublisher) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		events:       newEventQueue(publisher),
		states:       newFavoriteStateTable(),
	}
}

// IsFavorite 查询收藏状态，任一 ID 为空直接返回 false
func (s *FavoriteService) IsFavorite(ctx context.Context, userID, mealID string) (bool, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(mealID) == "" {
		return false, nil
	}
	return s.favoriteRepo.Exists(ctx, userID, mealID)
}

// Status 返回状态机视角的收藏状态，进行中的切换优先
func (s *FavoriteService) Status(ctx context.Context, userID, mealID string) (FavoriteState, error) {
	if state, ok := s.states.pending(favoriteKey{userID: userID, mealID: mealID}); ok {
		return state, nil
	}
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(mealID) == "" {
		return StateUnknown, nil
	}
	isFav, err := s.favoriteRepo.Exists(ctx, userID, mealID)
	if err != nil {
		return StateUnknown, err
	}
	return confirmedState(isFav), nil
}

// SetFavorite 设置收藏状态
// desired=true 时先检查重复再插入；desired=false 时删除所有匹配记录。
// 同一 (user, meal, desired) 的并发请求只执行一次写入。
func (s *FavoriteService) SetFavorite(ctx context.Context, userID, mealID string, desired bool) FavoriteOutcome {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(mealID) == "" {
		return FavoriteOutcome{
			UserID:  userID,
			MealID:  mealID,
			Desired: desired,
			State:   StateUnknown,
			Message: ErrInvalidFavoriteKey.Error(),
			Err:     ErrInvalidFavoriteKey,
		}
	}

	flightKey := fmt.Sprintf("%s|%s|%t", userID, mealID, desired)
	v, _, _ := s.inflight.Do(flightKey, func() (interface{}, error) {
		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), favoriteWriteTimeout)
		defer cancel()
		return s.toggle(wctx, userID, mealID, desired), nil
	})
	return v.(FavoriteOutcome)
}

// SetFavoriteAsync SetFavorite 的异步版本
func (s *FavoriteService) SetFavoriteAsync(ctx context.Context, userID, mealID string, desired bool) *async.Future[FavoriteOutcome] {
	return async.Go(ctx, func(ctx context.Context) (FavoriteOutcome, error) {
		out := s.SetFavorite(ctx, userID, mealID, desired)
		return out, out.Err
	})
}

func (s *FavoriteService) toggle(ctx context.Context, userID, mealID string, desired bool) FavoriteOutcome {
	key := favoriteKey{userID: userID, mealID: mealID}
	entry := s.states.begin(key, desired)

	var (
		changed bool
		err     error
	)
	if desired {
		changed, err = s.addFavorite(ctx, entry, userID, mealID)
	} else {
		changed, err = s.removeFavorite(ctx, entry, userID, mealID)
	}

	state := s.states.finish(key, entry, desired, err == nil)
	out := FavoriteOutcome{
		UserID:    userID,
		MealID:    mealID,
		Desired:   desired,
		Confirmed: err == nil,
		Changed:   changed,
		State:     state,
		Err:       err,
	}

	if err != nil {
		if desired {
			out.Message = "添加收藏失败: " + err.Error()
		} else {
			out.Message = "取消收藏失败: " + err.Error()
		}
		logger.Warn("Favorite toggle rejected",
			zap.String("user_id", userID),
			zap.String("meal_id", mealID),
			zap.Bool("desired", desired),
			zap.String("revert_to", state.String()),
			zap.Error(err),
		)
		return out
	}

	if changed {
		eventType := infraKafka.EventFavoriteRemoved
		if desired {
			eventType = infraKafka.EventFavoriteAdded
		}
		s.events.enqueue(&infraKafka.RecipeEvent{
			Type:       eventType,
			MealID:     mealID,
			UserID:     userID,
			OccurredAt: time.Now(),
		})
	}
	return out
}

func (s *FavoriteService) addFavorite(ctx context.Context, entry *favoriteEntry, userID, mealID string) (bool, error) {
	exists, err := s.favoriteRepo.Exists(ctx, userID, mealID)
	if err != nil {
		return false, err
	}
	s.states.observe(entry, exists)
	if exists {
		return false, nil
	}

	return s.favoriteRepo.Create(ctx, &model.Favorite{
		ID:     uuid.NewString(),
		UserID: userID,
		MealID: mealID,
	})
}

func (s *FavoriteService) removeFavorite(ctx context.Context, entry *favoriteEntry, userID, mealID string) (bool, error) {
	favorites, err := s.favoriteRepo.FindByUserAndMeal(ctx, userID, mealID)
	if err != nil {
		return false, err
	}
	s.states.observe(entry, len(favorites) > 0)

	for _, fav := range favorites {
		if err := s.favoriteRepo.DeleteByID(ctx, fav.ID); err != nil {
			return false, err
		}
	}
	return len(favorites) > 0, nil
}

// ListByUser 获取用户收藏记录列表
func (s *FavoriteService) ListByUser(ctx context.Context, userID string, page, pageSize int) (*dto.FavoriteListData, error) {
	skip := (page - 1) * pageSize
	favorites, total, err := s.favoriteRepo.ListByUser(ctx, userID, skip, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]dto.FavoriteInfo, 0, len(favorites))
	for i := range favorites {
		items = append(items, toFavoriteInfo(&favorites[i]))
	}

	return &dto.FavoriteListData{
		Favorites:  items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// BatchCheckStatus 批量查询收藏状态
func (s *FavoriteService) BatchCheckStatus(ctx context.Context, userID string, mealIDs []string) (map[string]bool, error) {
	if strings.TrimSpace(userID) == "" {
		result := make(map[string]bool, len(mealIDs))
		for _, id := range mealIDs {
			result[id] = false
		}
		return result, nil
	}
	return s.favoriteRepo.BatchCheckFavorited(ctx, userID, mealIDs)
}

// FavoritedMealIDs 获取用户收藏的菜谱 ID（最新在前）
func (s *FavoriteService) FavoritedMealIDs(ctx context.Context, userID string, page, pageSize int) ([]string, int64, error) {
	skip := (page - 1) * pageSize
	return s.favoriteRepo.GetFavoritedMealIDs(ctx, userID, skip, pageSize)
}

// CountByMeal 统计菜谱收藏数
func (s *FavoriteService) CountByMeal(ctx context.Context, mealID string) (int64, error) {
	return s.favoriteRepo.CountByMeal(ctx, mealID)
}

func toFavoriteInfo(f *model.Favorite) dto.FavoriteInfo {
	return dto.FavoriteInfo{
		ID:        f.ID,
		UserID:    f.UserID,
		MealID:    f.MealID,
		CreatedAt: f.CreatedAt,
	}
}

func totalPages(total int64, pageSize int) int64 {
	if pageSize <= 0 {
		return 0
	}
	return (total + int64(pageSize) - 1) / int64(pageSize)
}
