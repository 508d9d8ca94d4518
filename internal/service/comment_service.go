package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"recipe-finder/internal/api/dto"
	infraKafka "recipe-finder/internal/infra/kafka"
	"recipe-finder/internal/model"
	"recipe-finder/internal/repository"
	"recipe-finder/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidComment = errors.New("评论内容不能为空")
)

// CommentThread 某个菜谱的评论列表（最新在前），提交成功的评论直接追加到头部
type CommentThread struct {
	MealID string

	mu       sync.RWMutex
	comments []model.Comment
}

func NewCommentThread(mealID string, comments []model.Comment) *CommentThread {
	return &CommentThread{MealID: mealID, comments: comments}
}

// Comments 返回评论副本
func (t *CommentThread) Comments() []model.Comment {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]model.Comment, len(t.comments))
	copy(out, t.comments)
	return out
}

// Len 评论数
func (t *CommentThread) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.comments)
}

// Average 平均评分，无评论时为 0
func (t *CommentThread) Average() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ratings := make([]int, 0, len(t.comments))
	for i := range t.comments {
		ratings = append(ratings, t.comments[i].Rating)
	}
	return averageRating(ratings)
}

func (t *CommentThread) prepend(c model.Comment) {
	t.mu.Lock()
	t.comments = append([]model.Comment{c}, t.comments...)
	t.mu.Unlock()
}

type CommentService struct {
	commentRepo *repository.CommentRepository
	events      *eventQueue
}

func NewCommentService(commentRepo *repository.CommentRepository, publisher EventPublisher) *CommentService {
	return &CommentService{commentRepo: commentRepo, events: newEventQueue(publisher)}
}

// AverageRating 实时计算菜谱平均评分；读取失败按 0 处理
func (s *CommentService) AverageRating(ctx context.Context, mealID string) float64 {
	ratings, err := s.commentRepo.RatingsByMeal(ctx, mealID)
	if err != nil {
		logger.Warn("Load ratings failed", zap.String("meal_id", mealID), zap.Error(err))
		return 0
	}
	return averageRating(ratings)
}

// LoadThread 加载评论列表；读取失败返回空列表
func (s *CommentService) LoadThread(ctx context.Context, mealID string) *CommentThread {
	comments, err := s.commentRepo.ListByMeal(ctx, mealID)
	if err != nil {
		logger.Warn("Load comments failed", zap.String("meal_id", mealID), zap.Error(err))
		return NewCommentThread(mealID, nil)
	}
	return NewCommentThread(mealID, comments)
}

// SubmitComment 发表评论，写入成功后追加到 thread
// rating 的 0-5 范围由请求校验保证
func (s *CommentService) SubmitComment(ctx context.Context, thread *CommentThread, userID, userName, text string, rating int) (*model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidComment
	}

	comment := model.Comment{
		ID:        uuid.NewString(),
		MealID:    thread.MealID,
		UserID:    userID,
		UserName:  userName,
		Text:      text,
		Rating:    rating,
		CreatedAt: time.Now(),
	}

	if err := s.commentRepo.Create(ctx, &comment); err != nil {
		logger.Warn("Submit comment failed",
			zap.String("meal_id", thread.MealID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}

	thread.prepend(comment)

	r := rating
	s.events.enqueue(&infraKafka.RecipeEvent{
		Type:       infraKafka.EventCommentCreated,
		MealID:     thread.MealID,
		UserID:     userID,
		Rating:     &r,
		OccurredAt: comment.CreatedAt,
	})

	return &comment, nil
}

// Summary 评分汇总
func (s *CommentService) Summary(ctx context.Context, mealID string) *dto.RatingSummary {
	thread := s.LoadThread(ctx, mealID)
	return &dto.RatingSummary{
		MealID:        mealID,
		TotalComments: thread.Len(),
		AverageRating: thread.Average(),
	}
}

// ListByMeal 分页获取菜谱评论
func (s *CommentService) ListByMeal(ctx context.Context, mealID string, page, pageSize int) (*dto.CommentListData, error) {
	skip := (page - 1) * pageSize
	comments, total, err := s.commentRepo.ListByMealPaged(ctx, mealID, skip, pageSize)
	if err != nil {
		return nil, err
	}
	return buildCommentList(comments, total, page, pageSize), nil
}

// ListByUser 分页获取用户发表的评论
func (s *CommentService) ListByUser(ctx context.Context, userID string, page, pageSize int) (*dto.CommentListData, error) {
	skip := (page - 1) * pageSize
	comments, total, err := s.commentRepo.ListByUser(ctx, userID, skip, pageSize)
	if err != nil {
		return nil, err
	}
	return buildCommentList(comments, total, page, pageSize), nil
}

func buildCommentList(comments []model.Comment, total int64, page, pageSize int) *dto.CommentListData {
	return &dto.CommentListData{
		Comments:   ToCommentInfos(comments),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}
}

// ToCommentInfos 转换评论列表
func ToCommentInfos(comments []model.Comment) []dto.CommentInfo {
	items := make([]dto.CommentInfo, 0, len(comments))
	for i := range comments {
		items = append(items, ToCommentInfo(&comments[i]))
	}
	return items
}

func ToCommentInfo(c *model.Comment) dto.CommentInfo {
	return dto.CommentInfo{
		ID:        c.ID,
		MealID:    c.MealID,
		UserID:    c.UserID,
		UserName:  c.UserName,
		Text:      c.Text,
		Rating:    c.Rating,
		CreatedAt: c.CreatedAt,
	}
}

func averageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}
