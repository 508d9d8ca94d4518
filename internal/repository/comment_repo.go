package repository

import (
	"context"

	"recipe-finder/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// ListByMeal 获取菜谱的全部评论（最新在前）
func (r *CommentRepository) ListByMeal(ctx context.Context, mealID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Where("meal_id = ?", mealID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// ListByMealPaged 分页获取菜谱评论
func (r *CommentRepository) ListByMealPaged(ctx context.Context, mealID string, skip, limit int) ([]model.Comment, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Comment{}).Where("meal_id = ?", mealID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// RatingsByMeal 只取评分字段
func (r *CommentRepository) RatingsByMeal(ctx context.Context, mealID string) ([]int, error) {
	var ratings []int
	err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("meal_id = ?", mealID).
		Pluck("rating", &ratings).Error
	return ratings, err
}

// ListByUser 获取用户的评论列表
func (r *CommentRepository) ListByUser(ctx context.Context, userID string, skip, limit int) ([]model.Comment, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Comment{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *CommentRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
