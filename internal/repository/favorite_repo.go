package repository

import (
	"context"

	"recipe-finder/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// MealFavoriteCount 菜谱收藏数统计
type MealFavoriteCount struct {
	MealID string
	Total  int64
}

// Create 插入收藏记录，(user_id, meal_id) 已存在时不写入，返回是否真正插入
func (r *FavoriteRepository) Create(ctx context.Context, fav *model.Favorite) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(fav)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByUserAndMeal 按用户和菜谱等值查询收藏记录
func (r *FavoriteRepository) FindByUserAndMeal(ctx context.Context, userID, mealID string) ([]model.Favorite, error) {
	var favorites []model.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND meal_id = ?", userID, mealID).
		Find(&favorites).Error
	return favorites, err
}

// DeleteByID 按记录 ID 删除
func (r *FavoriteRepository) DeleteByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Favorite{}).Error
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, mealID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ? AND meal_id = ?", userID, mealID).Count(&count).Error
	return count > 0, err
}

// ListByUser 获取用户的收藏列表
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string, skip, limit int) ([]model.Favorite, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Favorite{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var favorites []model.Favorite
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&favorites).Error
	if err != nil {
		return nil, 0, err
	}
	return favorites, total, nil
}

// CountByMeal 统计菜谱的收藏数
func (r *FavoriteRepository) CountByMeal(ctx context.Context, mealID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).Where("meal_id = ?", mealID).Count(&count).Error
	return count, err
}

// BatchCheckFavorited 批量查询收藏状态
func (r *FavoriteRepository) BatchCheckFavorited(ctx context.Context, userID string, mealIDs []string) (map[string]bool, error) {
	if len(mealIDs) == 0 {
		return map[string]bool{}, nil
	}

	var favMealIDs []string
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ? AND meal_id IN ?", userID, mealIDs).
		Pluck("meal_id", &favMealIDs).Error
	if err != nil {
		return nil, err
	}

	favSet := make(map[string]bool, len(favMealIDs))
	for _, id := range favMealIDs {
		favSet[id] = true
	}

	result := make(map[string]bool, len(mealIDs))
	for _, id := range mealIDs {
		result[id] = favSet[id]
	}
	return result, nil
}

// GetFavoritedMealIDs 获取用户收藏的菜谱 ID 列表
func (r *FavoriteRepository) GetFavoritedMealIDs(ctx context.Context, userID string, skip, limit int) ([]string, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Favorite{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []string
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Pluck("meal_id", &ids).Error
	return ids, total, err
}

// TopMeals 收藏数最多的菜谱
func (r *FavoriteRepository) TopMeals(ctx context.Context, skip, limit int) ([]MealFavoriteCount, error) {
	var rows []MealFavoriteCount
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Select("meal_id, COUNT(*) AS total").
		Group("meal_id").
		Order("total DESC, meal_id ASC").
		Offset(skip).Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// CountByUser 统计用户的收藏数
func (r *FavoriteRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountFavoritedMeals 被收藏过的菜谱数
func (r *FavoriteRepository) CountFavoritedMeals(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).Distinct("meal_id").Count(&count).Error
	return count, err
}
