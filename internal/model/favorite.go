package model

import "time"

// Favorite 用户收藏菜谱记录，存在即表示已收藏
type Favorite struct {
	ID        string    `gorm:"primaryKey;size:36;comment:收藏记录ID" json:"id"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex:uq_user_meal_favorite;index:idx_favorites_user_id;comment:收藏用户ID" json:"user_id"`
	MealID    string    `gorm:"size:32;not null;uniqueIndex:uq_user_meal_favorite;index:idx_favorites_meal_id;comment:被收藏菜谱ID" json:"meal_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_favorites_created_at;comment:收藏时间" json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}
