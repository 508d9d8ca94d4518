package model

import "time"

// 评分取值范围
const (
	MinRating = 0
	MaxRating = 5
)

// Comment 菜谱评论，只追加不修改
type Comment struct {
	ID        string    `gorm:"primaryKey;size:36;comment:评论ID" json:"id"`
	MealID    string    `gorm:"size:32;not null;index:idx_comments_meal_id;index:idx_composite_meal_created,priority:1;comment:被评论菜谱ID" json:"meal_id"`
	UserID    string    `gorm:"size:64;not null;index:idx_comments_user_id;comment:评论用户ID" json:"user_id"`
	UserName  string    `gorm:"size:255;comment:评论用户名" json:"user_name"`
	Text      string    `gorm:"type:text;not null;comment:评论内容" json:"text"`
	Rating    int       `gorm:"not null;default:0;comment:评分" json:"rating"`
	CreatedAt time.Time `gorm:"index:idx_composite_meal_created,priority:2;comment:评论时间" json:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}
