package dto

import "time"

// CommentCreateRequest 发表评论请求，评分范围 0-5
type CommentCreateRequest struct {
	Text   string `json:"text" binding:"required,min=1,max=1000"`
	Rating *int   `json:"rating" binding:"required,min=0,max=5"`
}

// CommentInfo 评论信息
type CommentInfo struct {
	ID        string    `json:"id"`
	MealID    string    `json:"meal_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentListData 评论列表数据
type CommentListData struct {
	Comments   []CommentInfo `json:"comments"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int64         `json:"total_pages"`
}

// CommentCreatedData 发表评论后的结果
type CommentCreatedData struct {
	Comment       CommentInfo `json:"comment"`
	TotalComments int         `json:"total_comments"`
	AverageRating float64     `json:"average_rating"`
}

// RatingSummary 菜谱评分汇总
type RatingSummary struct {
	MealID        string  `json:"meal_id"`
	TotalComments int     `json:"total_comments"`
	AverageRating float64 `json:"average_rating"`
}
