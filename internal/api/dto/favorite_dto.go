package dto

import "time"

// FavoriteInfo 收藏记录信息
type FavoriteInfo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	MealID    string    `json:"meal_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteListData 收藏列表数据
type FavoriteListData struct {
	Favorites  []FavoriteInfo `json:"favorites"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int64          `json:"total_pages"`
}

// FavoriteToggleRequest 设置收藏状态请求
type FavoriteToggleRequest struct {
	Favorite *bool `json:"favorite" binding:"required"`
}

// FavoriteToggleData 收藏切换结果；confirmed=false 时 state 为客户端应回退到的状态
type FavoriteToggleData struct {
	UserID         string `json:"user_id"`
	MealID         string `json:"meal_id"`
	Desired        bool   `json:"desired"`
	Confirmed      bool   `json:"confirmed"`
	Changed        bool   `json:"changed"`
	State          string `json:"state"`
	IsFavorite     bool   `json:"is_favorite"`
	TotalFavorites int64  `json:"total_favorites"`
	Message        string `json:"message,omitempty"`
}

// FavoriteStatusData 收藏状态
type FavoriteStatusData struct {
	MealID         string `json:"meal_id"`
	IsFavorite     bool   `json:"is_favorite"`
	State          string `json:"state"`
	TotalFavorites int64  `json:"total_favorites"`
}

// BatchFavoriteStatusRequest 批量查询收藏状态请求
type BatchFavoriteStatusRequest struct {
	MealIDs []string `json:"meal_ids" binding:"required,min=1,max=100,dive,required,max=32"`
}
