package dto

import "recipe-finder/internal/model"

// RecipeListRequest 菜谱列表查询参数
type RecipeListRequest struct {
	Q        string `form:"q" binding:"max=100"`
	Category string `form:"category" binding:"max=64"`
}

// RecipeCard 列表中的菜谱，附带当前用户收藏状态与平均评分
type RecipeCard struct {
	model.Recipe
	IsFavorite    bool    `json:"is_favorite"`
	AverageRating float64 `json:"average_rating"`
}

// RecipeListData 菜谱列表
type RecipeListData struct {
	Recipes []RecipeCard `json:"recipes"`
	Total   int          `json:"total"`
}

// RecipeDetail 菜谱详情
type RecipeDetail struct {
	model.Recipe
	IsFavorite     bool          `json:"is_favorite"`
	TotalFavorites int64         `json:"total_favorites"`
	TotalComments  int           `json:"total_comments"`
	AverageRating  float64       `json:"average_rating"`
	Comments       []CommentInfo `json:"comments"`
}

// FavoriteRecipeListData 我收藏的菜谱
type FavoriteRecipeListData struct {
	Recipes    []RecipeCard `json:"recipes"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int64        `json:"total_pages"`
}
