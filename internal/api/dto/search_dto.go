package dto

// PopularRecipeRequest 热门菜谱搜索参数
type PopularRecipeRequest struct {
	Q        string `form:"q"`
	Category string `form:"category"`
	Sort     string `form:"sort"` // hot, rating, relevance
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// PopularRecipeInfo 热门菜谱条目
type PopularRecipeInfo struct {
	RecipeCard
	TotalFavorites int64               `json:"total_favorites"`
	TotalComments  int64               `json:"total_comments"`
	Highlight      map[string][]string `json:"highlight,omitempty"`
}

// PopularRecipeData 热门菜谱结果
type PopularRecipeData struct {
	Recipes    []PopularRecipeInfo `json:"recipes"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int64               `json:"total_pages"`
	Source     string              `json:"source"` // elasticsearch 或 database
}
