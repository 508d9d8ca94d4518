package model

// MaxIngredients 目录中每道菜最多的食材条数
const MaxIngredients = 20

// Recipe 来自远程菜谱目录的菜谱，获取后不再修改
type Recipe struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	ThumbnailURL string       `json:"thumbnail_url"`
	Category     string       `json:"category"`
	Area         string       `json:"area,omitempty"`
	Instructions string       `json:"instructions,omitempty"`
	Tags         []string     `json:"tags,omitempty"`
	YoutubeURL   string       `json:"youtube_url,omitempty"`
	SourceURL    string       `json:"source_url,omitempty"`
	Ingredients  []Ingredient `json:"ingredients,omitempty"`
}

// Ingredient 食材与用量
type Ingredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

// Category 菜谱分类
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ThumbnailURL string `json:"thumbnail_url"`
	Description  string `json:"description"`
}
