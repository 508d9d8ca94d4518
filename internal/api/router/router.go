package router

import (
	"recipe-finder/internal/api/handler"
	"recipe-finder/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers 路由依赖的全部 Handler
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Recipe   *handler.RecipeHandler
	Comment  *handler.CommentHandler
	Favorite *handler.FavoriteHandler
	Search   *handler.SearchHandler
}

// Setup 注册所有业务路由，checker 用于拒绝已登出的令牌
func Setup(r *gin.Engine, h *Handlers, checker middleware.RevocationChecker) {
	authRequired := middleware.AuthRequired(checker)
	optionalAuth := middleware.OptionalAuth(checker)

	v1 := r.Group("/api/v1")

	// --- 认证模块 ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)

		authAuthed := auth.Group("", authRequired)
		{
			authAuthed.POST("/logout", h.Auth.Logout)
			authAuthed.GET("/me", h.Auth.Me)
		}
	}

	// --- 用户模块 ---
	users := v1.Group("/users", authRequired)
	{
		users.GET("/me", h.User.GetProfile)
		users.PUT("/me", h.User.UpdateProfile)
		users.POST("/me/avatar", h.User.UploadAvatar)
		users.GET("/me/comments", h.User.ListMyComments)
	}

	// --- 菜谱模块（登录可选，登录时附带收藏状态） ---
	recipes := v1.Group("/recipes", optionalAuth)
	{
		recipes.GET("", h.Recipe.Search)
		recipes.GET("/categories", h.Recipe.Categories)
		recipes.GET("/category/:name", h.Recipe.ListByCategory)
		recipes.GET("/popular", h.Search.Popular)
		recipes.GET("/:meal_id", h.Recipe.Detail)

		// 评论与评分
		recipes.GET("/:meal_id/comments", h.Comment.ListByMeal)
		recipes.GET("/:meal_id/rating", h.Comment.Rating)
		recipes.POST("/:meal_id/comments", authRequired, h.Comment.Create)
	}

	// --- 收藏模块 ---
	favorites := v1.Group("/favorites", authRequired)
	{
		favorites.POST("/:meal_id", h.Favorite.Favorite)
		favorites.PUT("/:meal_id", h.Favorite.SetFavorite)
		favorites.DELETE("/:meal_id", h.Favorite.Unfavorite)
		favorites.GET("/:meal_id/status", h.Favorite.GetStatus)
		favorites.GET("/my/list", h.Favorite.ListMyFavorites)
		favorites.GET("/my/recipes", h.Favorite.GetMyFavoriteRecipes)
		favorites.POST("/batch/status", h.Favorite.BatchStatus)
	}
}
