package handler

import (
	"errors"
	"strings"

	"recipe-finder/internal/api/dto"
	"recipe-finder/internal/api/middleware"
	"recipe-finder/internal/api/response"
	"recipe-finder/internal/service"
	"recipe-finder/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RecipeHandler struct {
	recipeService *service.RecipeService
}

func NewRecipeHandler(recipeService *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// Search 搜索菜谱
// @Summary 搜索菜谱
// @Description 按名称关键词搜索，可选分类过滤；登录时附带收藏状态。目录不可用时返回空列表
// @Tags 菜谱
// @Produce json
// @Param q query string false "关键词"
// @Param category query string false "分类"
// @Success 200 {object} response.Response{data=dto.RecipeListData} "搜索成功"
// @Router /recipes [get]
func (h *RecipeHandler) Search(c *gin.Context) {
	var req dto.RecipeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	data := h.recipeService.Search(c.Request.Context(), userID, req.Q, req.Category)
	response.OK(c, "搜索成功", data)
}

// Categories 菜谱分类
// @Summary 菜谱分类
// @Tags 菜谱
// @Produce json
// @Success 200 {object} response.Response "获取成功"
// @Router /recipes/categories [get]
func (h *RecipeHandler) Categories(c *gin.Context) {
	categories := h.recipeService.Categories(c.Request.Context())
	response.OK(c, "获取成功", gin.H{"categories": categories})
}

// ListByCategory 分类下的菜谱
// @Summary 分类下的菜谱
// @Tags 菜谱
// @Produce json
// @Param name path string true "分类名"
// @Success 200 {object} response.Response{data=dto.RecipeListData} "获取成功"
// @Router /recipes/category/{name} [get]
func (h *RecipeHandler) ListByCategory(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		response.BadRequest(c, "分类不能为空")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	data := h.recipeService.ListByCategory(c.Request.Context(), userID, name)
	response.OK(c, "获取成功", data)
}

// Detail 菜谱详情
// @Summary 菜谱详情
// @Description 菜谱完整信息、收藏状态、收藏数与评论
// @Tags 菜谱
// @Produce json
// @Param meal_id path string true "菜谱ID"
// @Success 200 {object} response.Response{data=dto.RecipeDetail} "获取成功"
// @Failure 404 {object} response.ErrorResponse "菜谱不存在"
// @Failure 502 {object} response.ErrorResponse "目录不可用"
// @Router /recipes/{meal_id} [get]
func (h *RecipeHandler) Detail(c *gin.Context) {
	mealID, ok := mealIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的菜谱ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	detail, err := h.recipeService.Detail(c.Request.Context(), userID, mealID)
	if err != nil {
		handleRecipeError(c, err)
		return
	}

	response.OK(c, "获取成功", detail)
}

func handleRecipeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCatalogUnavailable):
		response.BadGateway(c, err.Error())
	default:
		logger.Error("Recipe operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
