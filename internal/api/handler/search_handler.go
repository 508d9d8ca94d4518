package handler

import (
	"recipe-finder/internal/api/dto"
	"recipe-finder/internal/api/middleware"
	"recipe-finder/internal/api/response"
	"recipe-finder/internal/service"
	"recipe-finder/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Popular 热门菜谱
// @Summary 热门菜谱
// @Description 按收藏与评论热度排序，优先使用 Elasticsearch，失败时降级为数据库统计
// @Tags 搜索
// @Produce json
// @Param q query string false "关键词"
// @Param category query string false "分类"
// @Param sort query string false "排序：hot(默认)/rating/relevance"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=dto.PopularRecipeData} "获取成功"
// @Router /recipes/popular [get]
func (h *SearchHandler) Popular(c *gin.Context) {
	var req dto.PopularRecipeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	data, err := h.searchService.PopularRecipes(c.Request.Context(), userID, &req)
	if err != nil {
		logger.Error("Popular recipes failed", zap.Error(err))
		response.InternalError(c, "获取热门菜谱失败")
		return
	}

	response.OK(c, "获取热门菜谱成功", data)
}
