package handler

import (
	"errors"

	"recipe-finder/internal/api/dto"
	"recipe-finder/internal/api/middleware"
	"recipe-finder/internal/api/response"
	"recipe-finder/internal/service"
	"recipe-finder/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FavoriteHandler struct {
	favoriteService *service.FavoriteService
	recipeService   *service.RecipeService
}

func NewFavoriteHandler(favoriteService *service.FavoriteService, recipeService *service.RecipeService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService, recipeService: recipeService}
}

// Favorite 收藏菜谱
// @Summary 收藏菜谱
// @Description 重复收藏视为成功，不会产生重复记录
// @Tags 收藏
// @Produce json
// @Security BearerAuth
// @Param meal_id path string true "菜谱ID"
// @Success 200 {object} response.Response{data=dto.FavoriteToggleData} "收藏成功"
// @Failure 503 {object} response.ErrorResponse{data=dto.FavoriteToggleData} "写入失败，data.state 为应回退的状态"
// @Router /favorites/{meal_id} [post]
func (h *FavoriteHandler) Favorite(c *gin.Context) {
	h.setFavorite(c, true)
}

// Unfavorite 取消收藏
// @Summary 取消收藏
// @Description 删除该菜谱的所有收藏记录
// @Tags 收藏
// @Produce json
// @Security BearerAuth
// @Param meal_id path string true "菜谱ID"
// @Success 200 {object} response.Response{data=dto.FavoriteToggleData} "取消收藏成功"
// @Failure 503 {object} response.ErrorResponse{data=dto.FavoriteToggleData} "写入失败，data.state 为应回退的状态"
// @Router /favorites/{meal_id} [delete]
func (h *FavoriteHandler) Unfavorite(c *gin.Context) {
	h.setFavorite(c, false)
}

// SetFavorite 设置收藏状态
// @Summary 设置收藏状态
// @Tags 收藏
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meal_id path string true "菜谱ID"
// @Param request body dto.FavoriteToggleRequest true "目标状态"
// @Success 200 {object} response.Response{data=dto.FavoriteToggleData} "设置成功"
// @Failure 503 {object} response.ErrorResponse{data=dto.FavoriteToggleData} "写入失败"
// @Router /favorites/{meal_id} [put]
func (h *FavoriteHandler) SetFavorite(c *gin.Context) {
	var req dto.FavoriteToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}
	h.setFavorite(c, *req.Favorite)
}

func (h *FavoriteHandler) setFavorite(c *gin.Context, desired bool) {
	mealID, ok := mealIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的菜谱ID")
		return
	}
	userID, _ := middleware.GetCurrentUserID(c)
	ctx := c.Request.Context()

	out := h.favoriteService.SetFavorite(ctx, userID, mealID, desired)
	data := dto.FavoriteToggleData{
		UserID:     out.UserID,
		MealID:     out.MealID,
		Desired:    out.Desired,
		Confirmed:  out.Confirmed,
		Changed:    out.Changed,
		State:      out.State.String(),
		IsFavorite: out.State.IsFavorite(),
		Message:    out.Message,
	}

	if !out.Confirmed {
		if errors.Is(out.Err, service.ErrInvalidFavoriteKey) {
			response.BadRequest(c, out.Message)
			return
		}
		response.ServiceUnavailable(c, out.Message, data)
		return
	}

	if total, err := h.favoriteService.CountByMeal(ctx, mealID); err == nil {
		data.TotalFavorites = total
	}

	message := "取消收藏成功"
	if desired {
		message = "收藏成功"
	}
	response.OK(c, message, data)
}

// GetStatus 获取收藏状态
// @Summary 获取收藏状态
// @Description state 可能为 pending_on/pending_off（切换进行中）
// @Tags 收藏
// @Produce json
// @Security BearerAuth
// @Param meal_id path string true "菜谱ID"
// @Success 200 {object} response.Response{data=dto.FavoriteStatusData} "查询成功"
// @Router /favorites/{meal_id}/status [get]
func (h *FavoriteHandler) GetStatus(c *gin.Context) {
	mealID, ok := mealIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的菜谱ID")
		return
	}
	userID, _ := middleware.GetCurrentUserID(c)
	ctx := c.Request.Context()

	state, err := h.favoriteService.Status(ctx, userID, mealID)
	if err != nil {
		handleFavoriteError(c, err)
		return
	}
	total, err := h.favoriteService.CountByMeal(ctx, mealID)
	if err != nil {
		handleFavoriteError(c, err)
		return
	}

	response.OK(c, "查询收藏状态成功", dto.FavoriteStatusData{
		MealID:         mealID,
		IsFavorite:     state.IsFavorite(),
		State:          state.String(),
		TotalFavorites: total,
	})
}

// ListMyFavorites 获取我的收藏记录
// @Summary 获取我的收藏记录
// @Tags 收藏
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=dto.FavoriteListData} "获取成功"
// @Router /favorites/my/list [get]
func (h *FavoriteHandler) ListMyFavorites(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)
	page, pageSize := parsePagination(c)

	data, err := h.favoriteService.ListByUser(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		logger.Error("Get my favorites failed", zap.Error(err))
		response.InternalError(c, "获取我的收藏列表失败")
		return
	}

	response.OK(c, "获取我的收藏列表成功", data)
}

// GetMyFavoriteRecipes 获取我收藏的菜谱
// @Summary 获取我收藏的菜谱
// @Description 收藏记录解析为菜谱详情，目录中已不存在的菜谱被跳过
// @Tags 收藏
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=dto.FavoriteRecipeListData} "获取成功"
// @Router /favorites/my/recipes [get]
func (h *FavoriteHandler) GetMyFavoriteRecipes(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)
	page, pageSize := parsePagination(c)

	data, err := h.recipeService.FavoriteRecipes(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		logger.Error("Get my favorite recipes failed", zap.Error(err))
		response.InternalError(c, "获取收藏菜谱失败")
		return
	}

	response.OK(c, "获取收藏菜谱成功", data)
}

// BatchStatus 批量查询收藏状态
// @Summary 批量查询收藏状态
// @Tags 收藏
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BatchFavoriteStatusRequest true "菜谱ID列表"
// @Success 200 {object} response.Response "查询成功"
// @Router /favorites/batch/status [post]
func (h *FavoriteHandler) BatchStatus(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	var req dto.BatchFavoriteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	statusMap, err := h.favoriteService.BatchCheckStatus(c.Request.Context(), userID, req.MealIDs)
	if err != nil {
		handleFavoriteError(c, err)
		return
	}

	response.OK(c, "批量查询收藏状态成功", gin.H{
		"favorites_status": statusMap,
	})
}

func handleFavoriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidFavoriteKey):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Favorite operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
