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

type CommentHandler struct {
	commentService *service.CommentService
	authService    *service.AuthService
}

func NewCommentHandler(commentService *service.CommentService, authService *service.AuthService) *CommentHandler {
	return &CommentHandler{commentService: commentService, authService: authService}
}

// Create 发表评论
// @Summary 发表评论
// @Description 评论附带 0-5 分评分，返回新评论与更新后的评分汇总
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meal_id path string true "菜谱ID"
// @Param request body dto.CommentCreateRequest true "评论内容"
// @Success 201 {object} response.Response{data=dto.CommentCreatedData} "发表成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Router /recipes/{meal_id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	mealID, ok := mealIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的菜谱ID")
		return
	}

	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	userID, _ := middleware.GetCurrentUserID(c)
	user, err := h.authService.GetCurrentUser(ctx, userID)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	thread := h.commentService.LoadThread(ctx, mealID)
	comment, err := h.commentService.SubmitComment(ctx, thread, user.ID, user.FullName, req.Text, *req.Rating)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.Created(c, "发表评论成功", dto.CommentCreatedData{
		Comment:       service.ToCommentInfo(comment),
		TotalComments: thread.Len(),
		AverageRating: thread.Average(),
	})
}

// ListByMeal 获取菜谱评论
// @Summary 获取菜谱评论
// @Tags 评论
// @Produce json
// @Param meal_id path string true "菜谱ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=dto.CommentListData} "获取成功"
// @Router /recipes/{meal_id}/comments [get]
func (h *CommentHandler) ListByMeal(c *gin.Context) {
	mealID, ok := mealIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的菜谱ID")
		return
	}
	page, pageSize := parsePagination(c)

	data, err := h.commentService.ListByMeal(c.Request.Context(), mealID, page, pageSize)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "获取评论列表成功", data)
}

// Rating 获取菜谱评分
// @Summary 获取菜谱评分
// @Description 实时计算平均分，无评论时为 0
// @Tags 评论
// @Produce json
// @Param meal_id path string true "菜谱ID"
// @Success 200 {object} response.Response{data=dto.RatingSummary} "获取成功"
// @Router /recipes/{meal_id}/rating [get]
func (h *CommentHandler) Rating(c *gin.Context) {
	mealID, ok := mealIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的菜谱ID")
		return
	}

	response.OK(c, "获取评分成功", h.commentService.Summary(c.Request.Context(), mealID))
}

func handleCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidComment):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.Unauthorized(c, err.Error())
	default:
		logger.Error("Comment operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
