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

type UserHandler struct {
	userService    *service.UserService
	commentService *service.CommentService
}

func NewUserHandler(userService *service.UserService, commentService *service.CommentService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		commentService: commentService,
	}
}

// GetProfile 获取个人资料
// @Summary 获取个人资料
// @Description 获取当前用户资料，含收藏数与评论数
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.UserProfile} "获取成功"
// @Failure 401 {object} response.ErrorResponse "未授权"
// @Router /users/me [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "获取成功", profile)
}

// UpdateProfile 更新个人资料
// @Summary 更新个人资料
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UserUpdateRequest true "更新内容"
// @Success 200 {object} response.Response{data=dto.UserProfile} "更新成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Router /users/me [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	var req dto.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "更新成功", profile)
}

// UploadAvatar 上传头像
// @Summary 上传头像
// @Description multipart 表单字段 avatar，支持 jpg/png/webp，最大 5MB
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "头像文件"
// @Success 200 {object} response.Response{data=dto.UserInfo} "上传成功"
// @Failure 400 {object} response.ErrorResponse "文件无效"
// @Failure 503 {object} response.ErrorResponse "存储不可用"
// @Router /users/me/avatar [post]
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		response.BadRequest(c, "请上传头像文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "无法读取头像文件")
		return
	}
	defer file.Close()

	info, err := h.userService.UploadAvatar(c.Request.Context(), userID, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "上传成功", info)
}

// ListMyComments 我发表的评论
// @Summary 我发表的评论
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=dto.CommentListData} "获取成功"
// @Router /users/me/comments [get]
func (h *UserHandler) ListMyComments(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)
	page, pageSize := parsePagination(c)

	data, err := h.commentService.ListByUser(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		logger.Error("List my comments failed", zap.Error(err))
		response.InternalError(c, "获取评论列表失败")
		return
	}

	response.OK(c, "获取成功", data)
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidAvatar), errors.Is(err, service.ErrAvatarTooLarge):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrAvatarUnavailable):
		response.ServiceUnavailable(c, err.Error(), nil)
	default:
		logger.Error("User operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
