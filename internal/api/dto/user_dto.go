package dto

// UserUpdateRequest 用户资料更新请求
type UserUpdateRequest struct {
	FullName    *string `json:"full_name" binding:"omitempty,min=1,max=255"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=32"`
}

// UserProfile 个人主页资料（含收藏统计）
type UserProfile struct {
	UserInfo
	FavoriteCount int64 `json:"favorite_count"`
	CommentCount  int64 `json:"comment_count"`
}
