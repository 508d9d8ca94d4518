package dto

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	FullName       string `json:"full_name" binding:"required,min=1,max=255"`
	Email          string `json:"email" binding:"required,email,max=255"`
	PhoneNumber    string `json:"phone_number" binding:"omitempty,max=32"`
	Password       string `json:"password" binding:"required,min=6,max=255"`
	VerifyPassword string `json:"verify_password" binding:"required"`
}

// TokenData 登录成功返回的 Token 信息
type TokenData struct {
	Token     string   `json:"token"`
	TokenType string   `json:"token_type"`
	ExpiresIn int      `json:"expires_in"`
	User      UserInfo `json:"user"`
}

// UserInfo 用户资料（不含密码）
type UserInfo struct {
	ID          string  `json:"id"`
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phone_number"`
	AvatarURL   *string `json:"avatar_url"`
}
