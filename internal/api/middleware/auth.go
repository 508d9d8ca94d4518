package middleware

import (
	"context"
	"strings"

	"recipe-finder/internal/api/response"
	"recipe-finder/pkg/logger"
	"recipe-finder/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextKeyUserID = "currentUserID"
	ContextKeyClaims = "currentClaims"
)

// RevocationChecker 查询令牌是否已登出
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthRequired JWT 认证中间件，要求请求必须携带有效 Token
// checker 为 nil 时不检查登出状态
func AuthRequired(checker RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "缺少认证令牌")
			c.Abort()
			return
		}

		claims, ok := authenticate(c, checker, token)
		if !ok {
			response.Unauthorized(c, "无效或过期的认证令牌")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// OptionalAuth 携带有效 Token 时写入用户信息，否则按匿名处理
func OptionalAuth(checker RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if claims, ok := authenticate(c, checker, token); ok {
				c.Set(ContextKeyUserID, claims.UserID)
				c.Set(ContextKeyClaims, claims)
			}
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, checker RevocationChecker, token string) (*utils.Claims, bool) {
	claims, err := utils.ParseToken(token)
	if err != nil {
		return nil, false
	}
	if checker == nil {
		return claims, true
	}

	revoked, err := checker.IsRevoked(c.Request.Context(), claims.ID)
	if err != nil {
		// 黑名单不可用时放行，令牌本身仍然有效
		logger.Warn("Check revoked token failed", zap.Error(err))
		return claims, true
	}
	return claims, !revoked
}

// GetCurrentUserID 从 Gin Context 中获取当前登录用户 ID
func GetCurrentUserID(c *gin.Context) (string, bool) {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return "", false
	}
	userID, ok := val.(string)
	return userID, ok && userID != ""
}

// GetClaims 获取当前令牌的 Claims
func GetClaims(c *gin.Context) (*utils.Claims, bool) {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := val.(*utils.Claims)
	return claims, ok
}

// extractToken 从 Authorization 头中提取 Bearer Token
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
