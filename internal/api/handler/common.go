package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxMealIDLength = 32

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// mealIDParam 读取路径中的菜谱 ID
func mealIDParam(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("meal_id"))
	if id == "" || len(id) > maxMealIDLength {
		return "", false
	}
	return id, true
}
