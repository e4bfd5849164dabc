// Package handler 实现了 DOS REST 接口的 Gin 处理器。
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dos-azul-go/internal/model"
)

const defaultPageSize = 10

// writeError 把封闭错误类别映射为对外的 HTTP 状态码。
// 后端类错误只返回通用信息，完整上下文已在发现处记入日志。
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrBackend):
		c.JSON(http.StatusBadGateway, gin.H{"error": "received an unexpected response from the backing index"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// parsePaging 解析 page_size 与 page_token 查询参数。
// 非法或缺失的值退回默认（10 和 0），与历史行为一致地宽松处理。
func parsePaging(c *gin.Context) (pageSize, pageToken int) {
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || pageSize <= 0 {
		pageSize = defaultPageSize
	}
	pageToken, err = strconv.Atoi(c.DefaultQuery("page_token", "0"))
	if err != nil || pageToken < 0 {
		pageToken = 0
	}
	return pageSize, pageToken
}
