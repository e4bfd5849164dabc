// Package middleware 提供了处理 HTTP 请求的中间件。
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dos-azul-go/pkg/log"
)

// AccessTokenAuth 创建一个 Gin 中间件，对变更类接口做共享密钥校验。
// 只做 access_token 请求头与配置密钥的等值比较，没有用户身份，
// 也没有过期概念；校验失败统一返回 401。
func AccessTokenAuth(accessToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("access_token") != accessToken {
			log.Warnf("[AccessTokenAuth] 共享密钥校验失败, path: %s", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "you're not authorized to use this service; did you set access_token in the request headers?",
			})
			return
		}
		c.Next()
	}
}
