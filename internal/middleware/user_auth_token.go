package middleware

import (
	"strings"

	"github.com/listkeep/list-note-service/pkg/app"
	"github.com/listkeep/list-note-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// UserAuthToken 用户 Token 认证中间件（使用注入的 TokenManager）
// Accepts the token from the Authorization header (with or without the
// Bearer prefix), a token header, or the same-named query parameters.
// 支持 Authorization 头（可带 Bearer 前缀）、token 头以及同名查询参数。
func UserAuthToken(tm app.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		response := app.NewResponse(c)

		if s := c.GetHeader("Authorization"); len(s) != 0 {
			token = s
		} else if s, exist := c.GetQuery("authorization"); exist {
			token = s
		} else if s := c.GetHeader("Token"); len(s) != 0 {
			token = s
		} else if s, exist := c.GetQuery("token"); exist {
			token = s
		}

		token = strings.TrimPrefix(token, "Bearer ")

		if token == "" {
			response.ToResponse(code.ErrorNotUserAuthToken)
			c.Abort()
			return
		}

		if err := app.SetTokenToContext(c, tm, token); err != nil {
			response.ToResponse(code.ErrorInvalidUserAuthToken)
			c.Abort()
			return
		}

		c.Next()
	}
}
