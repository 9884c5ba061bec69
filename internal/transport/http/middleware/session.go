package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"artist-market/internal/core/sessions"
	"artist-market/internal/transport/http/response"
)

const KeyUserID = "userID"

// Session 解析 cookie（或 Bearer）里的 session token，查到身份就放进 context。
// 不强制登录，公开页和鉴权页共用。
func Session(store sessions.Store, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := sessionToken(c, cookieName)
		if tok != "" {
			if uid, err := store.Get(c.Request.Context(), tok); err == nil {
				c.Set(KeyUserID, uid)
			}
		}
		c.Next()
	}
}

// RequireLogin 未登录一律 401
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(KeyUserID); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Err("Login required"))
			return
		}
		c.Next()
	}
}

// UserID 当前请求身份；只在 RequireLogin 之后的 handler 里用
func UserID(c *gin.Context) uint {
	v, _ := c.Get(KeyUserID)
	id, _ := v.(uint)
	return id
}

func sessionToken(c *gin.Context, cookieName string) string {
	if tok, err := c.Cookie(cookieName); err == nil && tok != "" {
		return tok
	}
	if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
		return strings.TrimPrefix(ah, "Bearer ")
	}
	return ""
}
