package response

import "github.com/gin-gonic/gin"

// OK 成功响应统一带 success 标记
func OK(data gin.H) gin.H {
	out := gin.H{"success": true}
	for k, v := range data {
		out[k] = v
	}
	return out
}

// Err 失败响应只暴露一条 message
func Err(msg string) gin.H { return gin.H{"error": msg} }
