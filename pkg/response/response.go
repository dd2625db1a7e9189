package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorBody 失败响应的稳定结构：{success:false, error, details?}
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Timestamp 响应中统一使用的时间戳格式（RFC3339，UTC，毫秒）
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// ── 成功响应 ──

// OK 200 成功响应，body 中的字段平铺输出并附加 success:true
func OK(c *gin.Context, body gin.H) {
	out := gin.H{"success": true}
	for k, v := range body {
		out[k] = v
	}
	c.JSON(http.StatusOK, out)
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{Success: false, Error: message})
}

// ErrorWithDetails 带详情的错误响应（details 为底层错误信息）
func ErrorWithDetails(c *gin.Context, httpStatus int, message, details string) {
	c.JSON(httpStatus, ErrorBody{Success: false, Error: message, Details: details})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 500，对外仅暴露通用信息与底层错误描述
func InternalError(c *gin.Context, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	ErrorWithDetails(c, http.StatusInternalServerError, message, details)
}
