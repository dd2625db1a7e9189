package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"event-dashboard/backend/pkg/response"
)

// bindJSON 绑定 JSON 请求体；失败时写入 400（请求体超限为 413），调用方在 ok=false 时直接 return
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	return true
}

// bindQuery 绑定查询参数；失败时写入 400
func bindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return false
	}
	return true
}
