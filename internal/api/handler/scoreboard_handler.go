package handler

import (
	"github.com/gin-gonic/gin"

	"event-dashboard/backend/internal/service"
	"event-dashboard/backend/pkg/response"
)

// ScoreboardHandler 记分板 HTTP 处理器
type ScoreboardHandler struct {
	scoreboardSvc service.ScoreboardService
}

// NewScoreboardHandler 创建 ScoreboardHandler
func NewScoreboardHandler(scoreboardSvc service.ScoreboardService) *ScoreboardHandler {
	return &ScoreboardHandler{scoreboardSvc: scoreboardSvc}
}

// GetScoreboard 获取记分板（旁路缓存）
// GET /api/v1/scoreboard
func (h *ScoreboardHandler) GetScoreboard(c *gin.Context) {
	result, err := h.scoreboardSvc.Get(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to fetch scoreboard data", err)
		return
	}

	body := gin.H{
		"data":      result.Data,
		"timestamp": result.Timestamp,
		"cached":    result.Cached,
	}
	if result.Warning != "" {
		body["warning"] = result.Warning
	}
	response.OK(c, body)
}
