package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"event-dashboard/backend/internal/dto"
	"event-dashboard/backend/internal/service"
	"event-dashboard/backend/pkg/response"
)

// ScheduleHandler 日程模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// ListSchedule 日程列表，附当前 / 下一项
// GET /api/v1/schedule?team=xxx&q=xxx
func (h *ScheduleHandler) ListSchedule(c *gin.Context) {
	var q dto.ScheduleQuery
	if !bindQuery(c, &q) {
		return
	}

	result, err := h.scheduleSvc.List(c.Request.Context(), service.ScheduleFilter{Team: q.Team, Query: q.Q})
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{
		"items":     result.Items,
		"current":   result.Current,
		"next":      result.Next,
		"timestamp": response.Timestamp(time.Now()),
	})
}

func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDutyTeam):
		response.BadRequest(c, "Invalid team. Must be one of: operation, registration, foodDrink, entertain, staff, game")
	default:
		response.InternalError(c, "Failed to load schedule", err)
	}
}
