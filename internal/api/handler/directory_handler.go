package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"event-dashboard/backend/internal/dto"
	"event-dashboard/backend/internal/model"
	"event-dashboard/backend/internal/service"
	"event-dashboard/backend/pkg/response"
)

// ── 小组 ──

// TeamHandler 小组 HTTP 处理器
type TeamHandler struct {
	teamSvc service.TeamService
}

// NewTeamHandler 创建 TeamHandler
func NewTeamHandler(teamSvc service.TeamService) *TeamHandler {
	return &TeamHandler{teamSvc: teamSvc}
}

// ListTeams GET /api/v1/teams?q=xxx
func (h *TeamHandler) ListTeams(c *gin.Context) {
	var q dto.SearchQuery
	if !bindQuery(c, &q) {
		return
	}
	response.OK(c, gin.H{"teams": h.teamSvc.List(c.Request.Context(), q.Q)})
}

// ── 联系人 ──

// ContactHandler 联系人 HTTP 处理器
type ContactHandler struct {
	contactSvc service.ContactService
}

// NewContactHandler 创建 ContactHandler
func NewContactHandler(contactSvc service.ContactService) *ContactHandler {
	return &ContactHandler{contactSvc: contactSvc}
}

// ListContacts GET /api/v1/contacts?q=xxx
func (h *ContactHandler) ListContacts(c *gin.Context) {
	var q dto.SearchQuery
	if !bindQuery(c, &q) {
		return
	}

	dir := h.contactSvc.List(c.Request.Context(), q.Q)
	response.OK(c, gin.H{
		"emergency": dir.Emergency,
		"regular":   dir.Regular,
		"total":     dir.Total(),
	})
}

// ── 道具 ──

// PropHandler 道具 HTTP 处理器
type PropHandler struct {
	propSvc service.PropService
}

// NewPropHandler 创建 PropHandler
func NewPropHandler(propSvc service.PropService) *PropHandler {
	return &PropHandler{propSvc: propSvc}
}

// ListProps GET /api/v1/props?q=xxx&status=xxx
func (h *PropHandler) ListProps(c *gin.Context) {
	var q dto.PropQuery
	if !bindQuery(c, &q) {
		return
	}

	inv, err := h.propSvc.List(c.Request.Context(), q.Q, q.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPropStatus):
			response.BadRequest(c, "Invalid status. Must be one of: "+strings.Join(model.PropStatuses, ", "))
		default:
			response.InternalError(c, "Failed to load props", err)
		}
		return
	}

	response.OK(c, gin.H{"props": inv.Props, "counts": inv.Counts})
}

// ── 提醒 ──

// AlertHandler 提醒 HTTP 处理器
type AlertHandler struct {
	alertSvc service.AlertService
}

// NewAlertHandler 创建 AlertHandler
func NewAlertHandler(alertSvc service.AlertService) *AlertHandler {
	return &AlertHandler{alertSvc: alertSvc}
}

// ListAlerts GET /api/v1/alerts?active=true
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	var q dto.AlertQuery
	if !bindQuery(c, &q) {
		return
	}
	response.OK(c, gin.H{"alerts": h.alertSvc.List(c.Request.Context(), q.Active)})
}
