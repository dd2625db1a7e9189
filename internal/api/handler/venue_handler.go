package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"event-dashboard/backend/internal/dto"
	"event-dashboard/backend/internal/model"
	"event-dashboard/backend/internal/service"
	"event-dashboard/backend/pkg/response"
)

// VenueHandler 场地模块 HTTP 处理器
type VenueHandler struct {
	venueSvc service.VenueService
}

// NewVenueHandler 创建 VenueHandler
func NewVenueHandler(venueSvc service.VenueService) *VenueHandler {
	return &VenueHandler{venueSvc: venueSvc}
}

// ListVenues 获取场地列表（存储优先，失败回退 CSV）
// GET /api/v1/venues
func (h *VenueHandler) ListVenues(c *gin.Context) {
	response.OK(c, gin.H{"venues": h.venueSvc.List(c.Request.Context())})
}

// ListStoredVenues 获取存储中的场地列表
// GET /api/v1/venues/update
func (h *VenueHandler) ListStoredVenues(c *gin.Context) {
	venues, err := h.venueSvc.ListStored(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to retrieve venues", err)
		return
	}

	response.OK(c, gin.H{"venues": venues})
}

// UpdateStatus 更新单个场地状态
// POST /api/v1/venues/update
func (h *VenueHandler) UpdateStatus(c *gin.Context) {
	var req dto.VenueStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	venue, err := h.venueSvc.UpdateStatus(c.Request.Context(), req.ID, req.Status)
	if err != nil {
		h.handleVenueError(c, req.ID, err)
		return
	}

	response.OK(c, gin.H{
		"message":   fmt.Sprintf("Venue '%s' status updated to '%s'", req.ID, req.Status),
		"timestamp": response.Timestamp(time.Now()),
		"venue":     venue,
	})
}

// UpdateStatuses 批量更新场地状态
// POST /api/v1/venues/update-multiple
func (h *VenueHandler) UpdateStatuses(c *gin.Context) {
	var req dto.VenueBatchRequest
	if !bindJSON(c, &req) {
		return
	}

	updates := make([]service.VenueStatusUpdate, 0, len(req.Updates))
	for _, u := range req.Updates {
		updates = append(updates, service.VenueStatusUpdate{ID: u.ID, Status: u.Status})
	}

	results, err := h.venueSvc.UpdateStatuses(c.Request.Context(), updates)
	if err != nil {
		h.handleVenueError(c, "", err)
		return
	}

	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}

	response.OK(c, gin.H{
		"message":   fmt.Sprintf("Updated %d of %d venues", succeeded, len(results)),
		"timestamp": response.Timestamp(time.Now()),
		"results":   results,
	})
}

// Initialize 将 venues.csv 导入存储
// POST /api/v1/venues/init
func (h *VenueHandler) Initialize(c *gin.Context) {
	venues, err := h.venueSvc.Initialize(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to initialize venues", err)
		return
	}

	response.OK(c, gin.H{
		"message": fmt.Sprintf("Initialized %d venues", len(venues)),
		"venues":  venues,
	})
}

// handleVenueError 统一处理场地模块业务错误
func (h *VenueHandler) handleVenueError(c *gin.Context, id string, err error) {
	switch {
	case errors.Is(err, service.ErrMissingVenueFields):
		response.BadRequest(c, "Missing required fields: id and status")
	case errors.Is(err, service.ErrInvalidVenueStatus):
		response.BadRequest(c, "Invalid status. Must be one of: "+strings.Join(model.VenueStatuses, ", "))
	case errors.Is(err, service.ErrEmptyVenueBatch):
		response.BadRequest(c, "No updates provided")
	case errors.Is(err, service.ErrVenueNotFound):
		response.NotFound(c, fmt.Sprintf("Venue with id '%s' not found", id))
	default:
		response.ErrorWithDetails(c, http.StatusInternalServerError, "Failed to update venue status", err.Error())
	}
}
