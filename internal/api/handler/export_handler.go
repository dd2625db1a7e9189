package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"event-dashboard/backend/internal/service"
	"event-dashboard/backend/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportScoreboard 导出记分板 Excel
// GET /api/v1/export/scoreboard.xlsx
func (h *ExportHandler) ExportScoreboard(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportScoreboard(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to export scoreboard", err)
		return
	}
	attachment(c, filename, contentTypeXLSX, buf.Bytes())
}

// ExportSchedule 导出日程 iCalendar
// GET /api/v1/export/schedule.ics
func (h *ExportHandler) ExportSchedule(c *gin.Context) {
	data, filename, err := h.exportSvc.ExportSchedule(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to export schedule", err)
		return
	}
	attachment(c, filename, contentTypeICS, data)
}

// attachment 写入下载响应
func attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, contentType, data)
}
