package handler

import "event-dashboard/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Venue      *VenueHandler
	Scoreboard *ScoreboardHandler
	Schedule   *ScheduleHandler
	Team       *TeamHandler
	Contact    *ContactHandler
	Prop       *PropHandler
	Alert      *AlertHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Venue:      NewVenueHandler(svc.Venue),
		Scoreboard: NewScoreboardHandler(svc.Scoreboard),
		Schedule:   NewScheduleHandler(svc.Schedule),
		Team:       NewTeamHandler(svc.Team),
		Contact:    NewContactHandler(svc.Contact),
		Prop:       NewPropHandler(svc.Prop),
		Alert:      NewAlertHandler(svc.Alert),
		Export:     NewExportHandler(svc.Export),
	}
}
