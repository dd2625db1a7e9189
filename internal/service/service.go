package service

import (
	"go.uber.org/zap"

	"event-dashboard/backend/config"
	"event-dashboard/backend/internal/repository"
	"event-dashboard/backend/internal/sheets"
	"event-dashboard/backend/internal/source"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Schedule   ScheduleService
	Venue      VenueService
	Team       TeamService
	Contact    ContactService
	Prop       PropService
	Alert      AlertService
	Scoreboard ScoreboardService
	Export     ExportService
}

// NewService 创建 Service 聚合
// reader 为 nil 表示未配置远程表格，记分板降级为 scoreboard.csv
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	src source.Source,
	reader sheets.ValuesReader,
	logger *zap.Logger,
) *Service {
	schedule := NewScheduleService(src, &cfg.Schedule, logger)
	scoreboard := NewScoreboardService(repo, NewAggregator(cfg, src, reader, logger), cfg.Scoreboard.CacheTTL, logger)

	return &Service{
		Schedule:   schedule,
		Venue:      NewVenueService(repo, src, logger),
		Team:       NewTeamService(src, logger),
		Contact:    NewContactService(src, logger),
		Prop:       NewPropService(src, logger),
		Alert:      NewAlertService(src, logger),
		Scoreboard: scoreboard,
		Export:     NewExportService(scoreboard, schedule, &cfg.Schedule, logger),
	}
}
