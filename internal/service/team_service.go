package service

import (
	"context"

	"go.uber.org/zap"

	"event-dashboard/backend/internal/mapper"
	"event-dashboard/backend/internal/model"
	"event-dashboard/backend/internal/source"
)

// TeamService 小组业务接口
type TeamService interface {
	List(ctx context.Context, query string) []model.Team
}

type teamService struct {
	src    source.Source
	logger *zap.Logger
}

// NewTeamService 创建 TeamService 实例
func NewTeamService(src source.Source, logger *zap.Logger) TeamService {
	return &teamService{src: src, logger: logger}
}

// List 按名称 / 负责人 / 当前任务搜索
func (s *teamService) List(ctx context.Context, query string) []model.Team {
	teams := loadRows(ctx, s.src, source.TeamsFile, mapper.Team, s.logger)

	result := make([]model.Team, 0, len(teams))
	for _, t := range teams {
		if matchesQuery(query, t.Name, t.LeadName, t.CurrentTask) {
			result = append(result, t)
		}
	}
	return result
}
