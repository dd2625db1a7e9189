package service

import (
	"context"

	"go.uber.org/zap"

	"event-dashboard/backend/internal/mapper"
	"event-dashboard/backend/internal/model"
	"event-dashboard/backend/internal/source"
)

// AlertService 现场告警业务接口
type AlertService interface {
	List(ctx context.Context, activeOnly bool) []model.Alert
}

type alertService struct {
	src    source.Source
	logger *zap.Logger
}

// NewAlertService 创建 AlertService 实例
func NewAlertService(src source.Source, logger *zap.Logger) AlertService {
	return &alertService{src: src, logger: logger}
}

func (s *alertService) List(ctx context.Context, activeOnly bool) []model.Alert {
	alerts := loadRecords(ctx, s.src, source.AlertsFile, mapper.AlertSchema, mapper.Alert, s.logger)
	if !activeOnly {
		return alerts
	}

	active := make([]model.Alert, 0, len(alerts))
	for _, a := range alerts {
		if a.IsActive {
			active = append(active, a)
		}
	}
	return active
}
