package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"event-dashboard/backend/config"
	"event-dashboard/backend/internal/mapper"
	"event-dashboard/backend/internal/model"
	"event-dashboard/backend/internal/source"
	pkgerrors "event-dashboard/backend/pkg/errors"
)

// ── 日程模块业务错误 ──

var (
	ErrInvalidDutyTeam = pkgerrors.Validation("unknown team filter")
)

// ScheduleFilter 日程筛选条件
type ScheduleFilter struct {
	Team  string // 小组职责键，空表示不筛选
	Query string // 标题 / 描述 / 地点关键字
}

// ScheduleResult 日程列表与当前 / 下一项
type ScheduleResult struct {
	Items   []model.ScheduleItem
	Current *model.ScheduleItem
	Next    *model.ScheduleItem
}

// ScheduleService 日程业务接口
type ScheduleService interface {
	List(ctx context.Context, filter ScheduleFilter) (*ScheduleResult, error)
	// All 不筛选的完整日程（含运行状态）
	All(ctx context.Context) []model.ScheduleItem
}

type scheduleService struct {
	src    source.Source
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(src source.Source, cfg *config.ScheduleConfig, logger *zap.Logger) ScheduleService {
	return &scheduleService{src: src, loc: cfg.Location(), logger: logger, now: time.Now}
}

// ────────────────────── List ──────────────────────

func (s *scheduleService) List(ctx context.Context, filter ScheduleFilter) (*ScheduleResult, error) {
	if filter.Team != "" && !model.ValidDutyTeam(filter.Team) {
		return nil, ErrInvalidDutyTeam
	}

	items := make([]model.ScheduleItem, 0)
	for _, item := range s.All(ctx) {
		if filter.Team != "" {
			if _, ok := item.TeamDuties()[filter.Team]; !ok {
				continue
			}
		}
		if !matchesQuery(filter.Query, item.Title, item.Description, item.Location) {
			continue
		}
		items = append(items, item)
	}

	result := &ScheduleResult{Items: items}
	for i := range items {
		switch items[i].Status {
		case model.ScheduleOngoing:
			if result.Current == nil {
				result.Current = &items[i]
			}
		case model.ScheduleUpcoming:
			if result.Next == nil {
				result.Next = &items[i]
			}
		}
	}
	return result, nil
}

// ────────────────────── All ──────────────────────

func (s *scheduleService) All(ctx context.Context) []model.ScheduleItem {
	items := loadRecords(ctx, s.src, source.ScheduleFile, mapper.ScheduleSchema, mapper.Schedule, s.logger)

	now := s.now().In(s.loc)
	minute := now.Hour()*60 + now.Minute()
	for i := range items {
		items[i].Status = scheduleStatus(minute, items[i].StartTime, items[i].EndTime)
	}
	return items
}

// ── 内部辅助方法 ──

// scheduleStatus 按当天分钟数判断运行状态；时间无法解析时视为未开始
func scheduleStatus(now int, start, end string) string {
	startMin, errStart := clockMinutes(start)
	endMin, errEnd := clockMinutes(end)
	switch {
	case errEnd == nil && now >= endMin:
		return model.ScheduleCompleted
	case errStart == nil && now >= startMin:
		return model.ScheduleOngoing
	default:
		return model.ScheduleUpcoming
	}
}

var errBadClock = errors.New("invalid HH:MM")

// clockMinutes 解析 HH:MM 为当天分钟数
func clockMinutes(hhmm string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(hhmm), ":")
	if !ok {
		return 0, errBadClock
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 24 {
		return 0, errBadClock
	}
	mins, err := strconv.Atoi(m)
	if err != nil || mins < 0 || mins > 59 {
		return 0, errBadClock
	}
	return hour*60 + mins, nil
}
