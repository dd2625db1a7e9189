package service

import (
	"context"

	"go.uber.org/zap"

	"event-dashboard/backend/internal/mapper"
	"event-dashboard/backend/internal/model"
	"event-dashboard/backend/internal/source"
	pkgerrors "event-dashboard/backend/pkg/errors"
)

// ── 道具模块业务错误 ──

var (
	ErrInvalidPropStatus = pkgerrors.Validation("unknown prop status filter")
)

// PropInventory 道具列表与各状态计数（计数基于搜索后、状态筛选前的结果）
type PropInventory struct {
	Props  []model.Prop
	Counts map[string]int
}

// PropService 道具业务接口
type PropService interface {
	List(ctx context.Context, query, status string) (*PropInventory, error)
}

type propService struct {
	src    source.Source
	logger *zap.Logger
}

// NewPropService 创建 PropService 实例
func NewPropService(src source.Source, logger *zap.Logger) PropService {
	return &propService{src: src, logger: logger}
}

func (s *propService) List(ctx context.Context, query, status string) (*PropInventory, error) {
	if status != "" && !validPropStatus(status) {
		return nil, ErrInvalidPropStatus
	}

	props := loadRecords(ctx, s.src, source.PropsFile, mapper.PropSchema, mapper.Prop, s.logger)

	inv := &PropInventory{Props: []model.Prop{}, Counts: make(map[string]int, len(model.PropStatuses))}
	for _, st := range model.PropStatuses {
		inv.Counts[st] = 0
	}
	for _, p := range props {
		if !matchesQuery(query, p.Name, p.Category, p.Location, p.AssignedTo, p.Status) {
			continue
		}
		inv.Counts[p.Status]++
		if status == "" || p.Status == status {
			inv.Props = append(inv.Props, p)
		}
	}
	return inv, nil
}

func validPropStatus(status string) bool {
	for _, s := range model.PropStatuses {
		if s == status {
			return true
		}
	}
	return false
}
