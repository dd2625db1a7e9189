package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"event-dashboard/backend/internal/mapper"
	"event-dashboard/backend/internal/model"
	"event-dashboard/backend/internal/repository"
	"event-dashboard/backend/internal/source"
	"event-dashboard/backend/pkg/csvparse"
	pkgerrors "event-dashboard/backend/pkg/errors"
	"event-dashboard/backend/pkg/response"
)

// ── 场地模块业务错误 ──

var (
	ErrMissingVenueFields = pkgerrors.Validation("missing required fields: id and status")
	ErrInvalidVenueStatus = pkgerrors.Validation("invalid status. Must be one of: " + strings.Join(model.VenueStatuses, ", "))
	ErrEmptyVenueBatch    = pkgerrors.Validation("updates must not be empty")
	ErrVenueNotFound      = pkgerrors.NotFound("venue not found")
)

// VenueStatusUpdate 单条状态更新请求
type VenueStatusUpdate struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// VenueUpdateResult 批量更新中单条的结果
type VenueUpdateResult struct {
	ID      string       `json:"id"`
	Success bool         `json:"success"`
	Venue   *model.Venue `json:"venue,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// VenueService 场地业务接口
type VenueService interface {
	// List 两级读取：先走存储读路径，失败或未初始化时回退到 venues.csv，永不报错
	List(ctx context.Context) []model.Venue
	// ListStored 仅走存储读路径
	ListStored(ctx context.Context) ([]model.Venue, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Venue, error)
	// UpdateStatuses 先整体校验，再按顺序逐条更新
	UpdateStatuses(ctx context.Context, updates []VenueStatusUpdate) ([]VenueUpdateResult, error)
	// Initialize 将 venues.csv 批量写入存储
	Initialize(ctx context.Context) ([]model.Venue, error)
}

type venueService struct {
	repo   *repository.Repository
	src    source.Source
	logger *zap.Logger
	now    func() time.Time
}

// NewVenueService 创建 VenueService 实例
func NewVenueService(repo *repository.Repository, src source.Source, logger *zap.Logger) VenueService {
	return &venueService{repo: repo, src: src, logger: logger, now: time.Now}
}

// ────────────────────── List ──────────────────────

func (s *venueService) List(ctx context.Context) []model.Venue {
	venues, err := s.repo.Venue.List(ctx)
	if err == nil {
		return venues
	}

	if errors.Is(err, repository.ErrAggregateMissing) {
		s.logger.Info("场地列表未初始化，回退到 CSV")
	} else {
		s.logger.Warn("读取场地存储失败，回退到 CSV", zap.Error(err))
	}
	return s.loadCSV(ctx)
}

// ────────────────────── ListStored ──────────────────────

func (s *venueService) ListStored(ctx context.Context) ([]model.Venue, error) {
	venues, err := s.repo.Venue.List(ctx)
	if errors.Is(err, repository.ErrAggregateMissing) {
		return []model.Venue{}, nil
	}
	if err != nil {
		s.logger.Error("读取场地存储失败", zap.Error(err))
		return nil, upstream(err)
	}
	return venues, nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *venueService) UpdateStatus(ctx context.Context, id, status string) (*model.Venue, error) {
	if err := validateVenueUpdate(id, status); err != nil {
		return nil, err
	}
	return s.apply(ctx, id, status)
}

// ────────────────────── UpdateStatuses ──────────────────────

func (s *venueService) UpdateStatuses(ctx context.Context, updates []VenueStatusUpdate) ([]VenueUpdateResult, error) {
	if len(updates) == 0 {
		return nil, ErrEmptyVenueBatch
	}
	for i, u := range updates {
		if err := validateVenueUpdate(u.ID, u.Status); err != nil {
			return nil, fmt.Errorf("updates[%d]: %w", i, err)
		}
	}

	results := make([]VenueUpdateResult, 0, len(updates))
	for _, u := range updates {
		v, err := s.apply(ctx, u.ID, u.Status)
		if err != nil {
			results = append(results, VenueUpdateResult{ID: u.ID, Error: err.Error()})
			continue
		}
		results = append(results, VenueUpdateResult{ID: u.ID, Success: true, Venue: v})
	}
	return results, nil
}

// ────────────────────── Initialize ──────────────────────

func (s *venueService) Initialize(ctx context.Context) ([]model.Venue, error) {
	text, err := s.src.Read(ctx, source.VenuesFile)
	if err != nil {
		s.logger.Error("读取 venues.csv 失败", zap.Error(err))
		return nil, upstream(err)
	}

	venues := parseVenues(text)
	stamp := response.Timestamp(s.now())
	for i := range venues {
		venues[i].LastUpdated = stamp
	}

	if err := s.repo.Venue.Initialize(ctx, venues); err != nil {
		s.logger.Error("初始化场地存储失败", zap.Error(err))
		return nil, upstream(err)
	}

	s.logger.Info("场地存储已初始化", zap.Int("count", len(venues)))
	return venues, nil
}

// ── 内部辅助方法 ──

func validateVenueUpdate(id, status string) error {
	if id == "" || status == "" {
		return ErrMissingVenueFields
	}
	if !model.ValidVenueStatus(status) {
		return ErrInvalidVenueStatus
	}
	return nil
}

// apply 定位 → 修改状态与 lastUpdated → 主记录 + 聚合列表双写
func (s *venueService) apply(ctx context.Context, id, status string) (*model.Venue, error) {
	v, err := s.repo.Venue.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		s.logger.Error("查询场地失败", zap.String("id", id), zap.Error(err))
		return nil, upstream(err)
	}

	v.Status = status
	v.LastUpdated = response.Timestamp(s.now())

	if err := s.repo.Venue.Save(ctx, v); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		s.logger.Error("更新场地状态失败", zap.String("id", id), zap.Error(err))
		return nil, upstream(err)
	}

	s.logger.Info("场地状态已更新", zap.String("id", id), zap.String("status", status))
	return v, nil
}

func (s *venueService) loadCSV(ctx context.Context) []model.Venue {
	return loadRows(ctx, s.src, source.VenuesFile, mapper.Venue, s.logger)
}

func parseVenues(text string) []model.Venue {
	return csvparse.LoadPositional(text, mapper.Venue)
}

// upstream 将存储 / 数据源故障归类为 ErrUpstream，保留底层错误
func upstream(err error) error {
	if errors.Is(err, pkgerrors.ErrUpstream) {
		return err
	}
	return fmt.Errorf("%w: %w", pkgerrors.ErrUpstream, err)
}
