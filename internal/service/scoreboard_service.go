package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"event-dashboard/backend/internal/model"
	"event-dashboard/backend/internal/repository"
	"event-dashboard/backend/pkg/response"
)

// ScoreboardCacheKey 记分板缓存键
const ScoreboardCacheKey = "scoreboard:data"

// ScoreboardResult 记分板读取结果
type ScoreboardResult struct {
	Data      []model.ScoreboardItem
	Cached    bool
	Warning   string // 缓存故障时的提示，主数据仍然有效
	Timestamp string
}

// ScoreboardService 记分板业务接口
//
// 旁路缓存：先读 scoreboard:data，命中直接返回；未命中时调用 Aggregator，
// 结果按 TTL 写回缓存。缓存读写失败不影响主流程，只在 Warning 中提示。
type ScoreboardService interface {
	Get(ctx context.Context) (*ScoreboardResult, error)
}

type scoreboardService struct {
	repo       *repository.Repository
	aggregator Aggregator
	ttl        time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewScoreboardService 创建 ScoreboardService 实例
func NewScoreboardService(repo *repository.Repository, aggregator Aggregator, ttl time.Duration, logger *zap.Logger) ScoreboardService {
	return &scoreboardService{
		repo:       repo,
		aggregator: aggregator,
		ttl:        ttl,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *scoreboardService) Get(ctx context.Context) (*ScoreboardResult, error) {
	var warning string

	data, err := s.readCache(ctx)
	switch {
	case err == nil:
		return &ScoreboardResult{Data: data, Cached: true, Timestamp: response.Timestamp(s.now())}, nil
	case errors.Is(err, repository.ErrKeyNotFound):
	default:
		s.logger.Warn("读取记分板缓存失败", zap.Error(err))
		warning = "cache read failed: " + err.Error()
	}

	data, err = s.aggregator.Aggregate(ctx)
	if err != nil {
		s.logger.Error("聚合记分板数据失败", zap.Error(err))
		return nil, upstream(err)
	}

	if err := s.writeCache(ctx, data); err != nil {
		s.logger.Warn("写入记分板缓存失败", zap.Error(err))
		if warning == "" {
			warning = "cache write failed: " + err.Error()
		}
	}

	return &ScoreboardResult{
		Data:      data,
		Cached:    false,
		Warning:   warning,
		Timestamp: response.Timestamp(s.now()),
	}, nil
}

// ── 内部辅助方法 ──

func (s *scoreboardService) readCache(ctx context.Context) ([]model.ScoreboardItem, error) {
	raw, err := s.repo.Cache.Get(ctx, ScoreboardCacheKey)
	if err != nil {
		return nil, err
	}
	data := []model.ScoreboardItem{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *scoreboardService) writeCache(ctx context.Context, data []model.ScoreboardItem) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.repo.Cache.Set(ctx, ScoreboardCacheKey, string(b), s.ttl)
}
