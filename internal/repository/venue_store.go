package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"event-dashboard/backend/internal/model"
)

// KV 中的场地键
const (
	VenueKeyPrefix = "venue:"
	VenueListKey   = "venues:list"
)

var (
	// ErrRecordNotFound 指定 id 的记录不存在
	ErrRecordNotFound = errors.New("record not found")
	// ErrAggregateMissing 聚合列表尚未初始化
	ErrAggregateMissing = errors.New("aggregate list not initialized")
)

// VenueStore 场地状态存储接口
//
// 同一部署中只启用一种实现（KV 或 CSV 文件）。
// Save 为双写：先覆盖主记录，再替换聚合列表中 id 相同的条目；
// 主记录写入成功而聚合写入失败时两者会暂时不一致，不做补偿。
type VenueStore interface {
	List(ctx context.Context) ([]model.Venue, error)
	Get(ctx context.Context, id string) (*model.Venue, error)
	Save(ctx context.Context, venue *model.Venue) error
	Initialize(ctx context.Context, venues []model.Venue) error
}

// ── KV 实现 ──

type kvVenueStore struct {
	kv KV
}

// NewKVVenueStore 基于 KV（Redis / PostgreSQL）的场地存储
func NewKVVenueStore(kv KV) VenueStore {
	return &kvVenueStore{kv: kv}
}

func venueKey(id string) string {
	return VenueKeyPrefix + id
}

func (s *kvVenueStore) List(ctx context.Context) ([]model.Venue, error) {
	raw, err := s.kv.Get(ctx, VenueListKey)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, ErrAggregateMissing
	}
	if err != nil {
		return nil, err
	}

	venues := []model.Venue{}
	if err := json.Unmarshal([]byte(raw), &venues); err != nil {
		return nil, fmt.Errorf("解析 %s 失败: %w", VenueListKey, err)
	}
	return venues, nil
}

func (s *kvVenueStore) Get(ctx context.Context, id string) (*model.Venue, error) {
	raw, err := s.kv.Get(ctx, venueKey(id))
	if errors.Is(err, ErrKeyNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	var v model.Venue
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("解析 %s 失败: %w", venueKey(id), err)
	}
	return &v, nil
}

func (s *kvVenueStore) Save(ctx context.Context, venue *model.Venue) error {
	b, err := json.Marshal(venue)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, venueKey(venue.ID), string(b), 0); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", venueKey(venue.ID), err)
	}

	// 聚合列表的读-改-写在 KV 内原子完成；列表不存在时不创建
	err = s.kv.Update(ctx, VenueListKey, func(cur string, exists bool) (string, error) {
		if !exists {
			return "", ErrSkipWrite
		}
		var list []model.Venue
		if err := json.Unmarshal([]byte(cur), &list); err != nil {
			return "", fmt.Errorf("解析 %s 失败: %w", VenueListKey, err)
		}
		for i := range list {
			if list[i].ID == venue.ID {
				list[i] = *venue
			}
		}
		out, err := json.Marshal(list)
		return string(out), err
	})
	if err != nil {
		return fmt.Errorf("更新 %s 失败: %w", VenueListKey, err)
	}
	return nil
}

func (s *kvVenueStore) Initialize(ctx context.Context, venues []model.Venue) error {
	for i := range venues {
		b, err := json.Marshal(&venues[i])
		if err != nil {
			return err
		}
		if err := s.kv.Set(ctx, venueKey(venues[i].ID), string(b), 0); err != nil {
			return fmt.Errorf("写入 %s 失败: %w", venueKey(venues[i].ID), err)
		}
	}

	if venues == nil {
		venues = []model.Venue{}
	}
	b, err := json.Marshal(venues)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, VenueListKey, string(b), 0)
}
