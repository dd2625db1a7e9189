package repository

import (
	"context"
	"errors"
	"time"

	pkgerrors "event-dashboard/backend/pkg/errors"
	"event-dashboard/backend/pkg/redis"
)

// ErrKeyNotFound 键不存在（或已过期）
var ErrKeyNotFound = errors.New("key not found")

// UpdateFunc 读-改-写回调：收到当前值（exists=false 表示不存在），返回新值
// 返回 ErrSkipWrite 时放弃写入且 Update 返回 nil
type UpdateFunc func(current string, exists bool) (string, error)

// ErrSkipWrite 由 UpdateFunc 返回，表示无需写入
var ErrSkipWrite = errors.New("skip write")

// KV 键值存储接口（场地状态与记分板缓存共用）
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	// Set ttl<=0 表示永不过期
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Update 对单键的原子读-改-写
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// ── Redis 实现 ──

type redisKV struct {
	client *redis.Client
}

// NewRedisKV 基于 Redis 的 KV
func NewRedisKV(client *redis.Client) KV {
	return &redisKV{client: client}
}

func (r *redisKV) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, key)
	if errors.Is(err, redis.ErrNil) {
		return "", ErrKeyNotFound
	}
	return v, err
}

func (r *redisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl)
}

func (r *redisKV) Update(ctx context.Context, key string, fn UpdateFunc) error {
	err := r.client.Update(ctx, key, func(cur string, exists bool) (string, error) {
		return fn(cur, exists)
	})
	if errors.Is(err, ErrSkipWrite) {
		return nil
	}
	return err
}

// ── 不可用实现（后端启动时连接失败的降级） ──

type unavailableKV struct {
	cause error
}

// NewUnavailableKV 所有操作都返回 ErrStoreUnavailable 的 KV
func NewUnavailableKV(cause error) KV {
	return &unavailableKV{cause: cause}
}

func (u *unavailableKV) err() error {
	if u.cause == nil {
		return pkgerrors.ErrStoreUnavailable
	}
	return errors.Join(pkgerrors.ErrStoreUnavailable, u.cause)
}

func (u *unavailableKV) Get(context.Context, string) (string, error) { return "", u.err() }

func (u *unavailableKV) Set(context.Context, string, string, time.Duration) error { return u.err() }

func (u *unavailableKV) Update(context.Context, string, UpdateFunc) error { return u.err() }
