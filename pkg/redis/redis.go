package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"event-dashboard/backend/config"
	pkgerrors "event-dashboard/backend/pkg/errors"
)

// ErrNil 键不存在
var ErrNil = goredis.Nil

// updateMaxRetries 乐观事务冲突时的最大重试次数
const updateMaxRetries = 5

// Client Redis 客户端封装
// 用于场地状态 KV、记分板缓存与写接口限流
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 解析连接 URL、创建连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	opt, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("Redis URL 解析失败: %w", err)
	}

	rdb := goredis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", opt.Addr), zap.Int("db", opt.DB))

	return &Client{rdb: rdb, logger: logger}, nil
}

// NewFromClient 包装已有的 go-redis 客户端（测试与复用连接池时使用）
func NewFromClient(rdb *goredis.Client, logger *zap.Logger) *Client {
	return &Client{rdb: rdb, logger: logger}
}

// ── 基础读写 ──

// Get 读取字符串值，键不存在返回 ErrNil
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.rdb.Get(ctx, key).Result()
}

// Set 写入字符串值；ttl<=0 表示永不过期
func (c *Client) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Update 对单个键做原子读-改-写（WATCH/MULTI 乐观事务）
// fn 收到当前值（不存在时 exists=false），返回新值；fn 返回错误则放弃写入。
// 冲突重试耗尽后返回 ErrOptimisticLock。
func (c *Client) Update(ctx context.Context, key string, fn func(current string, exists bool) (string, error)) error {
	txf := func(tx *goredis.Tx) error {
		cur, err := tx.Get(ctx, key).Result()
		exists := true
		if errors.Is(err, goredis.Nil) {
			exists = false
		} else if err != nil {
			return err
		}

		next, err := fn(cur, exists)
		if err != nil {
			return err
		}

		// 保留原有 TTL
		var ttl time.Duration = goredis.KeepTTL
		if !exists {
			ttl = 0
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, next, ttl)
			return nil
		})
		return err
	}

	for i := 0; i < updateMaxRetries; i++ {
		err := c.rdb.Watch(ctx, txf, key)
		if errors.Is(err, goredis.TxFailedErr) {
			c.logger.Debug("Redis 乐观事务冲突，重试", zap.String("key", key), zap.Int("attempt", i+1))
			continue
		}
		return err
	}
	return pkgerrors.ErrOptimisticLock
}

// ── 限流 ──

// ErrInvalidWindow 限流窗口必须为正
var ErrInvalidWindow = errors.New("rate limit window must be positive")

// CheckRateLimit 固定窗口计数限流，返回本次请求是否放行
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if window <= 0 {
		return false, ErrInvalidWindow
	}
	bucket := strconv.FormatInt(time.Now().UnixNano()/int64(window), 10)
	k := key + ":" + bucket

	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(limit), nil
}

// Ping 健康检查
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
