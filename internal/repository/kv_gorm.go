package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"event-dashboard/backend/internal/model"
)

// gormKV 基于 PostgreSQL kv_entries 表的 KV
type gormKV struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormKV 创建基于 gorm 的 KV
func NewGormKV(db *gorm.DB) KV {
	return &gormKV{db: db, now: time.Now}
}

func (r *gormKV) Get(ctx context.Context, key string) (string, error) {
	var entry model.KVEntry
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		Where("expires_at IS NULL OR expires_at > ?", r.now()).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

func (r *gormKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return upsertEntry(r.db.WithContext(ctx), r.entry(key, value, ttl))
}

func (r *gormKV) Update(ctx context.Context, key string, fn UpdateFunc) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry model.KVEntry
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("key = ?", key).
			First(&entry).Error
		exists := true
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			exists = false
		case err != nil:
			return err
		case entry.Expired(r.now()):
			exists = false
		}

		next, err := fn(entry.Value, exists)
		if err != nil {
			return err
		}

		updated := r.entry(key, next, 0)
		if exists {
			updated.ExpiresAt = entry.ExpiresAt
		}
		return upsertEntry(tx, updated)
	})
	if errors.Is(err, ErrSkipWrite) {
		return nil
	}
	return err
}

func (r *gormKV) entry(key, value string, ttl time.Duration) *model.KVEntry {
	now := r.now()
	e := &model.KVEntry{Key: key, Value: value, UpdatedAt: now}
	if ttl > 0 {
		exp := now.Add(ttl)
		e.ExpiresAt = &exp
	}
	return e
}

func upsertEntry(db *gorm.DB, e *model.KVEntry) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(e).Error
}
