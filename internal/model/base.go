package model

import "time"

// KVEntry 通用键值表，对应 kv_entries（PostgreSQL 作为 KV 后端时使用）
type KVEntry struct {
	Key       string     `gorm:"type:varchar(200);primaryKey"       json:"key"`
	Value     string     `gorm:"type:text;not null"                 json:"value"`
	ExpiresAt *time.Time `gorm:"index"                              json:"expires_at,omitempty"` // nil 表示永不过期
	UpdatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName 指定表名
func (KVEntry) TableName() string { return "kv_entries" }

// Expired 判断条目在 now 时是否已过期
func (e *KVEntry) Expired(now time.Time) bool {
	return e.ExpiresAt != nil && !now.Before(*e.ExpiresAt)
}
