package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"event-dashboard/backend/internal/source"
	"event-dashboard/backend/pkg/csvparse"
)

// ── 只读数据加载（静默降级） ──
//
// 读取失败一律记录日志并视为"无数据"，调用方无法也不需要区分两者。

func readText(ctx context.Context, src source.Source, name string, logger *zap.Logger) string {
	text, err := src.Read(ctx, name)
	if err != nil {
		logger.Error("读取数据文件失败", zap.String("file", name), zap.Error(err))
		return ""
	}
	return text
}

// loadRecords 按 Schema 加载表头模式文件；缺失列只告警
func loadRecords[T any](ctx context.Context, src source.Source, name string, schema *csvparse.Schema, mapper func(csvparse.Values) T, logger *zap.Logger) []T {
	res := csvparse.LoadSchema(readText(ctx, src, name, logger), schema, mapper)
	if len(res.Missing) > 0 {
		logger.Warn("数据文件缺少列，使用缺省值",
			zap.String("file", name),
			zap.Strings("missing", res.Missing),
		)
	}
	return res.Items
}

// loadRows 加载列序模式文件
func loadRows[T any](ctx context.Context, src source.Source, name string, mapper func(csvparse.Row) T, logger *zap.Logger) []T {
	return csvparse.LoadPositional(readText(ctx, src, name, logger), mapper)
}

// matchesQuery 任一字段包含关键字（不区分大小写）即命中；空关键字全部命中
func matchesQuery(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
