package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"event-dashboard/backend/config"
)

// ServiceName 写入每条日志的 service 字段
const ServiceName = "event-dashboard"

// NewLogger 根据配置初始化 Zap 日志实例
// 每条日志带 service 字段，fields 追加部署相关的固定字段（如场地存储、记分板来源）
func NewLogger(cfg *config.LogConfig, fields ...zap.Field) (*zap.Logger, error) {
	zapCfg, err := buildConfig(cfg)
	if err != nil {
		return nil, err
	}

	base := append([]zap.Field{zap.String("service", ServiceName)}, fields...)
	logger, err := zapCfg.Build(zap.Fields(base...))
	if err != nil {
		return nil, fmt.Errorf("初始化日志器失败: %w", err)
	}

	return logger, nil
}

// buildConfig json 格式用 ISO8601 时间戳，与接口返回的 timestamp 便于对照
func buildConfig(cfg *config.LogConfig) (zap.Config, error) {
	var zapCfg zap.Config

	switch cfg.Format {
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case "json", "":
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.TimeKey = "time"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return zapCfg, fmt.Errorf("无效的日志格式 %q（json | console）", cfg.Format)
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return zapCfg, fmt.Errorf("无效的日志级别 %q: %w", cfg.Level, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg, nil
}
