package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// healthPath 探活请求频繁，只在 debug 级别记录
const healthPath = "/health"

// Logger 请求日志中间件（基于 Zap 结构化日志）
// route 记录路由模板，未匹配时为 "unmatched"；被限流的写请求单独标记
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.String("ip", c.ClientIP()),
			zap.Int("bytes", c.Writer.Size()),
			zap.Duration("latency", time.Since(start)),
		}
		if rid := c.GetString(requestIDKey); rid != "" {
			fields = append(fields, zap.String("request_id", rid))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("请求处理失败", fields...)
		case status == http.StatusTooManyRequests:
			logger.Warn("写请求被限流", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("客户端错误", fields...)
		case route == healthPath:
			logger.Debug("探活", fields...)
		default:
			logger.Info("请求完成", fields...)
		}
	}
}
