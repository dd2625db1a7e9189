package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"event-dashboard/backend/config"
	"event-dashboard/backend/internal/api/handler"
	"event-dashboard/backend/internal/api/middleware"
	"event-dashboard/backend/internal/api/router"
	"event-dashboard/backend/internal/repository"
	"event-dashboard/backend/internal/service"
	"event-dashboard/backend/internal/sheets"
	"event-dashboard/backend/internal/source"
	"event-dashboard/backend/pkg/database"
	applogger "event-dashboard/backend/pkg/logger"
	"event-dashboard/backend/pkg/redis"
)

func main() {
	configPath := flag.StringP("config", "c", "", "配置文件路径（默认查找 ./config/config.yaml）")
	flag.Parse()

	// 0. 读取 .env（可不存在）
	_ = godotenv.Load()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log,
		zap.String("venue_store", cfg.Venue.Store),
		zap.String("scoreboard_source", cfg.Scoreboard.Source),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("data_source", cfg.Data.Source),
	)

	// 3. 连接 Redis（可选：连接失败时降级运行，KV 操作返回存储不可用）
	var (
		rdb     *redis.Client
		cache   repository.KV
		limiter middleware.RateLimiter
	)
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，缓存与限流将不可用", zap.Error(err))
		rdb = nil
		cache = repository.NewUnavailableKV(err)
	} else {
		cache = repository.NewRedisKV(rdb)
		limiter = rdb
	}

	// 4. 场地存储
	venueStore, closeStore := openVenueStore(cfg, cache, logger)
	defer closeStore()

	// 5. 表格客户端（可选：缺少凭据时记分板降级为 CSV）
	var reader sheets.ValuesReader
	if cfg.Scoreboard.Source == "sheets" {
		reader, err = sheets.New(context.Background(), &cfg.Sheets, logger)
		if err != nil {
			logger.Warn("表格客户端不可用，记分板回退到 scoreboard.csv", zap.Error(err))
			reader = nil
		}
	}

	// 6. 依赖注入: Repository → Service → Handler
	src := source.New(&cfg.Data)
	repo := repository.NewRepository(venueStore, cache)
	svc := service.NewService(cfg, repo, src, reader, logger)
	h := handler.NewHandler(svc)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, limiter, logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}

// openVenueStore 按 venue.store 选择场地存储，返回的 close 函数用于释放数据库连接
// 数据库不可用时降级为不可用存储：读路径回退 CSV，写路径返回 500
func openVenueStore(cfg *config.Config, cache repository.KV, logger *zap.Logger) (repository.VenueStore, func()) {
	switch cfg.Venue.Store {
	case "postgres":
		db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
		if err != nil {
			return unavailableVenueStore(logger, "数据库连接失败，场地存储不可用", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return unavailableVenueStore(logger, "获取底层 sql.DB 失败，场地存储不可用", err)
		}
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			sqlDB.Close()
			return unavailableVenueStore(logger, "数据库迁移失败，场地存储不可用", err)
		}
		logger.Info("场地状态使用 PostgreSQL 存储")
		return repository.NewKVVenueStore(repository.NewGormKV(db)), func() { sqlDB.Close() }
	case "file":
		path := source.NewFileSource(cfg.Data.Dir).Path(source.VenuesFile)
		logger.Info("场地状态直接写回 venues.csv", zap.String("path", path))
		return repository.NewFileVenueStore(path), func() {}
	default:
		return repository.NewKVVenueStore(cache), func() {}
	}
}

func unavailableVenueStore(logger *zap.Logger, msg string, err error) (repository.VenueStore, func()) {
	logger.Warn(msg, zap.Error(err))
	return repository.NewKVVenueStore(repository.NewUnavailableKV(err)), func() {}
}
