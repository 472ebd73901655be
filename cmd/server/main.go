package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lavtracker/backend/config"
	"lavtracker/backend/internal/api/handler"
	"lavtracker/backend/internal/api/router"
	"lavtracker/backend/internal/jobs"
	"lavtracker/backend/internal/model"
	"lavtracker/backend/internal/repository"
	"lavtracker/backend/internal/service"
	"lavtracker/backend/pkg/database"
	"lavtracker/backend/pkg/jwt"
	applogger "lavtracker/backend/pkg/logger"
	"lavtracker/backend/pkg/mailer"
	"lavtracker/backend/pkg/redis"
	"lavtracker/backend/pkg/storage"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（默认查找 ./config/config.yaml）")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	logger.Info("数据库连接成功")

	// 3.1 执行数据库迁移
	if err := database.Migrate(db, cfg.Database.Driver, model.All(), logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，Token 黑名单、限流与提醒互斥将不可用", zap.Error(err))
		rdb = nil
	}

	// 5. 基础组件
	jwtMgr := jwt.NewManager(&cfg.Auth)
	mail := mailer.New(&cfg.Mail, logger)
	photos := storage.NewLocalPhotoStore(&cfg.Storage)
	if err := os.MkdirAll(photos.Dir(), 0o755); err != nil {
		logger.Fatal("创建巡检照片目录失败", zap.String("dir", photos.Dir()), zap.Error(err))
	}

	// 6. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, mail, photos, logger)

	var pinger handler.Pinger
	if rdb != nil {
		pinger = rdb
	}
	h := handler.NewHandler(svc, handler.NewHealthHandler(db, pinger))

	// 7. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. 后台任务
	jobCtx, stopJobs := context.WithCancel(context.Background())
	jobDone := jobs.StartReminderJob(jobCtx, &cfg.Reminder, svc.Inspection, logger)

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	stopJobs()
	select {
	case <-jobDone:
	case <-ctx.Done():
		logger.Warn("等待后台任务退出超时")
	}

	// 关闭数据库连接
	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
