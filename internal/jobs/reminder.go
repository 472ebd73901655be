package jobs

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"lavtracker/backend/config"
	"lavtracker/backend/internal/dto"
	"lavtracker/backend/internal/service"
)

// ReminderSweeper 执行一次巡检提醒批次
type ReminderSweeper interface {
	SendReminders(ctx context.Context) (*dto.ReminderResult, error)
}

// StartReminderJob 按固定间隔触发巡检提醒批次，ctx 取消后退出
// 返回的 channel 在后台 goroutine 退出后关闭；未启用时立即关闭
func StartReminderJob(ctx context.Context, cfg *config.ReminderConfig, sweeper ReminderSweeper, logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	if !cfg.Enabled {
		close(done)
		return done
	}
	if sweeper == nil {
		logger.Warn("巡检提醒任务未启动: 未配置提醒服务")
		close(done)
		return done
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	logger.Info("巡检提醒任务已启动", zap.Duration("interval", interval), zap.Duration("threshold", cfg.Threshold))

	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tickCtx, cancel := context.WithTimeout(ctx, timeout)
				runReminder(tickCtx, sweeper, logger)
				cancel()
			}
		}
	}()
	return done
}

func runReminder(ctx context.Context, sweeper ReminderSweeper, logger *zap.Logger) {
	result, err := sweeper.SendReminders(ctx)
	if err != nil {
		if errors.Is(err, service.ErrReminderInProgress) {
			logger.Debug("巡检提醒批次已在其他实例运行，跳过")
			return
		}
		logger.Error("巡检提醒批次失败", zap.Error(err))
		return
	}
	if result.Sent > 0 || result.Failed > 0 {
		logger.Info("巡检提醒批次完成",
			zap.Int("sent", result.Sent),
			zap.Int("skipped", result.Skipped),
			zap.Int("failed", result.Failed),
		)
	}
}
