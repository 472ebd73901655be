package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"lavtracker/backend/config"
	"lavtracker/backend/internal/dto"
	"lavtracker/backend/internal/service"
)

type countingSweeper struct {
	calls atomic.Int32
	err   error
}

func (s *countingSweeper) SendReminders(ctx context.Context) (*dto.ReminderResult, error) {
	s.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return nil, context.DeadlineExceeded
	}
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ReminderResult{Success: true, Sent: 1}, nil
}

func TestStartReminderJob_Disabled(t *testing.T) {
	sweeper := &countingSweeper{}
	done := StartReminderJob(context.Background(), &config.ReminderConfig{Enabled: false}, sweeper, zap.NewNop())

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("未启用时应立即返回")
	}
	if sweeper.calls.Load() != 0 {
		t.Error("未启用时不应触发批次")
	}
}

func TestStartReminderJob_TicksUntilCancelled(t *testing.T) {
	sweeper := &countingSweeper{}
	ctx, cancel := context.WithCancel(context.Background())

	done := StartReminderJob(ctx, &config.ReminderConfig{
		Enabled:  true,
		Interval: 10 * time.Millisecond,
		Timeout:  time.Second,
	}, sweeper, zap.NewNop())

	deadline := time.Now().Add(2 * time.Second)
	for sweeper.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("取消后任务应退出")
	}
	if sweeper.calls.Load() < 2 {
		t.Errorf("期望至少触发 2 次，实际 %d", sweeper.calls.Load())
	}
}

func TestRunReminder_LockHeldIsSkipped(t *testing.T) {
	sweeper := &countingSweeper{err: service.ErrReminderInProgress}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	runReminder(ctx, sweeper, zap.NewNop())
	if sweeper.calls.Load() != 1 {
		t.Errorf("期望调用 1 次，实际 %d", sweeper.calls.Load())
	}
}
