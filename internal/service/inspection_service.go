package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"lavtracker/backend/config"
	"lavtracker/backend/internal/dto"
	"lavtracker/backend/internal/model"
	"lavtracker/backend/internal/repository"
	"lavtracker/backend/pkg/mailer"
	"lavtracker/backend/pkg/storage"
)

// ── 巡检流程业务错误 ──

var (
	ErrInvalidImage       = errors.New("invalid image data")
	ErrNoInspectionItems  = errors.New("at least one inspection item is required")
	ErrReminderInProgress = errors.New("reminder sweep already running")
)

const (
	reminderLockKey        = "inspection:reminder"
	defaultReminderTimeout = 2 * time.Minute
)

// SweepLocker 提醒批次的跨进程互斥锁
type SweepLocker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error)
	ReleaseLock(ctx context.Context, key, token string) error
}

// InspectionService 巡检业务接口
type InspectionService interface {
	// Inspect 记录一次不合格巡检，状态置为 inspected，提交后尽力发送告警邮件
	Inspect(ctx context.Context, req *dto.InspectRequest) ([]model.Bathroom, error)
	// Clear 解除巡检状态，状态置为 open
	Clear(ctx context.Context, req *dto.ClearInspectionRequest) ([]model.Bathroom, error)
	// SendReminders 对超过阈值仍未处理的巡检重新发送提醒
	SendReminders(ctx context.Context) (*dto.ReminderResult, error)
}

type inspectionService struct {
	cfg     *config.ReminderConfig
	baseURL string
	repo    *repository.Repository
	mail    mailer.Sender
	photos  storage.PhotoStore
	locker  SweepLocker
	logger  *zap.Logger
	now     func() time.Time
}

// NewInspectionService 创建 InspectionService 实例
// locker 为 nil 时提醒批次不加锁
func NewInspectionService(
	cfg *config.ReminderConfig,
	baseURL string,
	repo *repository.Repository,
	mail mailer.Sender,
	photos storage.PhotoStore,
	locker SweepLocker,
	logger *zap.Logger,
) InspectionService {
	return &inspectionService{
		cfg:     cfg,
		baseURL: baseURL,
		repo:    repo,
		mail:    mail,
		photos:  photos,
		locker:  locker,
		logger:  logger,
		now:     time.Now,
	}
}

// ────────────────────── Inspect ──────────────────────

func (s *inspectionService) Inspect(ctx context.Context, req *dto.InspectRequest) ([]model.Bathroom, error) {
	bathroom, err := s.repo.Bathroom.GetWithBranch(ctx, req.BathroomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBathroomNotFound
		}
		s.logger.Error("查询卫生间失败", zap.Uint("bathroom_id", req.BathroomID), zap.Error(err))
		return nil, err
	}
	if bathroom.LocationID != req.LocationID || !bathroom.Active {
		return nil, ErrBathroomNotFound
	}

	// 1. 去空白后至少保留一项问题
	inspection := &model.Inspection{BathroomID: bathroom.BathroomID, InspectionDate: s.now()}
	for _, reason := range req.Items {
		if reason = strings.TrimSpace(reason); reason != "" {
			inspection.Items = append(inspection.Items, model.InspectionItem{Reason: reason})
		}
	}
	if len(inspection.Items) == 0 {
		return nil, ErrNoInspectionItems
	}

	// 2. 照片先落盘，事务失败时再删除
	imageURL := ""
	if strings.TrimSpace(req.Image) != "" {
		imageURL, err = s.photos.Save(ctx, req.Image)
		if err != nil {
			if errors.Is(err, storage.ErrInvalidImage) {
				return nil, ErrInvalidImage
			}
			s.logger.Error("保存巡检照片失败", zap.Error(err))
			return nil, err
		}
		inspection.ImageURL = imageURL
	}

	// 3. 巡检记录、问题项与状态变更在同一事务内
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Inspection.Create(ctx, inspection); err != nil {
			return err
		}
		return tx.Bathroom.UpdateStatus(ctx, bathroom.BathroomID, model.BathroomStatusInspected)
	})
	if err != nil {
		s.logger.Error("记录巡检失败", zap.Uint("bathroom_id", bathroom.BathroomID), zap.Error(err))
		if imageURL != "" {
			if rmErr := s.photos.Remove(ctx, imageURL); rmErr != nil {
				s.logger.Warn("清理巡检照片失败", zap.String("image", imageURL), zap.Error(rmErr))
			}
		}
		return nil, err
	}

	// 4. 提交后发送告警，失败只记日志
	s.notify(ctx, subjectInspectionFailed, "LavTracker Inspection Alert", bathroom, inspection)

	return s.listLocation(ctx, bathroom.LocationID)
}

// ────────────────────── Clear ──────────────────────

func (s *inspectionService) Clear(ctx context.Context, req *dto.ClearInspectionRequest) ([]model.Bathroom, error) {
	bathroom, err := s.repo.Bathroom.GetByID(ctx, req.BathroomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBathroomNotFound
		}
		s.logger.Error("查询卫生间失败", zap.Uint("bathroom_id", req.BathroomID), zap.Error(err))
		return nil, err
	}
	if bathroom.LocationID != req.LocationID {
		return nil, ErrBathroomNotFound
	}

	if err := s.repo.Bathroom.UpdateStatus(ctx, bathroom.BathroomID, model.BathroomStatusOpen); err != nil {
		s.logger.Error("解除巡检状态失败", zap.Uint("bathroom_id", bathroom.BathroomID), zap.Error(err))
		return nil, err
	}

	return s.listLocation(ctx, bathroom.LocationID)
}

// ────────────────────── SendReminders ──────────────────────

// SendReminders 选出 inspection_date 早于 now-threshold 的巡检逐条发送提醒。
// 单条发送失败不影响其余记录，也不重试；发送成功后刷新 updated_at。
// updated_at 不参与筛选，未解除的巡检在每次批次中都会被再次选中。
func (s *inspectionService) SendReminders(ctx context.Context) (*dto.ReminderResult, error) {
	if s.locker != nil {
		token, ok, err := s.locker.AcquireLock(ctx, reminderLockKey, s.lockTTL())
		switch {
		case err != nil:
			// Redis 不可用时降级为无锁执行
			s.logger.Warn("获取提醒任务锁失败，本次批次不加锁", zap.Error(err))
		case !ok:
			return nil, ErrReminderInProgress
		default:
			defer func() {
				if err := s.locker.ReleaseLock(context.WithoutCancel(ctx), reminderLockKey, token); err != nil {
					s.logger.Warn("释放提醒任务锁失败", zap.Error(err))
				}
			}()
		}
	}

	now := s.now()
	stale, err := s.repo.Inspection.ListStale(ctx, now.Add(-s.threshold()))
	if err != nil {
		s.logger.Error("查询待提醒巡检失败", zap.Error(err))
		return nil, err
	}
	if len(stale) == 0 {
		return &dto.ReminderResult{Success: false}, nil
	}

	result := &dto.ReminderResult{Success: true}
	for i := range stale {
		insp := &stale[i]
		if insp.Bathroom == nil {
			result.Skipped++
			continue
		}

		to, cc := recipients(insp.Bathroom)
		if len(to) == 0 {
			result.Skipped++
			continue
		}

		if err := s.send(ctx, subjectInspectionReminder, "LavTracker Inspection Reminder", to, cc, insp.Bathroom, insp); err != nil {
			result.Failed++
			s.logger.Warn("发送巡检提醒失败", zap.Uint("inspection_id", insp.InspectionID), zap.Error(err))
			continue
		}

		if err := s.repo.Inspection.Touch(ctx, insp.InspectionID, now); err != nil {
			s.logger.Warn("刷新巡检提醒时间失败", zap.Uint("inspection_id", insp.InspectionID), zap.Error(err))
		}
		result.Sent++
	}

	s.logger.Info("巡检提醒批次完成",
		zap.Int("stale", len(stale)),
		zap.Int("sent", result.Sent),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// ── 内部辅助方法 ──

// notify 发送巡检告警，无收件人时跳过，错误只记日志
func (s *inspectionService) notify(ctx context.Context, subject, title string, bathroom *model.Bathroom, insp *model.Inspection) {
	to, cc := recipients(bathroom)
	if len(to) == 0 {
		s.logger.Debug("无通知收件人，跳过巡检告警", zap.Uint("bathroom_id", bathroom.BathroomID))
		return
	}
	if err := s.send(ctx, subject, title, to, cc, bathroom, insp); err != nil {
		s.logger.Warn("发送巡检告警失败",
			zap.Uint("inspection_id", insp.InspectionID),
			zap.Strings("to", to),
			zap.Error(err),
		)
	}
}

func (s *inspectionService) send(ctx context.Context, subject, title string, to, cc []string, bathroom *model.Bathroom, insp *model.Inspection) error {
	html, err := renderInspectionEmail(title, bathroom, insp, s.baseURL)
	if err != nil {
		return err
	}
	return s.mail.Send(ctx, &mailer.Message{To: to, Cc: cc, Subject: subject, HTML: html})
}

func (s *inspectionService) listLocation(ctx context.Context, locationID uint) ([]model.Bathroom, error) {
	bathrooms, err := s.repo.Bathroom.ListByLocation(ctx, locationID)
	if err != nil {
		s.logger.Error("查询卫生间列表失败", zap.Uint("location_id", locationID), zap.Error(err))
		return nil, err
	}
	return bathrooms, nil
}

func (s *inspectionService) threshold() time.Duration {
	if s.cfg == nil || s.cfg.Threshold <= 0 {
		return time.Hour
	}
	return s.cfg.Threshold
}

// lockTTL 锁有效期取批次超时时间，进程崩溃后锁自动过期
func (s *inspectionService) lockTTL() time.Duration {
	if s.cfg == nil || s.cfg.Timeout <= 0 {
		return defaultReminderTimeout
	}
	return s.cfg.Timeout
}
