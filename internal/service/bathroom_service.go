package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"lavtracker/backend/internal/dto"
	"lavtracker/backend/internal/model"
	"lavtracker/backend/internal/repository"
)

// ── 卫生间模块业务错误 ──

var (
	ErrBathroomNotFound = errors.New("bathroom not found")
)

// BathroomService 卫生间业务接口
//
// 排序约定：同一区域内有效卫生间的 order 在每次增删改后恒为 1..N。
// 每个写操作与其后的重排在同一事务内完成。
type BathroomService interface {
	List(ctx context.Context, locationID uint) ([]model.Bathroom, error)
	Create(ctx context.Context, req *dto.CreateBathroomRequest) (*model.Bathroom, error)
	Update(ctx context.Context, req *dto.UpdateBathroomRequest) ([]model.Bathroom, error)
	Delete(ctx context.Context, bathroomID, locationID uint) ([]model.Bathroom, error)
}

type bathroomService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBathroomService 创建 BathroomService 实例
func NewBathroomService(repo *repository.Repository, logger *zap.Logger) BathroomService {
	return &bathroomService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *bathroomService) List(ctx context.Context, locationID uint) ([]model.Bathroom, error) {
	bathrooms, err := s.repo.Bathroom.ListByLocation(ctx, locationID)
	if err != nil {
		s.logger.Error("查询卫生间列表失败", zap.Uint("location_id", locationID), zap.Error(err))
		return nil, err
	}
	return bathrooms, nil
}

// ────────────────────── Create ──────────────────────

func (s *bathroomService) Create(ctx context.Context, req *dto.CreateBathroomRequest) (*model.Bathroom, error) {
	loc, err := s.repo.Location.GetByID(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		s.logger.Error("查询区域失败", zap.Uint("location_id", req.LocationID), zap.Error(err))
		return nil, err
	}
	if !loc.Active {
		return nil, ErrLocationNotFound
	}

	taskIDs := dto.TaskIDs(req.TaskIDs)
	bathroom := &model.Bathroom{
		LocationID:        loc.LocationID,
		Name:              strings.TrimSpace(req.Name),
		Gender:            strings.TrimSpace(req.Gender),
		Status:            model.BathroomStatusOpen,
		NotificationEmail: optionalString(req.NotificationEmail),
		Active:            true,
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := ensureTasksExist(ctx, tx, taskIDs); err != nil {
			return err
		}

		// 未指定位置时追加到末尾
		if req.Order != nil {
			bathroom.Order = *req.Order
		} else {
			maxOrder, err := tx.Bathroom.MaxOrder(ctx, loc.LocationID)
			if err != nil {
				return err
			}
			bathroom.Order = maxOrder + 1
		}

		if err := tx.Bathroom.Create(ctx, bathroom); err != nil {
			return err
		}
		if err := tx.Bathroom.ReplaceTasks(ctx, bathroom.BathroomID, taskIDs); err != nil {
			return err
		}
		return tx.Bathroom.Resequence(ctx, loc.LocationID)
	})
	if err != nil {
		if !errors.Is(err, ErrTaskNotFound) {
			s.logger.Error("创建卫生间失败", zap.Uint("location_id", loc.LocationID), zap.Error(err))
		}
		return nil, err
	}

	created, err := s.repo.Bathroom.GetView(ctx, bathroom.BathroomID)
	if err != nil {
		s.logger.Error("查询新建卫生间失败", zap.Uint("bathroom_id", bathroom.BathroomID), zap.Error(err))
		return nil, err
	}
	return created, nil
}

// ────────────────────── Update ──────────────────────

// Update 更新卫生间信息；order 变化时先平移区间内的其他卫生间：
//   - next > prev：(prev, next] 内的卫生间 order 减 1
//   - next < prev：[next, prev) 内的卫生间 order 加 1
func (s *bathroomService) Update(ctx context.Context, req *dto.UpdateBathroomRequest) ([]model.Bathroom, error) {
	bathroom, err := s.getInLocation(ctx, req.BathroomID, req.LocationID)
	if err != nil {
		return nil, err
	}

	var taskIDs []uint
	if req.Tasks != nil {
		taskIDs = dto.TaskIDs(*req.Tasks)
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := ensureTasksExist(ctx, tx, taskIDs); err != nil {
			return err
		}

		if req.Order != nil && *req.Order != bathroom.Order {
			var err error
			prev, next := bathroom.Order, *req.Order
			if next > prev {
				err = tx.Bathroom.ShiftOrders(ctx, bathroom.LocationID, prev+1, next, -1)
			} else {
				err = tx.Bathroom.ShiftOrders(ctx, bathroom.LocationID, next, prev-1, 1)
			}
			if err != nil {
				return err
			}
			bathroom.Order = next
		}

		if req.Name != nil {
			bathroom.Name = strings.TrimSpace(*req.Name)
		}
		if req.Gender != nil {
			bathroom.Gender = strings.TrimSpace(*req.Gender)
		}
		if req.NotificationEmail != nil {
			bathroom.NotificationEmail = optionalString(*req.NotificationEmail)
		}

		if err := tx.Bathroom.Update(ctx, bathroom); err != nil {
			return err
		}
		if req.Tasks != nil {
			if err := tx.Bathroom.ReplaceTasks(ctx, bathroom.BathroomID, taskIDs); err != nil {
				return err
			}
		}
		return tx.Bathroom.Resequence(ctx, bathroom.LocationID)
	})
	if err != nil {
		if !errors.Is(err, ErrTaskNotFound) {
			s.logger.Error("更新卫生间失败", zap.Uint("bathroom_id", req.BathroomID), zap.Error(err))
		}
		return nil, err
	}

	return s.List(ctx, bathroom.LocationID)
}

// ────────────────────── Delete ──────────────────────

func (s *bathroomService) Delete(ctx context.Context, bathroomID, locationID uint) ([]model.Bathroom, error) {
	bathroom, err := s.getInLocation(ctx, bathroomID, locationID)
	if err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Bathroom.Delete(ctx, bathroom.BathroomID); err != nil {
			return err
		}
		return tx.Bathroom.Resequence(ctx, bathroom.LocationID)
	})
	if err != nil {
		s.logger.Error("删除卫生间失败", zap.Uint("bathroom_id", bathroomID), zap.Error(err))
		return nil, err
	}

	return s.List(ctx, bathroom.LocationID)
}

// ── 内部辅助方法 ──

// getInLocation 查询卫生间并校验其属于 locationID
func (s *bathroomService) getInLocation(ctx context.Context, bathroomID, locationID uint) (*model.Bathroom, error) {
	bathroom, err := s.repo.Bathroom.GetByID(ctx, bathroomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBathroomNotFound
		}
		s.logger.Error("查询卫生间失败", zap.Uint("bathroom_id", bathroomID), zap.Error(err))
		return nil, err
	}
	if bathroom.LocationID != locationID {
		return nil, ErrBathroomNotFound
	}
	return bathroom, nil
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
