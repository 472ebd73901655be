package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lavtracker/backend/internal/model"
)

// 卫生间视图中附带的最近清洁记录条数
const recentCleaningLimit = 10

// BathroomRepository 卫生间数据访问接口
type BathroomRepository interface {
	Create(ctx context.Context, bathroom *model.Bathroom) error
	GetByID(ctx context.Context, id uint) (*model.Bathroom, error)
	// GetWithBranch 预加载 Location.Branch，用于解析通知收件人
	GetWithBranch(ctx context.Context, id uint) (*model.Bathroom, error)
	Update(ctx context.Context, bathroom *model.Bathroom) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error

	// ── 排序维护 ──
	MaxOrder(ctx context.Context, locationID uint) (int, error)
	// ShiftOrders 同一区域内 order ∈ [from, to] 的有效卫生间整体偏移 delta
	ShiftOrders(ctx context.Context, locationID uint, from, to, delta int) error
	// Resequence 按 (order, bathroom_id) 升序将有效卫生间重排为 1..N
	Resequence(ctx context.Context, locationID uint) error

	ReplaceTasks(ctx context.Context, bathroomID uint, taskIDs []uint) error
	// ListByLocation 有效卫生间完整视图：任务清单、最近清洁记录、最近一次巡检
	ListByLocation(ctx context.Context, locationID uint) ([]model.Bathroom, error)
	// GetView 单个卫生间完整视图（不过滤 active）
	GetView(ctx context.Context, id uint) (*model.Bathroom, error)
}

type bathroomRepo struct {
	db *gorm.DB
}

// NewBathroomRepo 创建 BathroomRepository 实例
func NewBathroomRepo(db *gorm.DB) BathroomRepository {
	return &bathroomRepo{db: db}
}

func (r *bathroomRepo) Create(ctx context.Context, bathroom *model.Bathroom) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(bathroom).Error
}

func (r *bathroomRepo) GetByID(ctx context.Context, id uint) (*model.Bathroom, error) {
	var bathroom model.Bathroom
	err := r.db.WithContext(ctx).
		Where("bathroom_id = ?", id).
		First(&bathroom).Error
	if err != nil {
		return nil, err
	}
	return &bathroom, nil
}

func (r *bathroomRepo) GetWithBranch(ctx context.Context, id uint) (*model.Bathroom, error) {
	var bathroom model.Bathroom
	err := r.db.WithContext(ctx).
		Preload("Location.Branch").
		Where("bathroom_id = ?", id).
		First(&bathroom).Error
	if err != nil {
		return nil, err
	}
	return &bathroom, nil
}

// Update 只写可编辑字段，状态由清洁与巡检流程单独维护
func (r *bathroomRepo) Update(ctx context.Context, bathroom *model.Bathroom) error {
	return r.db.WithContext(ctx).
		Model(bathroom).
		Select("name", "gender", "display_order", "notification_email", "updated_at").
		Updates(bathroom).Error
}

func (r *bathroomRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.Bathroom{}).
		Where("bathroom_id = ?", id).
		Update("status", status).Error
}

// Delete 硬删除卫生间及其清单、清洁与巡检记录
func (r *bathroomRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := tx.Model(&model.Bathroom{}).Select("bathroom_id").Where("bathroom_id = ?", id)
		if err := deleteBathroomChildren(tx, ids); err != nil {
			return err
		}
		return tx.Where("bathroom_id = ?", id).Delete(&model.Bathroom{}).Error
	})
}

func (r *bathroomRepo) MaxOrder(ctx context.Context, locationID uint) (int, error) {
	var maxOrder int
	err := r.db.WithContext(ctx).
		Model(&model.Bathroom{}).
		Where("location_id = ? AND active = ?", locationID, true).
		Select("COALESCE(MAX(display_order), 0)").
		Scan(&maxOrder).Error
	return maxOrder, err
}

func (r *bathroomRepo) ShiftOrders(ctx context.Context, locationID uint, from, to, delta int) error {
	return r.db.WithContext(ctx).
		Model(&model.Bathroom{}).
		Where("location_id = ? AND active = ? AND display_order BETWEEN ? AND ?", locationID, true, from, to).
		Update("display_order", gorm.Expr("display_order + ?", delta)).Error
}

func (r *bathroomRepo) Resequence(ctx context.Context, locationID uint) error {
	var bathrooms []model.Bathroom
	err := r.db.WithContext(ctx).
		Select("bathroom_id", "display_order").
		Where("location_id = ? AND active = ?", locationID, true).
		Order("display_order ASC, bathroom_id ASC").
		Find(&bathrooms).Error
	if err != nil {
		return err
	}

	for i, b := range bathrooms {
		want := i + 1
		if b.Order == want {
			continue
		}
		err := r.db.WithContext(ctx).
			Model(&model.Bathroom{}).
			Where("bathroom_id = ?", b.BathroomID).
			Update("display_order", want).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *bathroomRepo) ReplaceTasks(ctx context.Context, bathroomID uint, taskIDs []uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("bathroom_id = ?", bathroomID).Delete(&model.BathroomTask{}).Error; err != nil {
		return err
	}
	if len(taskIDs) == 0 {
		return nil
	}

	links := make([]model.BathroomTask, 0, len(taskIDs))
	for _, id := range taskIDs {
		links = append(links, model.BathroomTask{BathroomID: bathroomID, TaskID: id})
	}
	return db.Omit(clause.Associations).Create(&links).Error
}

func (r *bathroomRepo) ListByLocation(ctx context.Context, locationID uint) ([]model.Bathroom, error) {
	var bathrooms []model.Bathroom
	err := r.db.WithContext(ctx).
		Preload("BathroomTasks.Task").
		Where("location_id = ? AND active = ?", locationID, true).
		Order("display_order ASC, bathroom_id ASC").
		Find(&bathrooms).Error
	if err != nil {
		return nil, err
	}

	for i := range bathrooms {
		if err := r.loadHistory(ctx, &bathrooms[i]); err != nil {
			return nil, err
		}
	}
	return bathrooms, nil
}

func (r *bathroomRepo) GetView(ctx context.Context, id uint) (*model.Bathroom, error) {
	var bathroom model.Bathroom
	err := r.db.WithContext(ctx).
		Preload("BathroomTasks.Task").
		Where("bathroom_id = ?", id).
		First(&bathroom).Error
	if err != nil {
		return nil, err
	}
	if err := r.loadHistory(ctx, &bathroom); err != nil {
		return nil, err
	}
	return &bathroom, nil
}

// loadHistory 逐个卫生间加载历史记录
// Preload 的 Limit 作用于整批子记录而非每个父记录，因此不能直接 Preload
func (r *bathroomRepo) loadHistory(ctx context.Context, b *model.Bathroom) error {
	var cleanings []model.Cleaning
	err := r.db.WithContext(ctx).
		Preload("Tasks.Task").
		Preload("User").
		Where("bathroom_id = ?", b.BathroomID).
		Order("created_at DESC, cleaning_id DESC").
		Limit(recentCleaningLimit).
		Find(&cleanings).Error
	if err != nil {
		return err
	}

	var inspections []model.Inspection
	err = r.db.WithContext(ctx).
		Preload("Items").
		Where("bathroom_id = ?", b.BathroomID).
		Order("inspection_id DESC").
		Limit(1).
		Find(&inspections).Error
	if err != nil {
		return err
	}

	b.Cleanings = cleanings
	b.Inspections = inspections
	return nil
}

// deleteBathroomChildren 删除子查询 bathroomIDs 命中的卫生间的全部子表记录
func deleteBathroomChildren(tx *gorm.DB, bathroomIDs *gorm.DB) error {
	cleanings := tx.Model(&model.Cleaning{}).Select("cleaning_id").Where("bathroom_id IN (?)", bathroomIDs)
	inspections := tx.Model(&model.Inspection{}).Select("inspection_id").Where("bathroom_id IN (?)", bathroomIDs)

	steps := []struct {
		query string
		model interface{}
		arg   *gorm.DB
	}{
		{"cleaning_id IN (?)", &model.CleaningTask{}, cleanings},
		{"bathroom_id IN (?)", &model.Cleaning{}, bathroomIDs},
		{"inspection_id IN (?)", &model.InspectionItem{}, inspections},
		{"bathroom_id IN (?)", &model.Inspection{}, bathroomIDs},
		{"bathroom_id IN (?)", &model.BathroomTask{}, bathroomIDs},
	}
	for _, s := range steps {
		if err := tx.Where(s.query, s.arg).Delete(s.model).Error; err != nil {
			return err
		}
	}
	return nil
}
