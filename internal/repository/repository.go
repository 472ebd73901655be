package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Branch     BranchRepository
	Location   LocationRepository
	Bathroom   BathroomRepository
	Task       TaskRepository
	Cleaning   CleaningRepository
	Inspection InspectionRepository
	User       UserRepository
	AppSetting AppSettingRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		Branch:     NewBranchRepo(db),
		Location:   NewLocationRepo(db),
		Bathroom:   NewBathroomRepo(db),
		Task:       NewTaskRepo(db),
		Cleaning:   NewCleaningRepo(db),
		Inspection: NewInspectionRepo(db),
		User:       NewUserRepo(db),
		AppSetting: NewAppSettingRepo(db),
	}
}

// Transaction 在同一数据库事务内执行 fn，fn 返回错误时整体回滚
// 未绑定数据库（单元测试中手工组装的聚合）时直接在当前聚合上执行
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
