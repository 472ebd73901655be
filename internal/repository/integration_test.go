//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lavtracker/backend/internal/model"
	"lavtracker/backend/internal/repository"
	"lavtracker/backend/pkg/database"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var pgDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=lavtracker password=lavtracker dbname=lavtracker_test sslmode=disable TimeZone=UTC"
	}

	var err error
	pgDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := pgDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取 sql.DB 失败: %v\n", err)
		os.Exit(1)
	}
	// 使用与生产一致的版本化迁移
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "迁移失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupPGLocation 创建分支与区域并返回清理函数（级联删除子数据）
func setupPGLocation(t *testing.T) (*model.Location, func()) {
	t.Helper()
	ctx := context.Background()

	branch := &model.Branch{Name: fmt.Sprintf("branch-%d", time.Now().UnixNano()), Active: true}
	if err := pgDB.WithContext(ctx).Create(branch).Error; err != nil {
		t.Fatalf("创建分支失败: %v", err)
	}
	loc := &model.Location{BranchID: branch.BranchID, Name: "HQ", Active: true}
	if err := pgDB.WithContext(ctx).Create(loc).Error; err != nil {
		t.Fatalf("创建区域失败: %v", err)
	}

	cleanup := func() {
		pgDB.Where("branch_id = ?", branch.BranchID).Delete(&model.Branch{})
	}
	return loc, cleanup
}

// ═══════════════════════════════════════════════════════════
// Test: Transaction Rollback
// ═══════════════════════════════════════════════════════════

func TestPG_TransactionRollback(t *testing.T) {
	loc, cleanup := setupPGLocation(t)
	defer cleanup()

	repo := repository.NewRepository(pgDB)
	ctx := context.Background()

	var created uint
	err := repo.Transaction(ctx, func(tx *repository.Repository) error {
		b := &model.Bathroom{LocationID: loc.LocationID, Name: "A", Gender: "male", Status: model.BathroomStatusOpen, Order: 1, Active: true}
		if err := tx.Bathroom.Create(ctx, b); err != nil {
			return err
		}
		created = b.BathroomID
		return fmt.Errorf("强制回滚")
	})
	if err == nil {
		t.Fatal("期望事务返回错误")
	}

	if _, err := repo.Bathroom.GetByID(ctx, created); err == nil {
		t.Fatal("期望回滚后查不到卫生间，但实际查到了")
	}
}

// ═══════════════════════════════════════════════════════════
// Test: 并发排序维护
// ═══════════════════════════════════════════════════════════

func TestPG_ConcurrentResequenceStaysContiguous(t *testing.T) {
	loc, cleanup := setupPGLocation(t)
	defer cleanup()

	repo := repository.NewRepository(pgDB)
	ctx := context.Background()

	for i := 1; i <= 6; i++ {
		b := &model.Bathroom{LocationID: loc.LocationID, Name: fmt.Sprintf("B%d", i), Gender: "female", Status: model.BathroomStatusOpen, Order: i * 2, Active: true}
		if err := repo.Bathroom.Create(ctx, b); err != nil {
			t.Fatal(err)
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Transaction(ctx, func(tx *repository.Repository) error {
				return tx.Bathroom.Resequence(ctx, loc.LocationID)
			})
		}()
	}
	wg.Wait()

	list, err := repo.Bathroom.ListByLocation(ctx, loc.LocationID)
	if err != nil {
		t.Fatal(err)
	}
	for i, b := range list {
		if b.Order != i+1 {
			t.Errorf("位置 %d 期望 order=%d，实际=%d", i, i+1, b.Order)
		}
	}
}

// ═══════════════════════════════════════════════════════════
// Test: 单行设置约束
// ═══════════════════════════════════════════════════════════

func TestPG_SettingsSingletonCheck(t *testing.T) {
	repo := repository.NewRepository(pgDB)
	ctx := context.Background()

	if err := repo.AppSetting.Upsert(ctx, &model.AppSetting{Theme: model.ThemeForest, TakePhotoOnReport: true}); err != nil {
		t.Fatalf("Upsert 失败: %v", err)
	}
	err := pgDB.Exec("INSERT INTO app_settings (singleton, theme, take_photo_on_report) VALUES (FALSE, 'night', TRUE)").Error
	if err == nil {
		t.Error("CHECK 约束应拒绝 singleton=false 的第二行")
	}
}
