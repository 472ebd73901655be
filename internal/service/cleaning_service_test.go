package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"lavtracker/backend/internal/dto"
	"lavtracker/backend/internal/model"
)

type cleaningFixture struct {
	svc      CleaningService
	st       *mockStore
	bathroom *model.Bathroom
	user     *model.User
	tasks    []uint
}

func setupTestCleaningService() *cleaningFixture {
	repo, st := newMockRepository()
	ctx := context.Background()

	loc := &model.Location{BranchID: 1, Name: "Planta 1", Active: true}
	_ = st.location.Create(ctx, loc)
	b := &model.Bathroom{LocationID: loc.LocationID, Name: "A", Gender: "female", Status: model.BathroomStatusInspected, Order: 1, Active: true}
	_ = st.bathroom.Create(ctx, b)

	u := &model.User{Username: "Ana", Email: "ana@example.com", Code: strPtr("1234"), Active: true}
	_ = st.user.Create(ctx, u)

	var taskIDs []uint
	for _, name := range []string{"Mop", "Refill soap"} {
		task := &model.Task{Name: name}
		_ = st.task.Create(ctx, task)
		taskIDs = append(taskIDs, task.TaskID)
	}

	return &cleaningFixture{
		svc:      NewCleaningService(repo, zap.NewNop()),
		st:       st,
		bathroom: b,
		user:     u,
		tasks:    taskIDs,
	}
}

func TestClean_Success(t *testing.T) {
	f := setupTestCleaningService()

	resp, err := f.svc.Clean(context.Background(), &dto.CleanRequest{
		BathroomID: f.bathroom.BathroomID,
		Tasks:      []dto.TaskRef{dto.TaskRef(f.tasks[0]), dto.TaskRef(f.tasks[1])},
		Code:       "1234",
	})
	if err != nil {
		t.Fatalf("期望清洁成功，实际: %v", err)
	}

	if len(resp.Cleanings) != 1 {
		t.Fatalf("期望 1 条清洁记录，实际 %d", len(resp.Cleanings))
	}
	c := resp.Cleanings[0]
	if c.UserID == nil || *c.UserID != f.user.UserID {
		t.Error("清洁记录应关联清洁码对应的用户")
	}
	if len(c.Tasks) != 2 {
		t.Errorf("期望 2 条任务记录，实际 %d", len(c.Tasks))
	}

	if f.st.bathroom.bathrooms[f.bathroom.BathroomID].Status != model.BathroomStatusOpen {
		t.Error("清洁后状态应重置为 open")
	}
	if len(resp.Bathrooms) != 1 || resp.Bathrooms[0].Status != model.BathroomStatusOpen {
		t.Error("响应中的卫生间视图应反映新状态")
	}
}

func TestClean_InvalidCodeWritesNothing(t *testing.T) {
	f := setupTestCleaningService()

	_, err := f.svc.Clean(context.Background(), &dto.CleanRequest{
		BathroomID: f.bathroom.BathroomID,
		Tasks:      []dto.TaskRef{dto.TaskRef(f.tasks[0])},
		Code:       "9999",
	})
	if !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("期望 ErrInvalidCode，实际: %v", err)
	}
	if len(f.st.cleaning.cleanings) != 0 {
		t.Error("无效清洁码不应写入清洁记录")
	}
	if f.st.bathroom.bathrooms[f.bathroom.BathroomID].Status != model.BathroomStatusInspected {
		t.Error("无效清洁码不应修改状态")
	}
}

func TestClean_InactiveUserCodeRejected(t *testing.T) {
	f := setupTestCleaningService()
	f.st.user.users[f.user.UserID].Active = false

	_, err := f.svc.Clean(context.Background(), &dto.CleanRequest{
		BathroomID: f.bathroom.BathroomID, Tasks: []dto.TaskRef{}, Code: "1234",
	})
	if !errors.Is(err, ErrInvalidCode) {
		t.Errorf("停用用户的清洁码应视为无效，实际: %v", err)
	}
}

func TestClean_UnknownBathroom(t *testing.T) {
	f := setupTestCleaningService()

	_, err := f.svc.Clean(context.Background(), &dto.CleanRequest{BathroomID: 404, Code: "1234"})
	if !errors.Is(err, ErrBathroomNotFound) {
		t.Errorf("期望 ErrBathroomNotFound，实际: %v", err)
	}
}

func TestClean_UnknownTask(t *testing.T) {
	f := setupTestCleaningService()

	_, err := f.svc.Clean(context.Background(), &dto.CleanRequest{
		BathroomID: f.bathroom.BathroomID, Tasks: []dto.TaskRef{500}, Code: "1234",
	})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("期望 ErrTaskNotFound，实际: %v", err)
	}
	if len(f.st.cleaning.cleanings) != 0 {
		t.Error("任务不存在时不应写入清洁记录")
	}
}

func TestClean_KeepsLatestTen(t *testing.T) {
	f := setupTestCleaningService()

	var resp *dto.CleanResponse
	for i := 0; i < 12; i++ {
		var err error
		resp, err = f.svc.Clean(context.Background(), &dto.CleanRequest{
			BathroomID: f.bathroom.BathroomID, Tasks: []dto.TaskRef{}, Code: "1234",
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	if len(resp.Cleanings) != 10 {
		t.Errorf("期望返回最近 10 条，实际 %d", len(resp.Cleanings))
	}
	if resp.Cleanings[0].CleaningID != 12 {
		t.Errorf("最新记录应在首位，实际 id=%d", resp.Cleanings[0].CleaningID)
	}
}

func TestValidateCode(t *testing.T) {
	f := setupTestCleaningService()

	resp, err := f.svc.ValidateCode(context.Background(), "1234")
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Valid || resp.UserID != f.user.UserID || resp.Name != "Ana" {
		t.Errorf("有效清洁码结果不符: %+v", resp)
	}

	resp, err = f.svc.ValidateCode(context.Background(), "0000")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Valid {
		t.Error("未知清洁码应返回 valid=false")
	}
}
