package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"lavtracker/backend/internal/dto"
	"lavtracker/backend/internal/model"
)

func setupTestExportService() (ExportService, *mockStore, *model.Location) {
	repo, st := newMockRepository()
	loc := &model.Location{BranchID: 1, Name: "Planta 1", Active: true}
	_ = st.location.Create(context.Background(), loc)
	return NewExportService(repo, zap.NewNop()), st, loc
}

func TestExportCleanings_Excel(t *testing.T) {
	svc, st, loc := setupTestExportService()
	bathroom := &model.Bathroom{BathroomID: 1, Name: "A"}
	st.cleaning.cleanings = []model.Cleaning{
		{
			CleaningID: 1,
			BathroomID: 1,
			CreatedAt:  time.Date(2024, 5, 1, 8, 30, 0, 0, time.Local),
			Bathroom:   bathroom,
			User:       &model.User{Username: "Ana"},
			Tasks: []model.CleaningTask{
				{TaskID: 1, Task: &model.Task{Name: "Mop"}},
				{TaskID: 2, Task: &model.Task{Name: "Refill soap"}},
			},
		},
	}

	buf, filename, err := svc.ExportCleanings(context.Background(), &dto.ExportCleaningsRequest{LocationID: loc.LocationID})
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名应为 xlsx，实际 %s", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("导出内容应为有效 Excel: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Cleanings")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("期望 3 行（标题、表头、数据），实际 %d", len(rows))
	}
	data := rows[2]
	if data[1] != "A" || data[2] != "Ana" || data[3] != "Mop, Refill soap" {
		t.Errorf("数据行不符: %v", data)
	}
}

func TestExportCleanings_InvalidRange(t *testing.T) {
	svc, _, loc := setupTestExportService()

	_, _, err := svc.ExportCleanings(context.Background(), &dto.ExportCleaningsRequest{
		LocationID: loc.LocationID, From: "2024-05-10", To: "2024-05-01",
	})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("期望 ErrInvalidDateRange，实际: %v", err)
	}
}

func TestExportCleanings_UnknownLocation(t *testing.T) {
	svc, _, _ := setupTestExportService()

	_, _, err := svc.ExportCleanings(context.Background(), &dto.ExportCleaningsRequest{LocationID: 99})
	if !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("期望 ErrLocationNotFound，实际: %v", err)
	}
}

func TestParseDateRange_SameDayInclusive(t *testing.T) {
	from, to, err := parseDateRange("2024-05-01", "2024-05-01")
	if err != nil {
		t.Fatal(err)
	}
	if to.Sub(*from) != 24*time.Hour {
		t.Errorf("to 应包含当天，实际区间 %s", to.Sub(*from))
	}
}

func TestExportInspections_ICS(t *testing.T) {
	svc, st, loc := setupTestExportService()
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	st.inspection.inspections = []model.Inspection{
		{
			InspectionID:   7,
			BathroomID:     1,
			InspectionDate: at,
			BaseModel:      model.BaseModel{UpdatedAt: at},
			Bathroom:       &model.Bathroom{Name: "A"},
			Items:          []model.InspectionItem{{Reason: "No soap"}},
		},
	}

	data, filename, err := svc.ExportInspections(context.Background(), loc.LocationID)
	if err != nil {
		t.Fatal(err)
	}
	if filename != "inspections_1.ics" {
		t.Errorf("文件名不符: %s", filename)
	}

	body := string(data)
	for _, want := range []string{"BEGIN:VCALENDAR", "BEGIN:VEVENT", "inspection-7@lavtracker", "Inspection failed: A", "DTSTART:20240501T090000Z"} {
		if !strings.Contains(body, want) {
			t.Errorf("日历内容缺少 %q", want)
		}
	}
}
