package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"lavtracker/backend/internal/dto"
	"lavtracker/backend/internal/model"
	"lavtracker/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrInvalidDateRange   = errors.New("from must not be after to")
	ErrExportGenerateFail = errors.New("failed to generate export file")
)

const exportDateLayout = "2006-01-02"

// 巡检在日历中占用的时长
const inspectionEventDuration = 30 * time.Minute

// ExportService 导出业务接口
//
// 设计说明：
//   - 清洁记录导出为 Excel (.xlsx)，可按日期区间过滤
//   - 巡检记录导出为 iCalendar 订阅源，每次巡检一个 VEVENT
//   - 导出内容以内存缓冲返回，由 Handler 层设置响应头后写出
type ExportService interface {
	ExportCleanings(ctx context.Context, req *dto.ExportCleaningsRequest) (*bytes.Buffer, string, error)
	ExportInspections(ctx context.Context, locationID uint) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportCleanings — 清洁记录导出为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单个 Sheet "Cleanings"，首行为标题
//   - 列：时间 | 卫生间 | 清洁人 | 完成任务
//   - 按时间倒序
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportCleanings(ctx context.Context, req *dto.ExportCleaningsRequest) (*bytes.Buffer, string, error) {
	loc, err := s.getLocation(ctx, req.LocationID)
	if err != nil {
		return nil, "", err
	}

	// 1. 解析日期区间，to 包含当天
	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		return nil, "", err
	}

	// 2. 查询清洁记录
	cleanings, err := s.repo.Cleaning.ListForExport(ctx, loc.LocationID, from, to)
	if err != nil {
		s.logger.Error("查询清洁记录失败", zap.Uint("location_id", loc.LocationID), zap.Error(err))
		return nil, "", err
	}

	// 3. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Cleanings"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "B", 22)
	f.SetColWidth(sheetName, "C", "C", 20)
	f.SetColWidth(sheetName, "D", "D", 48)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s - Cleaning history", loc.Name))
	f.MergeCell(sheetName, "A1", "D1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	headers := []string{"Cleaned at", "Bathroom", "Cleaned by", "Tasks"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheetName, "A2", "D2", headerStyle)

	// 数据行
	row := 3
	for _, c := range cleanings {
		bathroom := "-"
		if c.Bathroom != nil {
			bathroom = c.Bathroom.Name
		}
		cleanedBy := "-"
		if c.User != nil {
			cleanedBy = c.User.Username
		}
		tasks := make([]string, 0, len(c.Tasks))
		for _, t := range c.Tasks {
			if t.Task != nil {
				tasks = append(tasks, t.Task.Name)
			}
		}

		f.SetCellValue(sheetName, cell("A", row), c.CreatedAt.Format("2006-01-02 15:04"))
		f.SetCellValue(sheetName, cell("B", row), bathroom)
		f.SetCellValue(sheetName, cell("C", row), cleanedBy)
		f.SetCellValue(sheetName, cell("D", row), strings.Join(tasks, ", "))
		row++
	}

	// 4. 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("cleanings_%d_%s.xlsx", loc.LocationID, time.Now().Format("20060102"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportInspections — 巡检记录导出为 iCalendar
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportInspections(ctx context.Context, locationID uint) ([]byte, string, error) {
	loc, err := s.getLocation(ctx, locationID)
	if err != nil {
		return nil, "", err
	}

	inspections, err := s.repo.Inspection.ListForExport(ctx, loc.LocationID)
	if err != nil {
		s.logger.Error("查询巡检记录失败", zap.Uint("location_id", loc.LocationID), zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//LavTracker//Inspections//EN")
	cal.SetXWRCalName(fmt.Sprintf("%s inspections", loc.Name))

	for _, insp := range inspections {
		bathroom := "Bathroom"
		if insp.Bathroom != nil {
			bathroom = insp.Bathroom.Name
		}
		reasons := make([]string, 0, len(insp.Items))
		for _, item := range insp.Items {
			reasons = append(reasons, item.Reason)
		}

		event := cal.AddEvent(fmt.Sprintf("inspection-%d@lavtracker", insp.InspectionID))
		event.SetDtStampTime(insp.UpdatedAt)
		event.SetStartAt(insp.InspectionDate)
		event.SetEndAt(insp.InspectionDate.Add(inspectionEventDuration))
		event.SetSummary(fmt.Sprintf("Inspection failed: %s", bathroom))
		event.SetLocation(loc.Name)
		event.SetDescription(strings.Join(reasons, "\n"))
	}

	filename := fmt.Sprintf("inspections_%d.ics", loc.LocationID)
	return []byte(cal.Serialize()), filename, nil
}

// ── 辅助函数 ──

func (s *exportService) getLocation(ctx context.Context, id uint) (*model.Location, error) {
	loc, err := s.repo.Location.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		s.logger.Error("查询区域失败", zap.Uint("location_id", id), zap.Error(err))
		return nil, err
	}
	return loc, nil
}

// parseDateRange 解析 yyyy-mm-dd 日期区间，返回 [from, to+1d)
func parseDateRange(fromStr, toStr string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromStr != "" {
		t, err := time.ParseInLocation(exportDateLayout, fromStr, time.Local)
		if err != nil {
			return nil, nil, ErrInvalidDateRange
		}
		from = &t
	}
	if toStr != "" {
		t, err := time.ParseInLocation(exportDateLayout, toStr, time.Local)
		if err != nil {
			return nil, nil, ErrInvalidDateRange
		}
		t = t.AddDate(0, 0, 1)
		to = &t
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, nil, ErrInvalidDateRange
	}
	return from, to, nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
