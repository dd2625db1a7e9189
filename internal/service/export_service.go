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

	"event-dashboard/backend/config"
	"event-dashboard/backend/internal/model"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("failed to generate export file")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 记分板导出为 Excel (.xlsx)，数据与 /scoreboard 相同（走缓存）
//   - 日程导出为 iCalendar 订阅，供工作人员导入日历
//   - 导出以字节返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	ExportScoreboard(ctx context.Context) (*bytes.Buffer, string, error)
	ExportSchedule(ctx context.Context) ([]byte, string, error)
}

type exportService struct {
	scoreboard ScoreboardService
	schedule   ScheduleService
	cfg        *config.ScheduleConfig
	logger     *zap.Logger
	now        func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(scoreboard ScoreboardService, schedule ScheduleService, cfg *config.ScheduleConfig, logger *zap.Logger) ExportService {
	return &exportService{
		scoreboard: scoreboard,
		schedule:   schedule,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// ═══════════════════════════════════════════════════════════
// ExportScoreboard：导出记分板为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "Scoreboard"
//   - 第 1 行标题（合并单元格），第 2 行表头
//   - 每队一行：排名 | 队名 | Game I … VI | 总分 | 成就 | 更新时间

var scoreboardHeaders = []string{
	"Rank", "Team", "Game I", "Game II", "Game III", "Game IV", "Game V", "Game VI",
	"Total", "Achievements", "Last updated",
}

func (s *exportService) ExportScoreboard(ctx context.Context) (*bytes.Buffer, string, error) {
	result, err := s.scoreboard.Get(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Scoreboard"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 24)
	f.SetColWidth(sheetName, "C", "I", 10)
	f.SetColWidth(sheetName, "J", "J", 40)
	f.SetColWidth(sheetName, "K", "K", 26)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	date := s.now().In(s.cfg.Location()).Format(time.DateOnly)
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Scoreboard — %s", date))
	f.MergeCell(sheetName, "A1", cell(colName(len(scoreboardHeaders)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	for i, h := range scoreboardHeaders {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheetName, "A2", cell(colName(len(scoreboardHeaders)-1), 2), headerStyle)

	// 数据行
	for r, item := range result.Data {
		row := r + 3
		values := []any{item.Rank, item.TeamName}
		for _, g := range item.Games() {
			values = append(values, g)
		}
		values = append(values, item.TotalScore, item.Achievements, item.LastUpdated)
		if err := f.SetSheetRow(sheetName, cell("A", row), &values); err != nil {
			s.logger.Error("写入记分板行失败", zap.Int("row", row), zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, fmt.Sprintf("scoreboard_%s.xlsx", date), nil
}

// ═══════════════════════════════════════════════════════════
// ExportSchedule：导出日程为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 日程只有 HH:MM，日期取 schedule.event_date（为空则当天），时区取 schedule.timezone。
// 时间无法解析的日程项跳过。

func (s *exportService) ExportSchedule(ctx context.Context) ([]byte, string, error) {
	loc := s.cfg.Location()
	day := s.now().In(loc)
	if s.cfg.EventDate != "" {
		if d, err := time.ParseInLocation(time.DateOnly, s.cfg.EventDate, loc); err == nil {
			day = d
		}
	}
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//event-dashboard//schedule//EN")
	cal.SetXWRCalName("Event schedule")
	cal.SetXWRTimezone(loc.String())

	stamp := s.now().UTC()
	for _, item := range s.schedule.All(ctx) {
		start, errStart := clockMinutes(item.StartTime)
		end, errEnd := clockMinutes(item.EndTime)
		if errStart != nil || errEnd != nil {
			s.logger.Debug("日程时间无法解析，跳过导出", zap.String("id", item.ID))
			continue
		}

		ev := cal.AddEvent(fmt.Sprintf("%s-%s@event-dashboard", midnight.Format("20060102"), item.ID))
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(midnight.Add(time.Duration(start) * time.Minute))
		ev.SetEndAt(midnight.Add(time.Duration(end) * time.Minute))
		ev.SetSummary(item.Title)
		if item.Location != "" {
			ev.SetLocation(item.Location)
		}
		ev.SetDescription(scheduleDescription(&item))
	}

	return []byte(cal.Serialize()), fmt.Sprintf("schedule_%s.ics", midnight.Format(time.DateOnly)), nil
}

// scheduleDescription 描述 + 负责人 + 各小组职责
func scheduleDescription(item *model.ScheduleItem) string {
	var b strings.Builder
	b.WriteString(item.Description)
	if item.Responsible != "" {
		fmt.Fprintf(&b, "\nResponsible: %s", item.Responsible)
	}
	duties := item.TeamDuties()
	for _, team := range []string{
		model.DutyOperation, model.DutyRegistration, model.DutyFoodDrink,
		model.DutyEntertain, model.DutyStaff, model.DutyGame,
	} {
		if d, ok := duties[team]; ok {
			fmt.Fprintf(&b, "\n%s: %s", team, d)
		}
	}
	return strings.TrimSpace(b.String())
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
