package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"event-dashboard/backend/config"
	"event-dashboard/backend/internal/model"
	"event-dashboard/backend/internal/source"
	pkgerrors "event-dashboard/backend/pkg/errors"
)

// ── 测试辅助 ──

const (
	teamHeader  = "ชื่อกลุ่มน้อง"
	scoreHeader = "รวมคะแนน"
)

func gameRows(rows ...[]string) [][]string {
	return append([][]string{{"ลำดับ", teamHeader + " (ทีม)", "คะแนน 1", scoreHeader}}, rows...)
}

func setupTestSheetsAggregator(reader *mockReader, games []config.GameRange) *sheetsAggregator {
	cfg := &config.SheetsConfig{
		SpreadsheetID:  "sheet-1",
		TeamHeader:     teamHeader,
		ScoreHeader:    scoreHeader,
		Games:          games,
		FallbackRanges: []string{"Sheet1", "A:G", "Sheet1!A:G", "เกม!A:G", "A1:G100"},
	}
	agg := newSheetsAggregator(cfg, reader, nopLogger)
	agg.now = fixedClock(testNow)
	return agg
}

func byTeam(items []model.ScoreboardItem) map[string]model.ScoreboardItem {
	out := make(map[string]model.ScoreboardItem, len(items))
	for _, it := range items {
		out[it.TeamName] = it
	}
	return out
}

// ── 多场合并 ──

func TestSheetsAggregator_MergeAcrossGames(t *testing.T) {
	reader := newMockReader()
	reader.ranges["Game1!A:D"] = gameRows(
		[]string{"1", "Red", "", "10"},
		[]string{"2", "Blue", "", "30"},
	)
	reader.ranges["Game3!A:D"] = gameRows(
		[]string{"1", "Red", "", "5"},
	)
	reader.ranges["Game6!A:D"] = gameRows(
		[]string{"1", "Green", "", "7"},
	)

	agg := setupTestSheetsAggregator(reader, []config.GameRange{
		{Slot: 1, Range: "Game1!A:D"},
		{Slot: 3, Range: "Game3!A:D"},
		{Slot: 6, Range: "Game6!A:D"},
	})

	items, err := agg.Aggregate(context.Background())
	if err != nil {
		t.Fatalf("Aggregate 应成功: %v", err)
	}

	red := byTeam(items)["Red"]
	if red.TotalScore != 15 {
		t.Errorf("期望 Red 总分=15，实际=%d", red.TotalScore)
	}
	if red.Games() != [model.GameSlots]int{10, 0, 5, 0, 0, 0} {
		t.Errorf("Red 各场得分不符: %v", red.Games())
	}
	if red.Achievements != "Game Winner, Game 3 Winner" {
		t.Errorf("Red 成就不符: %q", red.Achievements)
	}
	if g := byTeam(items)["Green"]; g.Achievements != "Shadow Boxing Champion" {
		t.Errorf("Green 成就不符: %q", g.Achievements)
	}

	if items[0].TeamName != "Blue" || items[0].Rank != 1 {
		t.Errorf("期望 Blue 第一，实际: %+v", items[0])
	}
	for _, it := range items {
		if it.Trend != model.TrendSame || it.LastUpdated != "2026-10-19T09:30:00.000Z" {
			t.Errorf("trend / lastUpdated 不符: %+v", it)
		}
	}
}

func TestSheetsAggregator_ScoresRoundingToZeroAreDropped(t *testing.T) {
	reader := newMockReader()
	reader.ranges["Game1!A:D"] = gameRows(
		[]string{"1", "Red", "", "0.4"},
		[]string{"2", "Blue", "", "0.3"},
		[]string{"3", "Blue", "", "0.3"},
		[]string{"4", "Green", "", "10"},
	)
	agg := setupTestSheetsAggregator(reader, []config.GameRange{{Slot: 1, Range: "Game1!A:D"}})

	items, err := agg.Aggregate(context.Background())
	if err != nil {
		t.Fatalf("Aggregate 应成功: %v", err)
	}

	got := byTeam(items)
	if _, ok := got["Red"]; ok {
		t.Errorf("取整为 0 的队伍不应出现在记分板: %+v", got["Red"])
	}
	if blue := got["Blue"]; blue.GameI != 1 || blue.TotalScore != 1 {
		t.Errorf("同队累加 0.6 应取整为 1，实际 %+v", blue)
	}
	if len(items) != 2 || items[0].TeamName != "Green" || items[1].Rank != 2 {
		t.Errorf("排名不符: %+v", items)
	}
}

func TestSheetsAggregator_FailedGameIsEmpty(t *testing.T) {
	reader := newMockReader()
	reader.ranges["Game1!A:D"] = gameRows([]string{"1", "Red", "", "10"})
	reader.errs["Game2!A:D"] = errors.New("Unable to parse range")

	agg := setupTestSheetsAggregator(reader, []config.GameRange{
		{Slot: 1, Range: "Game1!A:D"},
		{Slot: 2, Range: "Game2!A:D"},
	})

	items, err := agg.Aggregate(context.Background())
	if err != nil {
		t.Fatalf("单场失败不应导致整体失败: %v", err)
	}
	if len(items) != 1 || items[0].GameI != 10 || items[0].GameII != 0 {
		t.Errorf("失败场次应按空表处理，实际: %+v", items)
	}
	if len(reader.calls) != 2 {
		t.Errorf("每场应拉取一次，实际=%v", reader.calls)
	}
}

func TestSheetsAggregator_AllGamesFailed(t *testing.T) {
	reader := newMockReader()
	reader.errs["Game1!A:D"] = errors.New("403")
	reader.errs["Game2!A:D"] = errors.New("403")

	agg := setupTestSheetsAggregator(reader, []config.GameRange{
		{Slot: 1, Range: "Game1!A:D"},
		{Slot: 2, Range: "Game2!A:D"},
	})

	if _, err := agg.Aggregate(context.Background()); !errors.Is(err, pkgerrors.ErrUpstream) {
		t.Errorf("全部失败时期望 ErrUpstream，实际: %v", err)
	}
}

// ── 单表解析 ──

func TestSheetsAggregator_ParseTable(t *testing.T) {
	agg := setupTestSheetsAggregator(newMockReader(), nil)

	table := agg.parseTable(1, gameRows(
		[]string{"1", " Red ", "", "10"},
		[]string{"2", "Blue", "", "0"},
		[]string{"3", "", "", "50"},
		[]string{"4", "Red", "", "2.5"},
		[]string{"5", "Green", "", "abc"},
		[]string{"6", "Yellow"},
		[]string{"7", "Purple", "", "8 pts"},
	))

	if !reflect.DeepEqual(table.teams, []string{"Red", "Purple"}) {
		t.Errorf("保留的队伍不符: %v", table.teams)
	}
	if table.scores["Red"] != 12.5 {
		t.Errorf("同队多行应累加，实际=%v", table.scores["Red"])
	}
	if table.scores["Purple"] != 8 {
		t.Errorf("应解析开头的数字，实际=%v", table.scores["Purple"])
	}
}

func TestSheetsAggregator_ParseTable_MissingColumns(t *testing.T) {
	agg := setupTestSheetsAggregator(newMockReader(), nil)

	table := agg.parseTable(1, [][]string{{"team", "score"}, {"Red", "10"}})
	if len(table.teams) != 0 {
		t.Errorf("缺少表头列时应为空表，实际=%v", table.teams)
	}
}

// ── 单场模式 ──

func TestSheetsAggregator_SingleGameFallbackRanges(t *testing.T) {
	reader := newMockReader()
	reader.errs["Sheet1"] = errors.New("Unable to parse range: Sheet1")
	reader.ranges["Sheet1!A:G"] = gameRows([]string{"1", "Red", "", "60"})

	agg := setupTestSheetsAggregator(reader, nil)
	items, err := agg.Aggregate(context.Background())
	if err != nil {
		t.Fatalf("Aggregate 应成功: %v", err)
	}
	if !reflect.DeepEqual(reader.calls, []string{"Sheet1", "A:G", "Sheet1!A:G"}) {
		t.Errorf("候选区域尝试顺序不符: %v", reader.calls)
	}
	if len(items) != 1 || items[0].GameI != 60 {
		t.Fatalf("单场结果应记入 Game I: %+v", items)
	}
	if items[0].Achievements != "Game Winner, High Scorer" {
		t.Errorf("成就不符: %q", items[0].Achievements)
	}
}

func TestSheetsAggregator_SingleGameAllEmpty(t *testing.T) {
	agg := setupTestSheetsAggregator(newMockReader(), nil)

	items, err := agg.Aggregate(context.Background())
	if err != nil {
		t.Fatalf("所有区域为空不应报错: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("期望空列表，实际=%v", items)
	}
}

// ── 排名与成就 ──

func TestRankScoreboard_OrdinalTies(t *testing.T) {
	items := []model.ScoreboardItem{
		{TeamName: "A", TotalScore: 30},
		{TeamName: "B", TotalScore: 50},
		{TeamName: "C", TotalScore: 50},
		{TeamName: "D", TotalScore: 10},
	}
	RankScoreboard(items)

	ranks := map[string]int{}
	for _, it := range items {
		ranks[it.TeamName] = it.Rank
	}
	want := map[string]int{"A": 3, "B": 1, "C": 2, "D": 4}
	if !reflect.DeepEqual(ranks, want) {
		t.Errorf("期望排名 %v，实际 %v", want, ranks)
	}
}

func TestAchievements(t *testing.T) {
	item := &model.ScoreboardItem{GameII: 20, GameV: 30, GameVI: 60, TotalScore: 110}
	want := "Game 2 Winner, Game 5 Winner, Shadow Boxing Champion, High Scorer, Elite Player"
	if got := achievements(item); got != want {
		t.Errorf("期望 %q，实际 %q", want, got)
	}

	if got := achievements(&model.ScoreboardItem{GameI: 50, TotalScore: 50}); got != "Game Winner" {
		t.Errorf("总分 50 不应获得 High Scorer，实际 %q", got)
	}
}

// ── CSV 策略 ──

func TestCSVAggregator(t *testing.T) {
	src := newMockSource(map[string]string{source.ScoreboardFile: "id,teamName,totalScore,gameII,rank\n" +
		"1,Red,30,30,1\n2,Blue,50,,2\n3,Green,50,50,3\n"})
	agg := &csvAggregator{src: src, logger: nopLogger}

	items, err := agg.Aggregate(context.Background())
	if err != nil {
		t.Fatalf("Aggregate 应成功: %v", err)
	}
	if items[0].TeamName != "Blue" || items[0].Rank != 1 || items[1].TeamName != "Green" || items[2].Rank != 3 {
		t.Errorf("排名应重新计算: %+v", items)
	}
	if items[0].GameI != 0 || items[0].GameII != 0 {
		t.Errorf("缺失列应为 0: %+v", items[0])
	}
}

func TestCSVAggregator_SourceFailure(t *testing.T) {
	src := newMockSource(map[string]string{})
	agg := &csvAggregator{src: src, logger: nopLogger}

	if _, err := agg.Aggregate(context.Background()); !errors.Is(err, pkgerrors.ErrUpstream) {
		t.Errorf("期望 ErrUpstream，实际: %v", err)
	}
}

func TestNewAggregator_DegradesToCSVWithoutReader(t *testing.T) {
	cfg := &config.Config{Scoreboard: config.ScoreboardConfig{Source: "sheets"}}
	if _, ok := NewAggregator(cfg, newMockSource(nil), nil, nopLogger).(*csvAggregator); !ok {
		t.Error("未提供表格客户端时应降级为 CSV 策略")
	}
	if _, ok := NewAggregator(cfg, newMockSource(nil), newMockReader(), nopLogger).(*sheetsAggregator); !ok {
		t.Error("提供表格客户端时应使用表格策略")
	}
}
