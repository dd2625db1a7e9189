package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"event-dashboard/backend/config"
	"event-dashboard/backend/internal/mapper"
	"event-dashboard/backend/internal/model"
	"event-dashboard/backend/internal/sheets"
	"event-dashboard/backend/internal/source"
	"event-dashboard/backend/pkg/csvparse"
	pkgerrors "event-dashboard/backend/pkg/errors"
	"event-dashboard/backend/pkg/response"
)

// Aggregator 记分板数据来源策略（远程表格 / scoreboard.csv），按配置二选一
type Aggregator interface {
	Aggregate(ctx context.Context) ([]model.ScoreboardItem, error)
}

// NewAggregator 按 scoreboard.source 选择策略
// 配置为 sheets 但未提供表格客户端时降级为 CSV
func NewAggregator(cfg *config.Config, src source.Source, reader sheets.ValuesReader, logger *zap.Logger) Aggregator {
	if cfg.Scoreboard.Source == "sheets" {
		if reader != nil {
			return newSheetsAggregator(&cfg.Sheets, reader, logger)
		}
		logger.Warn("未配置远程表格客户端，记分板改用 scoreboard.csv")
	}
	return &csvAggregator{src: src, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// 远程表格聚合
// ═══════════════════════════════════════════════════════════
//
// 多场模式：sheets.games 中每个 {slot, range} 为一场，并发拉取后合并；
// 单场模式：未配置 games 时按 fallback_ranges 依次尝试，取第一个非空区域作为 Game I。
// 单场拉取失败只让该场为空表，全部失败才返回 ErrUpstream。

type sheetsAggregator struct {
	reader        sheets.ValuesReader
	spreadsheetID string
	teamHeader    string
	scoreHeader   string
	games         []config.GameRange
	fallback      []string
	logger        *zap.Logger
	now           func() time.Time
}

func newSheetsAggregator(cfg *config.SheetsConfig, reader sheets.ValuesReader, logger *zap.Logger) *sheetsAggregator {
	return &sheetsAggregator{
		reader:        reader,
		spreadsheetID: cfg.SpreadsheetID,
		teamHeader:    cfg.TeamHeader,
		scoreHeader:   cfg.ScoreHeader,
		games:         cfg.Games,
		fallback:      cfg.FallbackRanges,
		logger:        logger,
		now:           time.Now,
	}
}

// gameTable 单场比赛按队伍汇总的得分（保留首次出现顺序）
type gameTable struct {
	slot   int
	teams  []string
	scores map[string]float64
}

func (a *sheetsAggregator) Aggregate(ctx context.Context) ([]model.ScoreboardItem, error) {
	var (
		tables []gameTable
		err    error
	)
	if len(a.games) > 0 {
		tables, err = a.fetchGames(ctx)
	} else {
		tables, err = a.fetchSingle(ctx)
	}
	if err != nil {
		return nil, err
	}
	return mergeGames(tables, a.now()), nil
}

func (a *sheetsAggregator) fetchGames(ctx context.Context) ([]gameTable, error) {
	tables := make([]gameTable, len(a.games))
	errs := make([]error, len(a.games))

	var g errgroup.Group
	for i, game := range a.games {
		g.Go(func() error {
			rows, err := a.reader.ReadRange(ctx, a.spreadsheetID, game.Range)
			if err != nil {
				a.logger.Warn("拉取比赛得分失败，该场按空表处理",
					zap.Int("slot", game.Slot),
					zap.String("range", game.Range),
					zap.Error(err),
				)
				errs[i] = err
				rows = nil
			}
			tables[i] = a.parseTable(game.Slot, rows)
			return nil
		})
	}
	_ = g.Wait()

	if err := allFailed(errs); err != nil {
		return nil, err
	}
	return tables, nil
}

func (a *sheetsAggregator) fetchSingle(ctx context.Context) ([]gameTable, error) {
	errs := make([]error, 0, len(a.fallback))
	for _, rng := range a.fallback {
		rows, err := a.reader.ReadRange(ctx, a.spreadsheetID, rng)
		if err != nil {
			a.logger.Debug("区域读取失败，尝试下一个", zap.String("range", rng), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		if len(rows) > 0 {
			a.logger.Debug("使用表格区域", zap.String("range", rng))
			return []gameTable{a.parseTable(1, rows)}, nil
		}
		errs = append(errs, nil)
	}

	if err := allFailed(errs); err != nil {
		return nil, err
	}
	a.logger.Warn("所有候选区域均无数据")
	return nil, nil
}

// parseTable 按表头子串定位队名列与得分列；缺队名或得分不为正的行丢弃，同队多行累加
func (a *sheetsAggregator) parseTable(slot int, rows [][]string) gameTable {
	table := gameTable{slot: slot, scores: make(map[string]float64)}
	if len(rows) < 2 {
		return table
	}

	teamCol := findColumn(rows[0], a.teamHeader)
	scoreCol := findColumn(rows[0], a.scoreHeader)
	if teamCol < 0 || scoreCol < 0 {
		a.logger.Warn("未找到队名或得分列",
			zap.Int("slot", slot),
			zap.Strings("headers", rows[0]),
		)
		return table
	}

	for _, row := range rows[1:] {
		if teamCol >= len(row) || scoreCol >= len(row) {
			continue
		}
		team := strings.TrimSpace(row[teamCol])
		score := leadingFloat(row[scoreCol])
		if team == "" || score <= 0 {
			continue
		}
		if _, seen := table.scores[team]; !seen {
			table.teams = append(table.teams, team)
		}
		table.scores[team] += score
	}
	return table
}

// ═══════════════════════════════════════════════════════════
// scoreboard.csv
// ═══════════════════════════════════════════════════════════

type csvAggregator struct {
	src    source.Source
	logger *zap.Logger
}

func (a *csvAggregator) Aggregate(ctx context.Context) ([]model.ScoreboardItem, error) {
	text, err := a.src.Read(ctx, source.ScoreboardFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pkgerrors.ErrUpstream, err)
	}

	res := csvparse.LoadSchema(text, mapper.ScoreboardSchema, mapper.Scoreboard)
	if len(res.Missing) > 0 {
		a.logger.Warn("scoreboard.csv 缺少列，使用缺省值", zap.Strings("missing", res.Missing))
	}
	RankScoreboard(res.Items)
	return res.Items, nil
}

// ── 合并与排名 ──

// mergeGames 以队名并集（按比赛顺序首次出现）合并各场得分并排名；取整后不为正的单场得分丢弃
func mergeGames(tables []gameTable, now time.Time) []model.ScoreboardItem {
	index := make(map[string]int)
	items := make([]model.ScoreboardItem, 0)
	stamp := response.Timestamp(now)

	for _, t := range tables {
		for _, team := range t.teams {
			// 按取整后的分数判断，0.4 这类得分不产生记录
			score := int(math.Round(t.scores[team]))
			if score <= 0 {
				continue
			}
			i, ok := index[team]
			if !ok {
				i = len(items)
				index[team] = i
				items = append(items, model.ScoreboardItem{
					ID:          strconv.Itoa(i + 1),
					TeamName:    team,
					Trend:       model.TrendSame,
					LastUpdated: stamp,
				})
			}
			items[i].SetGame(t.slot, score)
		}
	}

	for i := range items {
		total := 0
		for _, s := range items[i].Games() {
			total += s
		}
		items[i].TotalScore = total
		items[i].Achievements = achievements(&items[i])
	}

	RankScoreboard(items)
	return items
}

// RankScoreboard 按总分降序稳定排序并赋予 1 起的序数排名（同分按原顺序依次排名）
func RankScoreboard(items []model.ScoreboardItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].TotalScore > items[j].TotalScore
	})
	for i := range items {
		items[i].Rank = i + 1
	}
}

// 成就阈值
const (
	highScorerThreshold  = 50
	elitePlayerThreshold = 100
)

func achievements(item *model.ScoreboardItem) string {
	var labels []string
	for i, score := range item.Games() {
		if score <= 0 {
			continue
		}
		switch slot := i + 1; slot {
		case 1:
			labels = append(labels, "Game Winner")
		case model.GameSlots:
			labels = append(labels, "Shadow Boxing Champion")
		default:
			labels = append(labels, fmt.Sprintf("Game %d Winner", slot))
		}
	}
	if item.TotalScore > highScorerThreshold {
		labels = append(labels, "High Scorer")
	}
	if item.TotalScore > elitePlayerThreshold {
		labels = append(labels, "Elite Player")
	}
	return strings.Join(labels, ", ")
}

// ── 内部辅助方法 ──

func findColumn(headers []string, name string) int {
	for i, h := range headers {
		if strings.Contains(h, name) {
			return i
		}
	}
	return -1
}

// leadingFloat 解析开头的数字部分（如 "12.5 pts" → 12.5），无法解析返回 0
func leadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end, dot := 0, false
scan:
	for ; end < len(s); end++ {
		c := s[end]
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && !dot:
			dot = true
		case (c == '-' || c == '+') && end == 0:
		default:
			break scan
		}
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return f
}

// allFailed 所有拉取都返回错误时合并为 ErrUpstream；errs 中的 nil 表示成功
func allFailed(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	for _, err := range errs {
		if err == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %w", pkgerrors.ErrUpstream, errors.Join(errs...))
}
