package model

// 排名趋势
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendSame = "same"
)

// GameSlots 记分板的比赛列数（Game I – VI）
const GameSlots = 6

// ScoreboardItem 记分板行，对应 scoreboard.csv 或远程表格聚合结果
type ScoreboardItem struct {
	ID           string `json:"id"`
	TeamName     string `json:"teamName"`
	TotalScore   int    `json:"totalScore"`
	GameI        int    `json:"gameI"`
	GameII       int    `json:"gameII"`
	GameIII      int    `json:"gameIII"`
	GameIV       int    `json:"gameIV"`
	GameV        int    `json:"gameV"`
	GameVI       int    `json:"gameVI"`
	Rank         int    `json:"rank"` // 从 1 开始
	Trend        string `json:"trend"`
	LastUpdated  string `json:"lastUpdated"`
	Achievements string `json:"achievements"`
}

// Games 按比赛序号返回得分（下标 0 对应 Game I）
func (s *ScoreboardItem) Games() [GameSlots]int {
	return [GameSlots]int{s.GameI, s.GameII, s.GameIII, s.GameIV, s.GameV, s.GameVI}
}

// SetGame 设置第 slot 场（1..6）得分，越界忽略
func (s *ScoreboardItem) SetGame(slot, score int) {
	switch slot {
	case 1:
		s.GameI = score
	case 2:
		s.GameII = score
	case 3:
		s.GameIII = score
	case 4:
		s.GameIV = score
	case 5:
		s.GameV = score
	case 6:
		s.GameVI = score
	}
}
