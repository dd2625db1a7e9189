package model

// ── 日程 ──

// 日程运行状态（按当前时间计算，不来自 CSV）
const (
	ScheduleCompleted = "completed"
	ScheduleOngoing   = "ongoing"
	ScheduleUpcoming  = "upcoming"
)

// ScheduleItem 日程项，对应 schedule.csv（表头模式）
type ScheduleItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	StartTime    string `json:"startTime"` // HH:MM
	EndTime      string `json:"endTime"`   // HH:MM
	Duration     int    `json:"duration"`  // 分钟，不强制等于 endTime-startTime
	Location     string `json:"location"`
	Responsible  string `json:"responsible"`
	Description  string `json:"description"`
	Participants *int   `json:"participants,omitempty"`
	Color        string `json:"color"`

	// 各小组职责
	Operation    string `json:"operation"`
	Registration string `json:"registration"`
	FoodDrink    string `json:"foodDrink"`
	Entertain    string `json:"entertain"`
	Staff        string `json:"staff"`
	Game         string `json:"game"`

	Status string `json:"status,omitempty"` // completed | ongoing | upcoming
}

// TeamDuties 返回 小组键 → 职责 映射，仅包含有效职责（非空且不为 "—"）
func (s *ScheduleItem) TeamDuties() map[string]string {
	all := map[string]string{
		DutyOperation:    s.Operation,
		DutyRegistration: s.Registration,
		DutyFoodDrink:    s.FoodDrink,
		DutyEntertain:    s.Entertain,
		DutyStaff:        s.Staff,
		DutyGame:         s.Game,
	}
	duties := make(map[string]string, len(all))
	for k, v := range all {
		if v != "" && v != "—" {
			duties[k] = v
		}
	}
	return duties
}

// 小组职责键（用于筛选）
const (
	DutyOperation    = "operation"
	DutyRegistration = "registration"
	DutyFoodDrink    = "foodDrink"
	DutyEntertain    = "entertain"
	DutyStaff        = "staff"
	DutyGame         = "game"
)

// ValidDutyTeam 校验小组筛选键
func ValidDutyTeam(team string) bool {
	switch team {
	case DutyOperation, DutyRegistration, DutyFoodDrink, DutyEntertain, DutyStaff, DutyGame:
		return true
	}
	return false
}
