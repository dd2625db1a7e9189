package dto

// ── 列表查询参数 ──

// SearchQuery 通用关键字搜索
type SearchQuery struct {
	Q string `form:"q" binding:"max=100"`
}

// ScheduleQuery 日程查询参数
type ScheduleQuery struct {
	Team string `form:"team" binding:"max=32"`
	Q    string `form:"q"    binding:"max=100"`
}

// PropQuery 道具查询参数
type PropQuery struct {
	Q      string `form:"q"      binding:"max=100"`
	Status string `form:"status" binding:"max=32"`
}

// AlertQuery 告警查询参数
type AlertQuery struct {
	Active bool `form:"active"`
}
