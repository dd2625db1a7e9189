package model

// Team 小组，对应 teams.csv（列序模式）
type Team struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	LeadName    string `json:"leadName"`
	LeadContact string `json:"leadContact"`
	MemberCount int    `json:"memberCount"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Color       string `json:"color"`
	CurrentTask string `json:"currentTask"`
}
