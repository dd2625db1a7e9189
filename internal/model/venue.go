package model

// 场地状态
const (
	VenueActive      = "active"
	VenueBreak       = "break"
	VenueSetup       = "setup"
	VenueMaintenance = "maintenance"
)

// VenueStatuses 合法场地状态（有序，用于错误提示）
var VenueStatuses = []string{VenueActive, VenueBreak, VenueSetup, VenueMaintenance}

// ValidVenueStatus 校验场地状态
func ValidVenueStatus(status string) bool {
	for _, s := range VenueStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Venue 场地，对应 venues.csv（列序模式）以及 KV 中的 venue:<id> / venues:list
type Venue struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"` // active | break | setup | maintenance
	Activities  string `json:"activities"`
	Color       string `json:"color"`
	LastUpdated string `json:"lastUpdated,omitempty"`
}
