package model

// Alert 现场告警，对应 alerts.csv
type Alert struct {
	ID          string `json:"id"`
	Type        string `json:"type"` // error | warning | info | success
	Title       string `json:"title"`
	Message     string `json:"message"`
	Priority    string `json:"priority"`
	Timestamp   string `json:"timestamp"`
	IsActive    bool   `json:"isActive"`
	Dismissible bool   `json:"dismissible"`
	Actions     string `json:"actions"`
}
