package model

// Contact 联系人，对应 contacts.csv
type Contact struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Team         string `json:"team"`
	Phone        string `json:"phone"`
	LineID       string `json:"lineId"`
	RadioChannel string `json:"radioChannel"`
	Email        string `json:"email"`
	Status       string `json:"status"` // active | break | offline
	IsEmergency  bool   `json:"isEmergency"`
}
