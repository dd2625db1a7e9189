package model

// 道具状态
const (
	PropAvailable     = "available"
	PropInUse         = "in-use"
	PropMissing       = "missing"
	PropDamaged       = "damaged"
	PropSetupRequired = "setup-required"
)

// PropStatuses 合法道具状态
var PropStatuses = []string{PropAvailable, PropInUse, PropMissing, PropDamaged, PropSetupRequired}

// Prop 道具，对应 props.csv
type Prop struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	Location    string `json:"location"`
	AssignedTo  string `json:"assignedTo"`
	Status      string `json:"status"`   // available | in-use | missing | damaged | setup-required
	Priority    string `json:"priority"` // critical | high | medium | low
	Description string `json:"description"`
	LastUpdated string `json:"lastUpdated"`
	Notes       string `json:"notes"`
}
