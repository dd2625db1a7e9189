// Package mapper 将解析后的 CSV 行映射为强类型实体，并补齐缺省值。
package mapper

import (
	"event-dashboard/backend/internal/model"
	"event-dashboard/backend/pkg/csvparse"
)

// ── 表头模式 Schema ──

var (
	ScheduleSchema = csvparse.NewSchema("schedule",
		csvparse.Column{Name: "id"},
		csvparse.Column{Name: "title"},
		csvparse.Column{Name: "startTime"},
		csvparse.Column{Name: "endTime"},
		csvparse.Column{Name: "duration", Kind: csvparse.KindInt},
		csvparse.Column{Name: "location"},
		csvparse.Column{Name: "responsible"},
		csvparse.Column{Name: "description"},
		csvparse.Column{Name: "participants", Kind: csvparse.KindInt},
		csvparse.Column{Name: "color", Default: "#e0e0e0"},
		csvparse.Column{Name: "Operation"},
		csvparse.Column{Name: "Registration"},
		csvparse.Column{Name: "Food & Drink"},
		csvparse.Column{Name: "Entertain"},
		csvparse.Column{Name: "Staff"},
		csvparse.Column{Name: "Game"},
	)

	ContactSchema = csvparse.NewSchema("contacts",
		csvparse.Column{Name: "id"},
		csvparse.Column{Name: "name"},
		csvparse.Column{Name: "role"},
		csvparse.Column{Name: "team"},
		csvparse.Column{Name: "phone"},
		csvparse.Column{Name: "lineId"},
		csvparse.Column{Name: "radioChannel"},
		csvparse.Column{Name: "email"},
		csvparse.Column{Name: "status"},
		csvparse.Column{Name: "isEmergency", Kind: csvparse.KindBool},
	)

	ScoreboardSchema = csvparse.NewSchema("scoreboard",
		csvparse.Column{Name: "id"},
		csvparse.Column{Name: "teamName"},
		csvparse.Column{Name: "totalScore", Kind: csvparse.KindInt},
		csvparse.Column{Name: "gameI", Kind: csvparse.KindInt},
		csvparse.Column{Name: "gameII", Kind: csvparse.KindInt},
		csvparse.Column{Name: "gameIII", Kind: csvparse.KindInt},
		csvparse.Column{Name: "gameIV", Kind: csvparse.KindInt},
		csvparse.Column{Name: "gameV", Kind: csvparse.KindInt},
		csvparse.Column{Name: "gameVI", Kind: csvparse.KindInt},
		csvparse.Column{Name: "rank", Kind: csvparse.KindInt},
		csvparse.Column{Name: "trend"},
		csvparse.Column{Name: "lastUpdated"},
		csvparse.Column{Name: "achievements"},
	)

	PropSchema = csvparse.NewSchema("props",
		csvparse.Column{Name: "id"},
		csvparse.Column{Name: "name"},
		csvparse.Column{Name: "category"},
		csvparse.Column{Name: "quantity", Kind: csvparse.KindInt},
		csvparse.Column{Name: "location"},
		csvparse.Column{Name: "assignedTo"},
		csvparse.Column{Name: "status"},
		csvparse.Column{Name: "priority"},
		csvparse.Column{Name: "description"},
		csvparse.Column{Name: "lastUpdated"},
		csvparse.Column{Name: "notes"},
	)

	AlertSchema = csvparse.NewSchema("alerts",
		csvparse.Column{Name: "id"},
		csvparse.Column{Name: "type"},
		csvparse.Column{Name: "title"},
		csvparse.Column{Name: "message"},
		csvparse.Column{Name: "priority"},
		csvparse.Column{Name: "timestamp"},
		csvparse.Column{Name: "isActive", Kind: csvparse.KindBool},
		csvparse.Column{Name: "dismissible", Kind: csvparse.KindBool},
		csvparse.Column{Name: "actions"},
	)
)

// ── 表头模式 Mapper ──

// Schedule 日程映射
func Schedule(v csvparse.Values) model.ScheduleItem {
	return model.ScheduleItem{
		ID:           v.String("id"),
		Title:        v.String("title"),
		StartTime:    v.String("startTime"),
		EndTime:      v.String("endTime"),
		Duration:     v.Int("duration"),
		Location:     v.String("location"),
		Responsible:  v.String("responsible"),
		Description:  v.String("description"),
		Participants: v.OptionalInt("participants"),
		Color:        v.String("color"),
		Operation:    v.String("Operation"),
		Registration: v.String("Registration"),
		FoodDrink:    v.String("Food & Drink"),
		Entertain:    v.String("Entertain"),
		Staff:        v.String("Staff"),
		Game:         v.String("Game"),
	}
}

// Contact 联系人映射
func Contact(v csvparse.Values) model.Contact {
	return model.Contact{
		ID:           v.String("id"),
		Name:         v.String("name"),
		Role:         v.String("role"),
		Team:         v.String("team"),
		Phone:        v.String("phone"),
		LineID:       v.String("lineId"),
		RadioChannel: v.String("radioChannel"),
		Email:        v.String("email"),
		Status:       v.String("status"),
		IsEmergency:  v.Bool("isEmergency"),
	}
}

// Scoreboard 记分板映射，数值列缺失或非法时为 0
func Scoreboard(v csvparse.Values) model.ScoreboardItem {
	return model.ScoreboardItem{
		ID:           v.String("id"),
		TeamName:     v.String("teamName"),
		TotalScore:   v.Int("totalScore"),
		GameI:        v.Int("gameI"),
		GameII:       v.Int("gameII"),
		GameIII:      v.Int("gameIII"),
		GameIV:       v.Int("gameIV"),
		GameV:        v.Int("gameV"),
		GameVI:       v.Int("gameVI"),
		Rank:         v.Int("rank"),
		Trend:        v.String("trend"),
		LastUpdated:  v.String("lastUpdated"),
		Achievements: v.String("achievements"),
	}
}

// Prop 道具映射
func Prop(v csvparse.Values) model.Prop {
	return model.Prop{
		ID:          v.String("id"),
		Name:        v.String("name"),
		Category:    v.String("category"),
		Quantity:    nonNegative(v.Int("quantity")),
		Location:    v.String("location"),
		AssignedTo:  v.String("assignedTo"),
		Status:      v.String("status"),
		Priority:    v.String("priority"),
		Description: v.String("description"),
		LastUpdated: v.String("lastUpdated"),
		Notes:       v.String("notes"),
	}
}

// Alert 告警映射
func Alert(v csvparse.Values) model.Alert {
	return model.Alert{
		ID:          v.String("id"),
		Type:        v.String("type"),
		Title:       v.String("title"),
		Message:     v.String("message"),
		Priority:    v.String("priority"),
		Timestamp:   v.String("timestamp"),
		IsActive:    v.Bool("isActive"),
		Dismissible: v.Bool("dismissible"),
		Actions:     v.String("actions"),
	}
}

// ── 列序模式 Mapper ──

// Venue 场地映射：id,name,status,activities,color
func Venue(r csvparse.Row) model.Venue {
	return model.Venue{
		ID:         r.At(0),
		Name:       r.At(1),
		Status:     csvparse.Or(r.At(2), model.VenueSetup),
		Activities: r.At(3),
		Color:      csvparse.Or(r.At(4), "#000000"),
	}
}

// Team 小组映射：id,name,leadName,leadContact,memberCount,status,priority,color,currentTask
func Team(r csvparse.Row) model.Team {
	return model.Team{
		ID:          r.At(0),
		Name:        r.At(1),
		LeadName:    r.At(2),
		LeadContact: r.At(3),
		MemberCount: nonNegative(csvparse.Int(r.At(4))),
		Status:      r.At(5),
		Priority:    r.At(6),
		Color:       csvparse.Or(r.At(7), "#000000"),
		CurrentTask: r.At(8),
	}
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
