package service

import (
	"context"
	"errors"
	"testing"

	"event-dashboard/backend/internal/model"
	"event-dashboard/backend/internal/source"
)

// ── 小组 ──

const teamsCSV = `id,name,leadName,leadContact,memberCount,status,priority,color,currentTask
t1,Operation,Ann,081-000-0001,12,active,high,#ff0000,Stage setup
t2,Registration,Bob,081-000-0002,abc,active,medium,,Check-in
t3,Game,Cat,081-000-0003,-4,break,low,#00ff00,Relay stations`

func TestTeamService_List(t *testing.T) {
	svc := NewTeamService(newMockSource(map[string]string{source.TeamsFile: teamsCSV}), nopLogger)

	teams := svc.List(context.Background(), "")
	if len(teams) != 3 {
		t.Fatalf("期望 3 个小组，实际=%d", len(teams))
	}
	if teams[1].MemberCount != 0 || teams[1].Color != "#000000" {
		t.Errorf("缺省值不符: %+v", teams[1])
	}
	if teams[2].MemberCount != 0 {
		t.Errorf("负数人数应归零，实际=%d", teams[2].MemberCount)
	}

	if got := svc.List(context.Background(), "relay"); len(got) != 1 || got[0].ID != "t3" {
		t.Errorf("按当前任务搜索结果不符: %+v", got)
	}
}

// ── 通讯录 ──

const contactsCSV = `id,name,role,team,phone,lineId,radioChannel,email,status,isEmergency
c1,Ann,Director,Operation,081-000-0001,ann,1,ann@example.com,active,true
c2,Bob,Registrar,Registration,081-000-0002,bob,2,bob@example.com,active,false
c3,Medic,First aid,Staff,1669,,9,,active,TRUE`

func TestContactService_List(t *testing.T) {
	svc := NewContactService(newMockSource(map[string]string{source.ContactsFile: contactsCSV}), nopLogger)

	dir := svc.List(context.Background(), "")
	if len(dir.Emergency) != 1 || dir.Emergency[0].ID != "c1" {
		t.Errorf("仅字面量 true 视为紧急联系人: %+v", dir.Emergency)
	}
	if len(dir.Regular) != 2 || dir.Total() != 3 {
		t.Errorf("普通联系人不符: %+v", dir.Regular)
	}

	dir = svc.List(context.Background(), "1669")
	if dir.Total() != 1 || dir.Regular[0].Name != "Medic" {
		t.Errorf("按电话搜索结果不符: %+v", dir)
	}
}

func TestContactService_List_SourceFailure(t *testing.T) {
	src := newMockSource(nil)
	dir := NewContactService(src, nopLogger).List(context.Background(), "")
	if dir.Total() != 0 || dir.Emergency == nil || dir.Regular == nil {
		t.Errorf("读取失败应返回空通讯录: %+v", dir)
	}
}

// ── 道具 ──

const propsCSV = `id,name,category,quantity,location,assignedTo,status,priority,description,lastUpdated,notes
p1,Microphone,Audio,4,Main Hall,Ann,in-use,high,Wireless,2026-10-19,
p2,Cones,Sports,x,Court,Cat,available,low,,2026-10-19,
p3,Banner,Decor,1,Front Gate,,damaged,medium,Torn corner,2026-10-18,Replace
p4,Speaker,Audio,2,Stage,Bob,available,high,,2026-10-19,`

func TestPropService_List(t *testing.T) {
	svc := NewPropService(newMockSource(map[string]string{source.PropsFile: propsCSV}), nopLogger)

	inv, err := svc.List(context.Background(), "", "")
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(inv.Props) != 4 {
		t.Fatalf("期望 4 个道具，实际=%d", len(inv.Props))
	}
	if inv.Props[1].Quantity != 0 {
		t.Errorf("非法数量应为 0，实际=%d", inv.Props[1].Quantity)
	}
	if inv.Counts[model.PropAvailable] != 2 || inv.Counts[model.PropMissing] != 0 {
		t.Errorf("状态计数不符: %v", inv.Counts)
	}

	inv, _ = svc.List(context.Background(), "audio", model.PropAvailable)
	if len(inv.Props) != 1 || inv.Props[0].ID != "p4" {
		t.Errorf("搜索 + 状态筛选结果不符: %+v", inv.Props)
	}
	if inv.Counts[model.PropInUse] != 1 {
		t.Errorf("计数应基于搜索结果而非状态筛选: %v", inv.Counts)
	}
}

func TestPropService_List_InvalidStatus(t *testing.T) {
	svc := NewPropService(newMockSource(map[string]string{source.PropsFile: propsCSV}), nopLogger)

	if _, err := svc.List(context.Background(), "", "lost"); !errors.Is(err, ErrInvalidPropStatus) {
		t.Errorf("期望 ErrInvalidPropStatus，实际: %v", err)
	}
}

// ── 告警 ──

const alertsCSV = `id,type,title,message,priority,timestamp,isActive,dismissible,actions
a1,warning,Rain,"Rain expected at 14:00, move games indoors",high,13:00,true,true,
a2,info,Lunch,Lunch served,low,12:00,false,true,
a3,error,Power,Stage power down,critical,11:00,yes,false,Call electrician`

func TestAlertService_List(t *testing.T) {
	svc := NewAlertService(newMockSource(map[string]string{source.AlertsFile: alertsCSV}), nopLogger)

	all := svc.List(context.Background(), false)
	if len(all) != 3 {
		t.Fatalf("期望 3 条告警，实际=%d", len(all))
	}
	if all[0].Message != "Rain expected at 14:00, move games indoors" {
		t.Errorf("带逗号的消息应完整解析: %s", all[0].Message)
	}
	if all[2].IsActive {
		t.Error("isActive 仅字面量 true 为真")
	}

	active := svc.List(context.Background(), true)
	if len(active) != 1 || active[0].ID != "a1" {
		t.Errorf("仅返回生效告警，实际: %+v", active)
	}
}
