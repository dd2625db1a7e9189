package service

import (
	"context"

	"go.uber.org/zap"

	"event-dashboard/backend/internal/mapper"
	"event-dashboard/backend/internal/model"
	"event-dashboard/backend/internal/source"
)

// ContactDirectory 按是否紧急联系人拆分的通讯录
type ContactDirectory struct {
	Emergency []model.Contact
	Regular   []model.Contact
}

// Total 联系人总数
func (d *ContactDirectory) Total() int {
	return len(d.Emergency) + len(d.Regular)
}

// ContactService 通讯录业务接口
type ContactService interface {
	List(ctx context.Context, query string) *ContactDirectory
}

type contactService struct {
	src    source.Source
	logger *zap.Logger
}

// NewContactService 创建 ContactService 实例
func NewContactService(src source.Source, logger *zap.Logger) ContactService {
	return &contactService{src: src, logger: logger}
}

// List 搜索姓名 / 角色 / 小组 / 电话，保持文件顺序
func (s *contactService) List(ctx context.Context, query string) *ContactDirectory {
	contacts := loadRecords(ctx, s.src, source.ContactsFile, mapper.ContactSchema, mapper.Contact, s.logger)

	dir := &ContactDirectory{Emergency: []model.Contact{}, Regular: []model.Contact{}}
	for _, c := range contacts {
		if !matchesQuery(query, c.Name, c.Role, c.Team, c.Phone) {
			continue
		}
		if c.IsEmergency {
			dir.Emergency = append(dir.Emergency, c)
		} else {
			dir.Regular = append(dir.Regular, c)
		}
	}
	return dir
}
