package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"event-dashboard/backend/internal/mapper"
	"event-dashboard/backend/internal/model"
	"event-dashboard/backend/pkg/csvparse"
)

// venues.csv 的列序
const (
	venueColID          = 0
	venueColStatus      = 2
	venueColLastUpdated = 5
)

// fileVenueStore 直接读写 venues.csv 的场地存储
// 文件本身即主记录与聚合列表；同进程内的写入由互斥锁串行化。
type fileVenueStore struct {
	path string
	mu   sync.Mutex
}

// NewFileVenueStore 创建基于 CSV 文件的场地存储
func NewFileVenueStore(path string) VenueStore {
	return &fileVenueStore{path: path}
}

func (s *fileVenueStore) read() ([]string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("读取 %s 失败: %w", s.path, err)
	}
	return csvparse.SplitLines(string(b)), nil
}

func parseVenueRow(fields []string) model.Venue {
	v := mapper.Venue(csvparse.Row(fields))
	v.LastUpdated = csvparse.Row(fields).At(venueColLastUpdated)
	return v
}

func (s *fileVenueStore) List(_ context.Context) ([]model.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.read()
	if err != nil {
		return nil, err
	}
	venues := []model.Venue{}
	for i := 1; i < len(lines); i++ {
		venues = append(venues, parseVenueRow(csvparse.ParseLine(lines[i])))
	}
	return venues, nil
}

func (s *fileVenueStore) Get(ctx context.Context, id string) (*model.Venue, error) {
	venues, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range venues {
		if venues[i].ID == id {
			return &venues[i], nil
		}
	}
	return nil, ErrRecordNotFound
}

// Save 改写匹配行的状态列（以及存在时的 lastUpdated 列），其余行原样保留
func (s *fileVenueStore) Save(_ context.Context, venue *model.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.read()
	if err != nil {
		return err
	}

	found := false
	for i := 1; i < len(lines); i++ {
		fields := csvparse.ParseLine(lines[i])
		if csvparse.Row(fields).At(venueColID) != venue.ID {
			continue
		}
		for len(fields) <= venueColStatus {
			fields = append(fields, "")
		}
		fields[venueColStatus] = venue.Status
		if len(fields) > venueColLastUpdated {
			fields[venueColLastUpdated] = venue.LastUpdated
		}
		lines[i] = csvparse.FormatLine(fields)
		found = true
	}
	if !found {
		return ErrRecordNotFound
	}

	return s.write(lines)
}

// Initialize 文件即数据源，无需导入
func (s *fileVenueStore) Initialize(context.Context, []model.Venue) error {
	return nil
}

// write 先写临时文件再重命名，避免读到半写的文件
func (s *fileVenueStore) write(lines []string) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".venues-*.csv")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("写入临时文件失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("关闭临时文件失败: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("替换 %s 失败: %w", s.path, err)
	}
	return nil
}
