package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"event-dashboard/backend/internal/model"
	"event-dashboard/backend/internal/repository"
)

// ── Mock Source ──

type mockSource struct {
	mu    sync.Mutex
	files map[string]string
	errs  map[string]error
	reads map[string]int
}

func newMockSource(files map[string]string) *mockSource {
	return &mockSource{files: files, errs: make(map[string]error), reads: make(map[string]int)}
}

func (m *mockSource) Read(_ context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads[name]++
	if err, ok := m.errs[name]; ok {
		return "", err
	}
	text, ok := m.files[name]
	if !ok {
		return "", fmt.Errorf("open %s: no such file or directory", name)
	}
	return text, nil
}

// ── Mock KV ──

type mockKV struct {
	mu     sync.Mutex
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
	gets   int
	sets   int
}

func newMockKV() *mockKV {
	return &mockKV{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (m *mockKV) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return "", repository.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockKV) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mockKV) Update(_ context.Context, key string, fn repository.UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	cur, ok := m.data[key]
	next, err := fn(cur, ok)
	if errors.Is(err, repository.ErrSkipWrite) {
		return nil
	}
	if err != nil {
		return err
	}
	m.sets++
	m.data[key] = next
	return nil
}

// snapshot 复制当前数据，用于断言"未发生写入"
func (m *mockKV) snapshot() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out
}

// ── Mock Aggregator ──

type mockAggregator struct {
	items []model.ScoreboardItem
	err   error
	calls int
}

func (m *mockAggregator) Aggregate(context.Context) ([]model.ScoreboardItem, error) {
	m.calls++
	return m.items, m.err
}

// ── Mock ValuesReader ──

type mockReader struct {
	mu     sync.Mutex
	ranges map[string][][]string
	errs   map[string]error
	calls  []string
}

func newMockReader() *mockReader {
	return &mockReader{ranges: make(map[string][][]string), errs: make(map[string]error)}
}

func (m *mockReader) ReadRange(_ context.Context, _ string, rangeName string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, rangeName)
	if err, ok := m.errs[rangeName]; ok {
		return nil, err
	}
	return m.ranges[rangeName], nil
}

// ── 公共构造 ──

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestRepository(venueKV, cacheKV repository.KV) *repository.Repository {
	return repository.NewRepository(repository.NewKVVenueStore(venueKV), cacheKV)
}

var nopLogger = zap.NewNop()
