// Package source 提供 CSV 原始文本的读取来源（本地数据目录或远程静态地址）。
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"event-dashboard/backend/config"
)

// 数据文件名
const (
	ScheduleFile   = "schedule.csv"
	VenuesFile     = "venues.csv"
	TeamsFile      = "teams.csv"
	ContactsFile   = "contacts.csv"
	ScoreboardFile = "scoreboard.csv"
	PropsFile      = "props.csv"
	AlertsFile     = "alerts.csv"
)

// maxFileSize 单个数据文件的读取上限
const maxFileSize = 5 * 1024 * 1024

// ErrInvalidName 文件名包含路径成分
var ErrInvalidName = errors.New("invalid data file name")

// ErrTooLarge 数据文件超过读取上限
var ErrTooLarge = errors.New("data file too large")

// Source 原始文本来源
type Source interface {
	Read(ctx context.Context, name string) (string, error)
}

// New 按配置选择数据来源
func New(cfg *config.DataConfig) Source {
	if cfg.Source == "http" {
		return NewHTTPSource(cfg.BaseURL, cfg.Timeout)
	}
	return NewFileSource(cfg.Dir)
}

func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// ── 本地目录 ──

// FileSource 从数据目录读取文件
type FileSource struct {
	Dir string
}

// NewFileSource 创建 FileSource
func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

// Path 返回数据文件的完整路径
func (s *FileSource) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

func (s *FileSource) Read(_ context.Context, name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	f, err := os.Open(s.Path(name))
	if err != nil {
		return "", fmt.Errorf("打开数据文件失败: %w", err)
	}
	defer f.Close()

	return readLimited(f, name)
}

// ── 远程静态地址 ──

// HTTPSource 从 <baseURL>/<name> 获取文件
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSource 创建 HTTPSource
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	transport := &http.Transport{
		MaxIdleConns:        20,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout, Transport: transport},
	}
}

func (s *HTTPSource) Read(ctx context.Context, name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	u := s.baseURL + "/" + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("构造请求失败: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("获取数据文件失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("获取数据文件失败: HTTP %d", resp.StatusCode)
	}
	return readLimited(resp.Body, name)
}

// readLimited 最多读取 maxFileSize 字节；超出时报错而不是截断到半行
func readLimited(r io.Reader, name string) (string, error) {
	b, err := io.ReadAll(io.LimitReader(r, maxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("读取 %s 失败: %w", name, err)
	}
	if len(b) > maxFileSize {
		return "", fmt.Errorf("%w: %s 超过 %d 字节", ErrTooLarge, name, maxFileSize)
	}
	return string(b), nil
}
