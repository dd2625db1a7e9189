package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Scoreboard.CacheTTL != 300*time.Second {
		t.Errorf("期望 cache_ttl=300s，实际=%s", cfg.Scoreboard.CacheTTL)
	}
	if cfg.Venue.Store != "redis" {
		t.Errorf("期望 venue.store=redis，实际=%s", cfg.Venue.Store)
	}
	if cfg.Schedule.Timezone != "Asia/Bangkok" {
		t.Errorf("期望 schedule.timezone=Asia/Bangkok，实际=%s", cfg.Schedule.Timezone)
	}
	if len(cfg.Sheets.FallbackRanges) != 5 {
		t.Errorf("期望 5 个备用区域，实际=%v", cfg.Sheets.FallbackRanges)
	}
}

func TestLoad_LegacyEnvAndKeyUnescape(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_ID", "sheet-123")
	t.Setenv("GOOGLE_PRIVATE_KEY", `-----BEGIN-----\nabc\n-----END-----`)
	t.Setenv("DASH_VENUE_STORE", "file")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Sheets.SpreadsheetID != "sheet-123" {
		t.Errorf("期望 spreadsheet_id=sheet-123，实际=%s", cfg.Sheets.SpreadsheetID)
	}
	if cfg.Sheets.PrivateKey != "-----BEGIN-----\nabc\n-----END-----" {
		t.Errorf("私钥中的 \\n 应被展开，实际=%q", cfg.Sheets.PrivateKey)
	}
	if cfg.Venue.Store != "file" {
		t.Errorf("期望 venue.store=file，实际=%s", cfg.Venue.Store)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:     ServerConfig{Port: 8080, UpdateLimit: 60, UpdateWindow: time.Minute},
			Data:       DataConfig{Source: "file"},
			Venue:      VenueConfig{Store: "redis"},
			Scoreboard: ScoreboardConfig{Source: "sheets", CacheTTL: time.Minute},
		}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("合法配置不应报错: %v", err)
	}

	cases := map[string]func(c *Config){
		"端口越界":      func(c *Config) { c.Server.Port = 70000 },
		"未知存储":      func(c *Config) { c.Venue.Store = "memcached" },
		"未知记分板来源":   func(c *Config) { c.Scoreboard.Source = "api" },
		"http 缺少地址": func(c *Config) { c.Data.Source = "http" },
		"比赛序号越界":    func(c *Config) { c.Sheets.Games = []GameRange{{Slot: 7, Range: "A:G"}} },
		"TTL 非正":    func(c *Config) { c.Scoreboard.CacheTTL = 0 },
		"时区无效":      func(c *Config) { c.Schedule.Timezone = "Mars/Olympus" },
		"日期格式错误":    func(c *Config) { c.Schedule.EventDate = "19/10/2026" },
		"限流窗口为零":    func(c *Config) { c.Server.UpdateWindow = 0 },
		"限流窗口为负":    func(c *Config) { c.Server.UpdateWindow = -time.Second },
		"文件存储配远程数据": func(c *Config) {
			c.Venue.Store = "file"
			c.Data.Source = "http"
			c.Data.BaseURL = "https://example.com/data"
		},
	}
	noLimit := base()
	noLimit.Server.UpdateLimit = 0
	noLimit.Server.UpdateWindow = 0
	if err := noLimit.Validate(); err != nil {
		t.Errorf("关闭限流时窗口可为零: %v", err)
	}

	fileStore := base()
	fileStore.Venue.Store = "file"
	if err := fileStore.Validate(); err != nil {
		t.Errorf("本地数据目录配文件存储应合法: %v", err)
	}

	for name, mutate := range cases {
		c := base()
		mutate(c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: 期望校验失败", name)
		}
	}
}

func TestDatabaseConfig_DSNQuotesValues(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "postgres", Password: "", Name: "event_dashboard", SSLMode: "disable", Timezone: "Asia/Bangkok"}
	want := "host='db' port=5432 user='postgres' password='' dbname='event_dashboard' sslmode='disable' TimeZone='Asia/Bangkok'"
	if got := c.DSN(); got != want {
		t.Errorf("空密码 DSN 不符:\n got  %s\n want %s", got, want)
	}

	c.Password = `p'w\d`
	if got := c.DSN(); !strings.Contains(got, `password='p\'w\\d'`) {
		t.Errorf("密码中的引号与反斜杠应转义，实际: %s", got)
	}
}
