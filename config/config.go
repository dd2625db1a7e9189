package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Data       DataConfig       `mapstructure:"data"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Database   DatabaseConfig   `mapstructure:"db"`
	Venue      VenueConfig      `mapstructure:"venue"`
	Scoreboard ScoreboardConfig `mapstructure:"scoreboard"`
	Schedule   ScheduleConfig   `mapstructure:"schedule"`
	Sheets     SheetsConfig     `mapstructure:"sheets"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	CORS         CORSConfig    `mapstructure:"cors"`
	BodyLimit    int64         `mapstructure:"body_limit"`    // 字节
	UpdateLimit  int           `mapstructure:"update_limit"`  // 写接口每窗口最大请求数
	UpdateWindow time.Duration `mapstructure:"update_window"` // 写接口限流窗口
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DataConfig CSV 数据源配置
type DataConfig struct {
	Source  string        `mapstructure:"source"`   // file | http
	Dir     string        `mapstructure:"dir"`      // source=file 时的数据目录
	BaseURL string        `mapstructure:"base_url"` // source=http 时的数据根地址
	Timeout time.Duration `mapstructure:"timeout"`
}

// RedisConfig Redis 连接配置（URL 形式，如 redis://:pwd@host:6379/0）
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// DatabaseConfig PostgreSQL 配置（venue.store=postgres 时使用）
type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Name         string `mapstructure:"name"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	SSLMode      string `mapstructure:"sslmode"`
	Timezone     string `mapstructure:"timezone"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// DSN 生成 PostgreSQL 连接字符串，值统一加引号（空密码不会吞掉后续键）
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		dsnQuote(c.Host), c.Port, dsnQuote(c.User), dsnQuote(c.Password),
		dsnQuote(c.Name), dsnQuote(c.SSLMode), dsnQuote(c.Timezone),
	)
}

func dsnQuote(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return "'" + strings.ReplaceAll(v, "'", `\'`) + "'"
}

// VenueConfig 场地状态存储配置
type VenueConfig struct {
	Store string `mapstructure:"store"` // redis | postgres | file
}

// ScoreboardConfig 记分板配置
type ScoreboardConfig struct {
	Source   string        `mapstructure:"source"` // sheets | csv
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// ScheduleConfig 日程配置
type ScheduleConfig struct {
	Timezone  string `mapstructure:"timezone"`   // 日程 HH:MM 所在时区
	EventDate string `mapstructure:"event_date"` // YYYY-MM-DD，为空表示当天（仅用于 ICS 导出）
}

// Location 解析时区，失败时回退到本地时区
func (c *ScheduleConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// SheetsConfig 远程表格配置
type SheetsConfig struct {
	SpreadsheetID   string      `mapstructure:"spreadsheet_id"`
	CredentialsFile string      `mapstructure:"credentials_file"`
	ProjectID       string      `mapstructure:"project_id"`
	PrivateKeyID    string      `mapstructure:"private_key_id"`
	PrivateKey      string      `mapstructure:"private_key"`
	ClientEmail     string      `mapstructure:"client_email"`
	ClientID        string      `mapstructure:"client_id"`
	ClientCertURL   string      `mapstructure:"client_cert_url"`
	TeamHeader      string      `mapstructure:"team_header"`
	ScoreHeader     string      `mapstructure:"score_header"`
	Games           []GameRange `mapstructure:"games"` // 为空时退化为单场模式
	FallbackRanges  []string    `mapstructure:"fallback_ranges"`
}

// GameRange 单场比赛对应的表格区域
type GameRange struct {
	Slot  int    `mapstructure:"slot"` // 1..6 对应 Game I..VI
	Range string `mapstructure:"range"`
}

// HasCredentials 是否配置了服务账号凭据
func (c *SheetsConfig) HasCredentials() bool {
	return c.CredentialsFile != "" || (c.ClientEmail != "" && c.PrivateKey != "")
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// 旧部署使用的环境变量名，保持兼容
var legacyEnv = map[string]string{
	"redis.url":              "REDIS_URL",
	"sheets.spreadsheet_id":  "GOOGLE_SHEETS_ID",
	"sheets.private_key_id":  "GOOGLE_PRIVATE_KEY_ID",
	"sheets.private_key":     "GOOGLE_PRIVATE_KEY",
	"sheets.client_email":    "GOOGLE_CLIENT_EMAIL",
	"sheets.client_id":       "GOOGLE_CLIENT_ID",
	"sheets.client_cert_url": "GOOGLE_CLIENT_X509_CERT_URL",
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.body_limit", 1<<20)
	v.SetDefault("server.update_limit", 60)
	v.SetDefault("server.update_window", "1m")

	v.SetDefault("data.source", "file")
	v.SetDefault("data.dir", "./data")
	v.SetDefault("data.base_url", "")
	v.SetDefault("data.timeout", "10s")

	v.SetDefault("redis.url", "redis://localhost:6379")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "event_dashboard")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Bangkok")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)

	v.SetDefault("venue.store", "redis")

	v.SetDefault("scoreboard.source", "sheets")
	v.SetDefault("scoreboard.cache_ttl", "300s")

	v.SetDefault("schedule.timezone", "Asia/Bangkok")
	v.SetDefault("schedule.event_date", "")

	v.SetDefault("sheets.project_id", "")
	v.SetDefault("sheets.team_header", "ชื่อกลุ่มน้อง")
	v.SetDefault("sheets.score_header", "รวมคะแนน")
	v.SetDefault("sheets.fallback_ranges", []string{"Sheet1", "A:G", "Sheet1!A:G", "เกม!A:G", "A1:G100"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("DASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, "DASH_"+strings.ToUpper(strings.NewReplacer(".", "_").Replace(key)), env); err != nil {
			return nil, fmt.Errorf("绑定环境变量失败: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// 私钥在环境变量中通常以字面量 \n 书写
	cfg.Sheets.PrivateKey = strings.ReplaceAll(cfg.Sheets.PrivateKey, `\n`, "\n")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	if c.Server.UpdateLimit > 0 && c.Server.UpdateWindow <= 0 {
		return fmt.Errorf("配置校验失败: server.update_limit > 0 时 server.update_window 必须为正数")
	}
	switch c.Data.Source {
	case "file", "http":
	default:
		return fmt.Errorf("配置校验失败: data.source 必须为 file 或 http，实际 %q", c.Data.Source)
	}
	if c.Data.Source == "http" && c.Data.BaseURL == "" {
		return fmt.Errorf("配置校验失败: data.source=http 时 data.base_url 不能为空")
	}
	switch c.Venue.Store {
	case "redis", "postgres", "file":
	default:
		return fmt.Errorf("配置校验失败: venue.store 必须为 redis、postgres 或 file，实际 %q", c.Venue.Store)
	}
	if c.Venue.Store == "file" && c.Data.Source != "file" {
		return fmt.Errorf("配置校验失败: venue.store=file 要求 data.source=file（写入与读取须为同一份 venues.csv）")
	}
	switch c.Scoreboard.Source {
	case "sheets", "csv":
	default:
		return fmt.Errorf("配置校验失败: scoreboard.source 必须为 sheets 或 csv，实际 %q", c.Scoreboard.Source)
	}
	if c.Scoreboard.CacheTTL <= 0 {
		return fmt.Errorf("配置校验失败: scoreboard.cache_ttl 必须为正数")
	}
	if c.Schedule.Timezone != "" {
		if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
			return fmt.Errorf("配置校验失败: schedule.timezone 无效: %w", err)
		}
	}
	if c.Schedule.EventDate != "" {
		if _, err := time.Parse(time.DateOnly, c.Schedule.EventDate); err != nil {
			return fmt.Errorf("配置校验失败: schedule.event_date 必须为 YYYY-MM-DD，实际 %q", c.Schedule.EventDate)
		}
	}
	for _, g := range c.Sheets.Games {
		if g.Slot < 1 || g.Slot > 6 {
			return fmt.Errorf("配置校验失败: sheets.games 的 slot 必须在 1-6 之间，实际 %d", g.Slot)
		}
		if g.Range == "" {
			return fmt.Errorf("配置校验失败: sheets.games[slot=%d] 的 range 不能为空", g.Slot)
		}
	}
	return nil
}
