package config

import (
	"log"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"booking-board-backend/internal/timegrid"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Store    StoreConfig    `yaml:"store"`
	Poll     PollConfig     `yaml:"poll"`
	Grid     GridConfig     `yaml:"grid"`
	Halls    []string       `yaml:"halls"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// UpstreamConfig describes the spreadsheet-backed schedule API.
// BaseURL may be empty; operations that need it must then degrade to an
// explicit error instead of crashing.
type UpstreamConfig struct {
	BaseURL        string        `yaml:"base_url"`
	TimeoutSeconds int           `yaml:"timeout_seconds"`
	Timeout        time.Duration `yaml:"-"` // Ignored by YAML parser
}

// StoreConfig selects the status store implementation: "proxy" delegates
// every read and write to the upstream sheet API, "ephemeral" keeps the
// overlay in process memory only.
type StoreConfig struct {
	Mode string `yaml:"mode"`
}

// PollConfig holds the board polling intervals.
type PollConfig struct {
	ScheduleIntervalSeconds int           `yaml:"schedule_interval_seconds"`
	StatusIntervalMillis    int           `yaml:"status_interval_millis"`
	ScheduleInterval        time.Duration `yaml:"-"`
	StatusInterval          time.Duration `yaml:"-"`
}

// GridConfig describes the vertical time axis of the board.
type GridConfig struct {
	DayStart string `yaml:"day_start"`
	DayEnd   string `yaml:"day_end"`
	RowPx    int    `yaml:"row_px"`
}

const (
	StoreModeProxy     = "proxy"
	StoreModeEphemeral = "ephemeral"
)

const (
	defaultDayStart = "08:00"
	defaultDayEnd   = "00:00"
)

// defaultHalls is the venue's fixed hall set, in board column order.
var defaultHalls = []string{
	"Urban",
	"17/11",
	"Графит",
	"Soft",
	"Мишель",
	"Shanti",
	"Циклорама А",
	"Циклорама Б",
	"Мастерская",
	"Монро",
	"Моне",
}

// Load reads the configuration from the given path. A missing file is not
// fatal: the board must still come up (degraded) without deployment config.
func Load(path string) (*Config, error) {
	var cfg Config

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("config file %s not found; using defaults", path)
			applyDefaults(&cfg)
			return &cfg, nil
		}
		return nil, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 5
	}

	if envURL := os.Getenv("UPSTREAM_URL"); envURL != "" {
		cfg.Upstream.BaseURL = envURL
	}
	if cfg.Upstream.TimeoutSeconds <= 0 {
		cfg.Upstream.TimeoutSeconds = 10
	}
	cfg.Upstream.Timeout = time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second

	if cfg.Store.Mode == "" {
		cfg.Store.Mode = StoreModeProxy
	}
	if cfg.Store.Mode != StoreModeProxy && cfg.Store.Mode != StoreModeEphemeral {
		log.Printf("unknown store.mode %q; falling back to %q", cfg.Store.Mode, StoreModeProxy)
		cfg.Store.Mode = StoreModeProxy
	}

	if cfg.Poll.ScheduleIntervalSeconds <= 0 {
		cfg.Poll.ScheduleIntervalSeconds = 60
	}
	if cfg.Poll.StatusIntervalMillis <= 0 {
		cfg.Poll.StatusIntervalMillis = 1500
	}
	cfg.Poll.ScheduleInterval = time.Duration(cfg.Poll.ScheduleIntervalSeconds) * time.Second
	cfg.Poll.StatusInterval = time.Duration(cfg.Poll.StatusIntervalMillis) * time.Millisecond

	if cfg.Grid.DayStart == "" {
		cfg.Grid.DayStart = defaultDayStart
	}
	if cfg.Grid.DayEnd == "" {
		cfg.Grid.DayEnd = defaultDayEnd
	}
	if math.IsNaN(timegrid.ParseClock(cfg.Grid.DayStart)) {
		log.Printf("invalid grid.day_start %q; using %q", cfg.Grid.DayStart, defaultDayStart)
		cfg.Grid.DayStart = defaultDayStart
	}
	if math.IsNaN(timegrid.ParseClock(cfg.Grid.DayEnd)) {
		log.Printf("invalid grid.day_end %q; using %q", cfg.Grid.DayEnd, defaultDayEnd)
		cfg.Grid.DayEnd = defaultDayEnd
	}
	if cfg.Grid.RowPx <= 0 {
		cfg.Grid.RowPx = 45
	}

	if len(cfg.Halls) == 0 {
		cfg.Halls = append([]string(nil), defaultHalls...)
	}
}
