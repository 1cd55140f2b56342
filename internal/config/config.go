package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment
// variables. It is constructed once at process start and passed by reference;
// nothing mutates it afterwards.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	SourcesFile   string `mapstructure:"sources_file"`
	NotifiersFile string `mapstructure:"notifiers_file"`
	OutputFile    string `mapstructure:"output_file"`

	YouTubeAPIKey   string `mapstructure:"youtube_api_key"`
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`

	MaxResultsPerSource int   `mapstructure:"max_results_per_source"`
	HTTPTimeoutSeconds  int64 `mapstructure:"http_timeout_seconds"`

	Schedule     bool `mapstructure:"schedule"`
	ScheduleDay  int  `mapstructure:"schedule_day"`
	ScheduleHour int  `mapstructure:"schedule_hour"`

	StorageType         string        `mapstructure:"storage_type"`
	BBoltPath           string        `mapstructure:"bbolt_path"`
	CacheTTLSeconds     int64         `mapstructure:"cache_ttl_seconds"`
	CacheCleanupSeconds int64         `mapstructure:"cache_cleanup_interval_seconds"`
	HTTPTimeout         time.Duration `mapstructure:"-"`
	CacheTTL            time.Duration `mapstructure:"-"`
	CacheCleanupInt     time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables, config files, and the
// already-parsed flag set (bound so flags win over env and defaults).
func Load(flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "learnstack-course-harvester")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "harvester.log")
	v.SetDefault("sources_file", "./configs/sources.yaml")
	v.SetDefault("notifiers_file", "")
	v.SetDefault("output_file", "resources.json")
	v.SetDefault("youtube_api_key", "")
	v.SetDefault("anthropic_api_key", "")
	v.SetDefault("max_results_per_source", 10)
	v.SetDefault("http_timeout_seconds", 15)
	v.SetDefault("schedule", false)
	v.SetDefault("schedule_day", 1)
	v.SetDefault("schedule_hour", 6)
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/descriptions.db")
	v.SetDefault("cache_ttl_seconds", int64((30*24*time.Hour)/time.Second))
	v.SetDefault("cache_cleanup_interval_seconds", int64((24*time.Hour)/time.Second))

	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.MaxResultsPerSource <= 0 {
		return nil, fmt.Errorf("invalid max_results_per_source (must be positive)")
	}
	if cfg.HTTPTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	if cfg.ScheduleDay < 1 || cfg.ScheduleDay > 28 {
		return nil, fmt.Errorf("invalid schedule_day (must be 1..28)")
	}
	if cfg.ScheduleHour < 0 || cfg.ScheduleHour > 23 {
		return nil, fmt.Errorf("invalid schedule_hour (must be 0..23)")
	}
	if cfg.CacheTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid cache_ttl_seconds (must be positive seconds)")
	}
	if cfg.CacheCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid cache_cleanup_interval_seconds (must be positive seconds)")
	}

	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second
	cfg.CacheTTL = time.Duration(cfg.CacheTTLSeconds) * time.Second
	cfg.CacheCleanupInt = time.Duration(cfg.CacheCleanupSeconds) * time.Second

	return &cfg, nil
}
