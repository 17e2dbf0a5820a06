package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const appName = "remindd"

type Config struct {
	DataDir   string          `yaml:"data_dir" env:"REMINDD_DATA_DIR"`
	Log       LogConfig       `yaml:"log"`
	Storage   StorageConfig   `yaml:"storage"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Notify    NotifyConfig    `yaml:"notify"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"REMINDD_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"REMINDD_LOG_FORMAT" env-default:"console"`
	File   string `yaml:"file" env:"REMINDD_LOG_FILE"`
}

type StorageConfig struct {
	Driver      string `yaml:"driver" env:"REMINDD_STORAGE_DRIVER" env-default:"file"`
	Key         string `yaml:"key" env:"REMINDD_STORAGE_KEY" env-default:"tasks"`
	RedisURL    string `yaml:"redis_url" env:"REMINDD_REDIS_URL" env-default:"redis://localhost:6379/0"`
	RedisPrefix string `yaml:"redis_prefix" env:"REMINDD_REDIS_PREFIX" env-default:"remindd:"`
}

type SchedulerConfig struct {
	Interval time.Duration `yaml:"interval" env:"REMINDD_SCHEDULER_INTERVAL" env-default:"10s"`
	Buffer   int           `yaml:"buffer" env:"REMINDD_SCHEDULER_BUFFER" env-default:"16"`
}

type NotifyConfig struct {
	Desktop       bool          `yaml:"desktop" env:"REMINDD_DESKTOP_NOTIFICATIONS" env-default:"false"`
	SoundFile     string        `yaml:"sound_file" env:"REMINDD_SOUND_FILE"`
	ToastDuration time.Duration `yaml:"toast_duration" env:"REMINDD_TOAST_DURATION" env-default:"5s"`
	AutoActivate  bool          `yaml:"auto_activate" env:"REMINDD_AUTO_ACTIVATE" env-default:"false"`
}

func Default() Config {
	return Config{
		DataDir: DefaultDataDir(),
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Storage: StorageConfig{
			Driver:      "file",
			Key:         "tasks",
			RedisURL:    "redis://localhost:6379/0",
			RedisPrefix: "remindd:",
		},
		Scheduler: SchedulerConfig{
			Interval: 10 * time.Second,
			Buffer:   16,
		},
		Notify: NotifyConfig{
			ToastDuration: 5 * time.Second,
		},
	}
}

// Load reads path (when non-empty) and then applies REMINDD_* environment
// overrides.
func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config from env: %w", err)
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = DefaultDataDir()
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDefaultFile loads DefaultPath when it exists and falls back to the
// environment otherwise.
func LoadDefaultFile() (Config, error) {
	path := DefaultPath()
	if _, err := os.Stat(path); err != nil {
		return Load("")
	}
	return Load(path)
}

func (c Config) Validate() error {
	var errs []error
	switch c.Storage.Driver {
	case "file", "sqlite", "redis", "memory":
	default:
		errs = append(errs, fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver))
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		errs = append(errs, errors.New("storage.key: must not be empty"))
	}
	if c.Scheduler.Interval <= 0 || c.Scheduler.Interval >= time.Minute {
		errs = append(errs, fmt.Errorf("scheduler.interval: %s must be between 0 and 1m", c.Scheduler.Interval))
	}
	if c.Scheduler.Buffer <= 0 {
		errs = append(errs, fmt.Errorf("scheduler.buffer: %d must be positive", c.Scheduler.Buffer))
	}
	if c.Notify.ToastDuration <= 0 {
		errs = append(errs, fmt.Errorf("notify.toast_duration: %s must be positive", c.Notify.ToastDuration))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", appName+".yaml")
	}
	return filepath.Join(dir, appName, "config.yaml")
}

func DefaultDataDir() string {
	if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, ".local", "share", appName)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
