package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ramanasai/fitlog/internal/activity"
)

type ReminderConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Time     string   `mapstructure:"time"`     // "18:30"
	Workdays []string `mapstructure:"workdays"` // ["Mon","Wed","Fri"]
	Holidays []string `mapstructure:"holidays"` // ["2025-12-25"]
	Timezone string   `mapstructure:"timezone"` // e.g. "Europe/Berlin" (optional)
}

type ParserConfig struct {
	BareMinutes bool `mapstructure:"bare_minutes"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"` // memory | sqlite
}

type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type Config struct {
	Theme      string                       `mapstructure:"theme"`
	WeightKg   float64                      `mapstructure:"weight_kg"`
	SeedFile   string                       `mapstructure:"seed_file"`
	Parser     ParserConfig                 `mapstructure:"parser"`
	Store      StoreConfig                  `mapstructure:"store"`
	Serve      ServeConfig                  `mapstructure:"serve"`
	Log        LogConfig                    `mapstructure:"log"`
	Activities map[string]activity.Override `mapstructure:"activities"`
	Reminder   ReminderConfig               `mapstructure:"reminder"`
}

func Default() Config {
	return Config{
		Theme:    "default",
		WeightKg: activity.DefaultWeightKg,
		Parser:   ParserConfig{BareMinutes: true},
		Store:    StoreConfig{Driver: "memory"},
		Serve:    ServeConfig{Addr: "127.0.0.1:8222"},
		Log:      LogConfig{Level: "warn"},
		Reminder: ReminderConfig{
			Enabled:  false,
			Time:     "18:00",
			Workdays: []string{"Mon", "Tue", "Wed", "Thu", "Fri"},
			Holidays: []string{},
			Timezone: "",
		},
	}
}

// DefaultPath is ~/.config/fitlog/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fitlog", "config.yaml"), nil
}

// Load reads the config file at path (DefaultPath when empty) over the
// defaults. A missing file is not an error. FITLOG_* environment variables
// override file values, e.g. FITLOG_WEIGHT_KG or FITLOG_STORE_DRIVER.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix("FITLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// defaults
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("weight_kg", cfg.WeightKg)
	v.SetDefault("seed_file", cfg.SeedFile)
	v.SetDefault("parser.bare_minutes", cfg.Parser.BareMinutes)
	v.SetDefault("store.driver", cfg.Store.Driver)
	v.SetDefault("serve.addr", cfg.Serve.Addr)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("reminder.enabled", cfg.Reminder.Enabled)
	v.SetDefault("reminder.time", cfg.Reminder.Time)
	v.SetDefault("reminder.workdays", cfg.Reminder.Workdays)
	v.SetDefault("reminder.holidays", cfg.Reminder.Holidays)
	v.SetDefault("reminder.timezone", cfg.Reminder.Timezone)

	if err := v.ReadInConfig(); err != nil && !isMissing(err) {
		return cfg, fmt.Errorf("config read %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	// normalize workdays
	days := cfg.Reminder.Workdays[:0]
	for _, d := range cfg.Reminder.Workdays {
		if abbr := dayAbbr(d); abbr != "" {
			days = append(days, abbr)
		}
	}
	cfg.Reminder.Workdays = days
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))

	return cfg, cfg.Validate()
}

func isMissing(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// Validate checks values that would otherwise fail later and less clearly.
func (c Config) Validate() error {
	if c.WeightKg <= 0 {
		return fmt.Errorf("weight_kg must be positive, got %v", c.WeightKg)
	}
	switch c.Store.Driver {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("store.driver must be memory or sqlite, got %q", c.Store.Driver)
	}
	if _, err := c.Tables(); err != nil {
		return err
	}
	return nil
}

// Tables returns the built-in activity tables with the configured overrides.
func (c Config) Tables() (activity.Tables, error) {
	return activity.DefaultTables().With(c.Activities)
}

// Calculator builds the metric calculator described by the config.
func (c Config) Calculator() (activity.Calculator, error) {
	tables, err := c.Tables()
	if err != nil {
		return activity.Calculator{}, err
	}
	calc := activity.NewCalculator(tables)
	calc.WeightKg = c.WeightKg
	calc.Parser = activity.Parser{BareMinutes: c.Parser.BareMinutes}
	return calc, nil
}

func (r ReminderConfig) Location() *time.Location {
	if tz := strings.TrimSpace(r.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}

func dayAbbr(d string) string {
	d = strings.ToLower(strings.TrimSpace(d))
	if len(d) < 3 {
		return ""
	}
	return strings.ToUpper(d[:1]) + d[1:3]
}
