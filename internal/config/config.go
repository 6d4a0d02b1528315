package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/lunchtray/internal/linq"
	"github.com/five82/lunchtray/internal/menu"
)

// Config captures everything lunchtray reads from config.toml.
type Config struct {
	DistrictID     string
	BuildingID     string
	MenuPlans      []string
	Cutoff         menu.Clock
	UpdateInterval time.Duration
	CalendarDays   int
	APIBaseURL     string
	LogLevel       string
	LogFile        string
	CachePath      string // empty disables the snapshot cache

	// Warnings lists values that were ignored in favor of defaults.
	Warnings []string
}

const (
	appName = "lunchtray"

	defaultUpdateMinutes = 180
	defaultCalendarDays  = 30
	defaultLogLevel      = "info"

	cacheDisabled = "off"
)

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		Cutoff:         menu.DefaultCutoff,
		UpdateInterval: defaultUpdateMinutes * time.Minute,
		CalendarDays:   defaultCalendarDays,
		APIBaseURL:     linq.DefaultBaseURL,
		LogLevel:       defaultLogLevel,
		LogFile:        filepath.Join(xdg.StateHome, appName, appName+".log"),
		CachePath:      filepath.Join(xdg.CacheHome, appName, "snapshot.db"),
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		DistrictID     string   `toml:"district_id"`
		BuildingID     string   `toml:"building_id"`
		MenuPlans      []string `toml:"menu_plans"`
		CutoffTime     any      `toml:"cutoff_time"`
		UpdateInterval int      `toml:"update_interval"`
		CalendarDays   int      `toml:"calendar_days"`
		APIBaseURL     string   `toml:"api_base_url"`
		LogLevel       string   `toml:"log_level"`
		LogFile        string   `toml:"log_file"`
		CachePath      string   `toml:"cache_path"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.DistrictID = strings.TrimSpace(raw.DistrictID)
	cfg.BuildingID = strings.TrimSpace(raw.BuildingID)
	for _, plan := range raw.MenuPlans {
		if plan = strings.TrimSpace(plan); plan != "" {
			cfg.MenuPlans = append(cfg.MenuPlans, plan)
		}
	}
	if cutoff, warning := parseCutoff(raw.CutoffTime); warning != "" {
		cfg.Warnings = append(cfg.Warnings, warning)
	} else if raw.CutoffTime != nil {
		cfg.Cutoff = cutoff
	}
	if raw.UpdateInterval > 0 {
		cfg.UpdateInterval = time.Duration(raw.UpdateInterval) * time.Minute
	}
	if raw.CalendarDays > 0 {
		cfg.CalendarDays = raw.CalendarDays
	}
	if base := strings.TrimSpace(raw.APIBaseURL); base != "" {
		cfg.APIBaseURL = base
	}
	if level := strings.ToLower(strings.TrimSpace(raw.LogLevel)); level != "" {
		cfg.LogLevel = level
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	switch cachePath := strings.TrimSpace(raw.CachePath); {
	case strings.EqualFold(cachePath, cacheDisabled):
		cfg.CachePath = ""
	case cachePath != "":
		cfg.CachePath = mustExpand(cachePath)
	}

	return cfg, nil
}

// Validate reports settings that network commands cannot run without.
func (c Config) Validate() error {
	var missing []string
	if c.DistrictID == "" {
		missing = append(missing, "district_id")
	}
	if c.BuildingID == "" {
		missing = append(missing, "building_id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config is missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// CalendarWindow returns the look-ahead window as a duration.
func (c Config) CalendarWindow() time.Duration {
	days := c.CalendarDays
	if days <= 0 {
		days = defaultCalendarDays
	}
	return time.Duration(days) * 24 * time.Hour
}

// parseCutoff accepts a quoted "HH:MM" string or a TOML local time. A
// non-empty warning means the value was rejected and the default applies.
func parseCutoff(value any) (menu.Clock, string) {
	switch v := value.(type) {
	case nil:
		return menu.DefaultCutoff, ""
	case string:
		if strings.TrimSpace(v) == "" {
			return menu.DefaultCutoff, ""
		}
		c, err := menu.ParseClock(v)
		if err != nil {
			return menu.DefaultCutoff, fmt.Sprintf("cutoff_time: %v; using %s", err, menu.DefaultCutoff)
		}
		return c, ""
	case toml.LocalTime:
		return menu.Clock{Hour: v.Hour, Minute: v.Minute}, ""
	default:
		return menu.DefaultCutoff, fmt.Sprintf("cutoff_time: unsupported value %v (%T); using %s", v, v, menu.DefaultCutoff)
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPath(), nil
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
