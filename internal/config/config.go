// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/snackbars/internal/model"
)

// Default configuration values.
const (
	DefaultShortDuration = 4 * time.Second
	DefaultLongDuration  = 10 * time.Second
	DefaultVolume        = 80
	DefaultAppName       = "snackbars"
	DefaultInfoIcon      = "dialog-information"
	DefaultErrorIcon     = "dialog-warning"
	DefaultCardWidth     = 0
)

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "4s", "1m", "1h30m", or integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '4s', '1m' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config represents the snackbars configuration.
type Config struct {
	Durations DurationsConfig `toml:"durations" yaml:"durations"`
	Audio     AudioConfig     `toml:"audio" yaml:"audio"`
	TUI       TUIConfig       `toml:"tui" yaml:"tui"`
	Desktop   DesktopConfig   `toml:"desktop" yaml:"desktop"`
}

// DurationsConfig maps the named snackbar durations to wall-clock time.
// Indefinite has no entry: it never auto-dismisses.
type DurationsConfig struct {
	Short Duration `toml:"short" yaml:"short"`
	Long  Duration `toml:"long" yaml:"long"`
}

// AudioConfig contains audio cue settings.
type AudioConfig struct {
	Enabled bool        `toml:"enabled" yaml:"enabled"`
	Volume  int         `toml:"volume" yaml:"volume"` // 0-100
	Sounds  SoundConfig `toml:"sounds" yaml:"sounds"`
}

// SoundConfig contains per-severity sound file paths.
type SoundConfig struct {
	Info  string `toml:"info" yaml:"info"`
	Error string `toml:"error" yaml:"error"`
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	ShowHelp  bool `toml:"show_help" yaml:"show_help"`
	CardWidth int  `toml:"card_width" yaml:"card_width"` // 0 = full width
}

// DesktopConfig holds settings for delivery through the desktop notification server.
type DesktopConfig struct {
	AppName   string `toml:"app_name" yaml:"app_name"`
	InfoIcon  string `toml:"info_icon" yaml:"info_icon"`
	ErrorIcon string `toml:"error_icon" yaml:"error_icon"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Durations: DurationsConfig{
			Short: Duration(DefaultShortDuration),
			Long:  Duration(DefaultLongDuration),
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  DefaultVolume,
		},
		TUI: TUIConfig{
			ShowHelp:  true,
			CardWidth: DefaultCardWidth,
		},
		Desktop: DesktopConfig{
			AppName:   DefaultAppName,
			InfoIcon:  DefaultInfoIcon,
			ErrorIcon: DefaultErrorIcon,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "snackbars", "config.toml")
}

// StatePath returns the path to the state directory (logs).
// Uses XDG_STATE_HOME if set, otherwise ~/.local/state.
func StatePath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "snackbars")
}

// LogPath returns the path of the TUI log file.
func LogPath() string {
	return filepath.Join(StatePath(), "snackbars.log")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Durations.Short <= 0 {
		return fmt.Errorf("durations.short must be positive, got %s", c.Durations.Short.Duration())
	}
	if c.Durations.Long < c.Durations.Short {
		return fmt.Errorf("durations.long (%s) must not be shorter than durations.short (%s)",
			c.Durations.Long.Duration(), c.Durations.Short.Duration())
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}
	if c.TUI.CardWidth < 0 {
		return fmt.Errorf("card_width must not be negative, got %d", c.TUI.CardWidth)
	}
	return nil
}

// TimeoutFor returns how long a snackbar with the given duration stays visible.
// The boolean is false for durations that never auto-dismiss.
func (c *Config) TimeoutFor(d model.Duration) (time.Duration, bool) {
	switch d {
	case model.DurationShort:
		return c.Durations.Short.Duration(), true
	case model.DurationLong:
		return c.Durations.Long.Duration(), true
	case model.DurationIndefinite:
		return 0, false
	default:
		return c.Durations.Short.Duration(), true
	}
}

// SoundFor returns the sound file configured for the severity, with ~ expanded.
func (c *Config) SoundFor(s model.Severity) string {
	var path string
	switch s {
	case model.SeverityInfo:
		path = c.Audio.Sounds.Info
	case model.SeverityError:
		path = c.Audio.Sounds.Error
	}
	return expandPath(path)
}

// IconFor returns the freedesktop icon name used for the severity.
func (c *Config) IconFor(s model.Severity) string {
	switch s {
	case model.SeverityError:
		return c.Desktop.ErrorIcon
	case model.SeverityInfo:
		return c.Desktop.InfoIcon
	}
	return c.Desktop.InfoIcon
}

// EnsureStateDir creates the state directory if it doesn't exist.
func EnsureStateDir() error {
	path := StatePath()
	if path == "" {
		return errors.New("unable to determine state directory")
	}
	return os.MkdirAll(path, 0755)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
