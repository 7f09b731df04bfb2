package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"raintarget/internal/logging"
	"raintarget/internal/target"
)

// Defaults.
const (
	DefaultAddr       = ""
	DefaultPort       = 8484
	DefaultBotTimeout = 60 * time.Second
)

// Config holds runtime configuration for every raintarget command.
type Config struct {
	// ScheduledOvers is used whenever a request leaves scheduled overs unset.
	ScheduledOvers int

	Addr    string
	Port    int
	Metrics bool

	LogLevel  string
	LogFormat string

	TelegramToken string
	AllowedUsers  []int64
	BotTimeout    time.Duration
}

// Default returns a Config with default values.
func Default() Config {
	return Config{
		ScheduledOvers: target.DefaultScheduledOvers,
		Addr:           DefaultAddr,
		Port:           DefaultPort,
		LogLevel:       "info",
		LogFormat:      logging.FormatConsole,
		BotTimeout:     DefaultBotTimeout,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.ScheduledOvers < target.MinScheduledOvers || c.ScheduledOvers > target.MaxScheduledOvers {
		return fmt.Errorf("scheduled overs must be between %d and %d, got %d",
			target.MinScheduledOvers, target.MaxScheduledOvers, c.ScheduledOvers)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 0 and 65535, got %d", c.Port)
	}
	switch c.LogFormat {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("log format must be %s or %s, got %q", logging.FormatConsole, logging.FormatJSON, c.LogFormat)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.BotTimeout <= 0 {
		return fmt.Errorf("bot timeout must be positive")
	}
	return nil
}

// ListenAddr returns the host:port the web server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Addr, c.Port)
}

// DefaultPath returns ~/.raintarget/config.toml, or "" if there is no home.
func DefaultPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".raintarget", "config.toml")
	}
	return ""
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// ParseUserIDs parses a comma separated list of Telegram user IDs.
func ParseUserIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse user id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// setter applies values while respecting flags the user set explicitly.
type setter struct {
	changed map[string]bool
}

func newSetter(changed map[string]bool) *setter {
	return &setter{changed: changed}
}

func (s *setter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *setter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *setter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *setter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func (s *setter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// Accepts "true", "1" as true, anything else as false.
func (s *setter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

func (s *setter) setUsers(flag string, value []int64, dst *[]int64) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = value
}
