package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML-friendly types.
type FileConfig struct {
	ScheduledOvers int     `toml:"scheduled_overs"`
	Addr           string  `toml:"addr"`
	Port           int     `toml:"port"`
	Metrics        *bool   `toml:"metrics"`
	LogLevel       string  `toml:"log_level"`
	LogFormat      string  `toml:"log_format"`
	TelegramToken  string  `toml:"telegram_token"`
	AllowedUsers   []int64 `toml:"allowed_users"`
	BotTimeout     string  `toml:"bot_timeout"`
}

// LoadFile reads and parses a TOML config file.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

// ApplyFile copies file values into cfg, skipping explicitly set flags.
func ApplyFile(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newSetter(changed)

	s.setInt("scheduled-overs", fc.ScheduledOvers, &cfg.ScheduledOvers)
	s.setString("addr", fc.Addr, &cfg.Addr)
	s.setInt("port", fc.Port, &cfg.Port)
	s.setBool("metrics", fc.Metrics, &cfg.Metrics)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)
	s.setString("token", fc.TelegramToken, &cfg.TelegramToken)
	s.setUsers("allowed-users", fc.AllowedUsers, &cfg.AllowedUsers)

	return s.setDuration("bot-timeout", fc.BotTimeout, &cfg.BotTimeout)
}
