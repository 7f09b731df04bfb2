package config

import "os"

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "RAINTARGET_"

// ApplyEnv applies RAINTARGET_* environment variables, skipping explicitly
// set flags. TELEGRAM_BOT_TOKEN is honoured when RAINTARGET_TELEGRAM_TOKEN is
// unset.
func ApplyEnv(cfg *Config, changed map[string]bool) error {
	s := newSetter(changed)

	if err := s.setIntFromString("scheduled-overs", os.Getenv(EnvPrefix+"SCHEDULED_OVERS"), &cfg.ScheduledOvers); err != nil {
		return err
	}
	s.setString("addr", os.Getenv(EnvPrefix+"ADDR"), &cfg.Addr)
	if err := s.setIntFromString("port", os.Getenv(EnvPrefix+"PORT"), &cfg.Port); err != nil {
		return err
	}
	s.setBoolFromString("metrics", os.Getenv(EnvPrefix+"METRICS"), &cfg.Metrics)
	s.setString("log-level", os.Getenv(EnvPrefix+"LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", os.Getenv(EnvPrefix+"LOG_FORMAT"), &cfg.LogFormat)

	token := os.Getenv(EnvPrefix + "TELEGRAM_TOKEN")
	if token == "" {
		token = os.Getenv("TELEGRAM_BOT_TOKEN")
	}
	s.setString("token", token, &cfg.TelegramToken)

	if raw := os.Getenv(EnvPrefix + "ALLOWED_USERS"); raw != "" {
		ids, err := ParseUserIDs(raw)
		if err != nil {
			return err
		}
		s.setUsers("allowed-users", ids, &cfg.AllowedUsers)
	}

	return s.setDuration("bot-timeout", os.Getenv(EnvPrefix+"BOT_TIMEOUT"), &cfg.BotTimeout)
}
