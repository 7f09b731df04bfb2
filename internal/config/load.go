package config

// Resolve builds the effective configuration: defaults, then the TOML file at
// path (if it exists), then the environment. Values whose flag names appear
// in changed are left alone so flags keep the highest precedence; the caller
// is expected to have written flag values into base already.
func Resolve(base Config, path string, changed map[string]bool) (Config, error) {
	cfg := base
	if path != "" && FileExists(path) {
		fc, err := LoadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := ApplyFile(&cfg, fc, changed); err != nil {
			return cfg, err
		}
	}
	if err := ApplyEnv(&cfg, changed); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
