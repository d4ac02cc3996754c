package config

const (
	defaultConfigPath         = "~/.config/ccaviewer/config.toml"
	defaultProjectConfigName  = "ccaviewer.toml"
	defaultMagicLength        = 25
	defaultPauseMode          = PauseAlways
	defaultLockTimeoutSeconds = 5
	defaultLogFormat          = "console"
	defaultLogLevel           = "warn"
)

// Pause modes accepted by extract.pause.
const (
	PauseAlways = "always"
	PauseAuto   = "auto"
	PauseNever  = "never"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Extract: Extract{
			VerifyMagic: true,
			MagicLength: defaultMagicLength,
			Pause:       defaultPauseMode,
		},
		Editor: Editor{
			LockTimeoutSeconds: defaultLockTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
