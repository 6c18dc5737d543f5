package config

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.splinter",
		Generate: GenerateConfig{
			Long: false,
		},
		Security: SecurityConfig{
			MemoryLock: true,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.splinter/splinter.log",
		},
	}
}
