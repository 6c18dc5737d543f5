// Package contracts defines the interface contracts for the Splinter MVP.
// These are design artifacts - not compiled code.
// Actual implementations go in internal/config/
package contracts

// ConfigService defines the interface for configuration management.
type ConfigService interface {
	// Load reads configuration from file, falling back to defaults.
	Load(path string) (*Config, error)

	// Save writes configuration to file atomically.
	Save(config *Config, path string) error

	// Get retrieves a configuration value by dot path
	// (e.g., "generate.long", "logging.level").
	Get(path string) (string, error)

	// Set updates a configuration value by dot path.
	Set(path, value string) error

	// Init creates a default configuration file.
	Init() error
}

// Config represents the complete application configuration.
type Config struct {
	Version  int            `yaml:"version"`
	Home     string         `yaml:"home"`
	Generate GenerateConfig `yaml:"generate"`
	Security SecurityConfig `yaml:"security"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GenerateConfig defines phrase generation defaults.
type GenerateConfig struct {
	// Long defaults random to 24-word phrases when true.
	Long bool `yaml:"long"`
}

// SecurityConfig defines security settings.
type SecurityConfig struct {
	// MemoryLock controls whether secret buffers are mlock'd.
	MemoryLock bool `yaml:"memory_lock"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"` // text, json, auto
	Color         string `yaml:"color"`          // auto, always, never
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings. Seed words and share lines
// never reach the log at any level.
type LoggingConfig struct {
	Level string `yaml:"level"` // off, error, debug
	File  string `yaml:"file"`
}

// ConfigDefaults returns the default configuration.
func ConfigDefaults() *Config {
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

// Environment variables overriding configuration values.
const (
	EnvHome         = "SPLINTER_HOME"
	EnvOutputFormat = "SPLINTER_OUTPUT_FORMAT"
	EnvVerbose      = "SPLINTER_VERBOSE"
	EnvLogLevel     = "SPLINTER_LOG_LEVEL"
	EnvNoColor      = "NO_COLOR"
)

// Config-related errors.
var (
	ErrConfigNotFound   = Error{Code: "CONFIG_NOT_FOUND", Message: "configuration file not found"}
	ErrConfigInvalid    = Error{Code: "CONFIG_INVALID", Message: "configuration file is invalid"}
	ErrUnknownConfigKey = Error{Code: "UNKNOWN_CONFIG_KEY", Message: "unknown config key"}
)
