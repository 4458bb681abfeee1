// Package config loads consept settings from defaults, an optional config
// file, a .env file, CONSEPT_* environment variables and bound flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	m "github.com/mouse-blink/consept/internal/model"
)

// EnvPrefix prefixes every environment override, e.g. CONSEPT_FUZZ_RUNS.
const EnvPrefix = "CONSEPT"

// Keys shared with flag bindings.
const (
	KeyWorkspace      = "workspace"
	KeyEntryFunction  = "entry_function"
	KeyDockerfiles    = "dockerfiles"
	KeyRebuildImages  = "rebuild_images"
	KeyKeepContainers = "keep_containers"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
	KeyTimeLimit      = "concolic.time_limit"
	KeyFaultPrefix    = "concolic.fault_prefix"
	KeyFuzzRuns       = "fuzz.runs"
	KeySanitizer      = "fuzz.sanitizer"
)

// Config is the resolved configuration.
type Config struct {
	Workspace      string            `mapstructure:"workspace"`
	EntryFunction  string            `mapstructure:"entry_function"`
	Dockerfiles    string            `mapstructure:"dockerfiles"`
	RebuildImages  bool              `mapstructure:"rebuild_images"`
	KeepContainers bool              `mapstructure:"keep_containers"`
	Images         map[string]string `mapstructure:"images"`
	Log            LogConfig         `mapstructure:"log"`
	Concolic       ConcolicConfig    `mapstructure:"concolic"`
	Fuzz           FuzzConfig        `mapstructure:"fuzz"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ConcolicConfig configures KLEE runs.
type ConcolicConfig struct {
	TimeLimit   int    `mapstructure:"time_limit"`
	FaultPrefix string `mapstructure:"fault_prefix"`
}

// FuzzConfig configures libFuzzer runs.
type FuzzConfig struct {
	Runs      int    `mapstructure:"runs"`
	Sanitizer string `mapstructure:"sanitizer"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyWorkspace, ".")
	v.SetDefault(KeyEntryFunction, "main")
	v.SetDefault(KeyDockerfiles, "docker")
	v.SetDefault(KeyRebuildImages, false)
	v.SetDefault(KeyKeepContainers, false)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyTimeLimit, 3600)
	v.SetDefault(KeyFaultPrefix, "KLEE: ERROR:")
	v.SetDefault(KeyFuzzRuns, 1000)
	v.SetDefault(KeySanitizer, string(m.SanitizerAddress))
}

// LoadDotEnv loads environment variables from the given .env files (or
// ".env" when none are given). Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	return nil
}

// Load resolves the configuration held by v. file is read when not empty.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)

		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Concolic.TimeLimit <= 0 {
		return fmt.Errorf("%s must be positive", KeyTimeLimit)
	}

	if c.Fuzz.Runs <= 0 {
		return fmt.Errorf("%s must be positive", KeyFuzzRuns)
	}

	if _, err := m.ParseSanitizer(c.Fuzz.Sanitizer); err != nil {
		return err
	}

	if c.EntryFunction == "" {
		return fmt.Errorf("%s must not be empty", KeyEntryFunction)
	}

	return nil
}

// ImageName returns the configured image for tool, falling back to the
// tool's default name.
func (c Config) ImageName(tool m.Tool) string {
	if name := c.Images[string(tool)]; name != "" {
		return name
	}

	return tool.ImageName()
}
