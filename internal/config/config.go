// Package config loads the command-line configuration from YAML or TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/ngrash/timedate/internal/environ"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "TIMEDATE_CONFIG"

// Catalog sources.
const (
	SourceCompiled = "compiled"
	SourceZoneinfo = "zoneinfo"
	SourceTZData   = "tzdata"
)

// Config holds the complete configuration.
type Config struct {
	Log     LogConfig     `yaml:"log" toml:"log"`
	Catalog CatalogConfig `yaml:"catalog" toml:"catalog"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level      string `yaml:"level" toml:"level" validate:"loglevel"`
	Format     string `yaml:"format" toml:"format" validate:"oneof=console json"`
	File       string `yaml:"file" toml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups" validate:"gte=0"`
}

// CatalogConfig selects where zone names and rules come from.
type CatalogConfig struct {
	Source      string `yaml:"source" toml:"source" validate:"oneof=compiled zoneinfo tzdata"`
	ZoneinfoDir string `yaml:"zoneinfo_dir" toml:"zoneinfo_dir" validate:"required_if=Source zoneinfo"`
	TZDataPath  string `yaml:"tzdata_path" toml:"tzdata_path" validate:"required_if=Source tzdata"`
	ListLimit   int    `yaml:"list_limit" toml:"list_limit" validate:"min=1,max=1000"`
}

// Default returns the configuration used without a config file.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Catalog: CatalogConfig{
			Source:    SourceCompiled,
			ListLimit: 50,
		},
	}
}

// Path returns flag if set, otherwise the value of TIMEDATE_CONFIG.
func Path(flag string, env environ.Env) string {
	if flag != "" {
		return flag
	}
	if env == nil {
		env = environ.OS{}
	}
	return env.Getenv(EnvPath)
}

// Load reads the file at path over the defaults and validates the result.
// An empty path yields the validated defaults. The format is chosen by
// extension: .yaml, .yml or .toml.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := decode(path, raw, &cfg); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validate %s: %w", path, err)
	}
	return cfg, nil
}

func decode(path string, raw []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	case ".toml":
		md, err := toml.Decode(string(raw), cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown keys: %v", undecoded)
		}
		return nil
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
}

// Validate checks value ranges and cross-field requirements.
func (c Config) Validate() error {
	validate := validator.New()
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, err := zerolog.ParseLevel(fl.Field().String())
		return err == nil && fl.Field().String() != ""
	})
	return validate.Struct(c)
}
