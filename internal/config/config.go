// Package config loads runtime settings for the lotomatrix CLI.
//
// Sources, lowest precedence first: built-in defaults, an optional config
// file (toml, yaml or json), LOTOMATRIX_* environment variables, and flags
// bound by the caller. The matrix column layout is not configurable here; it
// is fixed in parser.DefaultLayout.
package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/ukaji3/lotomatrix-go/pkg/lotomatrix/convert"
)

// EnvPrefix prefixes environment overrides, e.g. LOTOMATRIX_CONVERTER_TIMEOUT.
const EnvPrefix = "LOTOMATRIX"

// Config holds runtime settings.
type Config struct {
	InputDir     string          `mapstructure:"input_dir"`
	OutputFile   string          `mapstructure:"output_file"`
	ConvertedDir string          `mapstructure:"converted_dir"`
	ReportJSON   string          `mapstructure:"report_json"`
	Workers      int             `mapstructure:"workers"`
	AllSheets    bool            `mapstructure:"all_sheets"`
	Converter    ConverterConfig `mapstructure:"converter"`
	Log          LogConfig       `mapstructure:"log"`
}

// ConverterConfig configures legacy .xls conversion.
type ConverterConfig struct {
	Command   string        `mapstructure:"command"`
	Timeout   time.Duration `mapstructure:"timeout"`
	KillNames []string      `mapstructure:"kill_names"`
}

// LogConfig configures logging.
type LogConfig struct {
	JSON  bool   `mapstructure:"json"`
	Level string `mapstructure:"level"`
}

// SetDefaults registers default values for every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input_dir", "planilhas")
	v.SetDefault("output_file", "saida/matriz_consolidada.xlsx")
	v.SetDefault("converted_dir", "convertidos")
	v.SetDefault("report_json", "")
	v.SetDefault("workers", 1)
	v.SetDefault("all_sheets", false)

	v.SetDefault("converter.command", convert.DefaultCommand)
	v.SetDefault("converter.timeout", convert.DefaultTimeout)
	v.SetDefault("converter.kill_names", []string{})

	v.SetDefault("log.json", false)
	v.SetDefault("log.level", "info")
}

// NewViper returns a viper instance with defaults and environment binding.
// If configFile is non-empty it is read as well.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", configFile)
		}
	}
	return v, nil
}

// Load reads and validates a Config from v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the run cannot work with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.InputDir) == "" {
		return errors.New("input_dir is empty")
	}
	if strings.TrimSpace(c.OutputFile) == "" {
		return errors.New("output_file is empty")
	}
	if strings.TrimSpace(c.ConvertedDir) == "" {
		return errors.New("converted_dir is empty")
	}
	if c.Workers < 1 {
		return errors.Newf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Converter.Timeout <= 0 {
		return errors.Newf("converter.timeout must be positive, got %s", c.Converter.Timeout)
	}
	if _, err := convert.ParseCommand(c.Converter.Command); err != nil {
		return err
	}
	return nil
}

// ConvertConfig returns the converter settings for convert.New.
func (c *Config) ConvertConfig() convert.Config {
	return convert.Config{
		OutDir:    c.ConvertedDir,
		InputRoot: c.InputDir,
		Command:   c.Converter.Command,
		Timeout:   c.Converter.Timeout,
		KillNames: c.Converter.KillNames,
	}
}
