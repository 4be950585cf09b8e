package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/limaJavier/lessonplanner/pkg/model"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	envPrefix = "TIMETABLE"
)

type Config struct {
	Env     string        `mapstructure:"env" validate:"oneof=development production"`
	Input   InputConfig   `mapstructure:"input"`
	Output  OutputConfig  `mapstructure:"output"`
	Catalog model.Catalog `mapstructure:"catalog"`
	Search  SearchConfig  `mapstructure:"search"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Server  ServerConfig  `mapstructure:"server"`
}

type InputConfig struct {
	File string `mapstructure:"file" validate:"required"`
}

// OutputConfig selects the report; an empty file means the standard output
type OutputConfig struct {
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format" validate:"oneof=text csv json pdf"`
	Font   string `mapstructure:"font"` // UTF-8 TTF font used by the pdf report
}

type SearchConfig struct {
	Attempts uint64 `mapstructure:"attempts" validate:"min=1,max=1000"`
	Probes   uint64 `mapstructure:"probes" validate:"min=1,max=1000"`
	Strategy string `mapstructure:"strategy" validate:"oneof=jitter exhaustive"`
	Seed     uint64 `mapstructure:"seed"` // 0 picks a time-based seed
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

type MetricsConfig struct {
	File string `mapstructure:"file"` // Prometheus textfile written after each build
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

// Load reads defaults, an optional config file, a .env file, TIMETABLE_* environment variables and the given
// flags, in increasing order of precedence. configFile may be empty to search the usual locations.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if execPath, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(execPath))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("cannot read config file: %w", err)
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Catalog.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Options turns the search section into timetabler options
func (cfg *Config) Options() model.Options {
	return model.Options{
		Catalog:  cfg.Catalog,
		Attempts: cfg.Search.Attempts,
		Probes:   cfg.Search.Probes,
		Strategy: model.ProbeStrategy(cfg.Search.Strategy),
	}
}

func setDefaults(v *viper.Viper) {
	catalog := model.DefaultCatalog()

	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("input.file", "data_input.txt")
	v.SetDefault("output.file", "timetable_output.txt")
	v.SetDefault("output.format", "text")
	v.SetDefault("output.font", "")
	v.SetDefault("catalog.days", catalog.Days)
	v.SetDefault("catalog.times", catalog.Times)
	v.SetDefault("search.attempts", model.DefaultAttempts)
	v.SetDefault("search.probes", model.DefaultProbes)
	v.SetDefault("search.strategy", string(model.JitterProbe))
	v.SetDefault("search.seed", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("metrics.file", "")
	v.SetDefault("server.addr", ":8080")
}

// flagKeys maps command-line flag names to config keys
var flagKeys = map[string]string{
	"file":     "input.file",
	"out":      "output.file",
	"format":   "output.format",
	"font":     "output.font",
	"attempts": "search.attempts",
	"probes":   "search.probes",
	"strategy": "search.strategy",
	"seed":     "search.seed",
	"days":     "catalog.days",
	"times":    "catalog.times",
	"log":      "log.level",
	"metrics":  "metrics.file",
	"addr":     "server.addr",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("cannot bind flag %v: %w", name, err)
		}
	}
	return nil
}
