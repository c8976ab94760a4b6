package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/cnconv/internal/analysis"
	"github.com/san-kum/cnconv/internal/dynamo"
	"github.com/san-kum/cnconv/internal/report"
)

const (
	DefaultEndTime     = 1.0
	DefaultCoefficient = -100.0
	DefaultInitial     = 1.0
	DefaultIntegrator  = "crank-nicolson"
	DefaultFormat      = "table"
	DefaultLogLevel    = "info"
)

type Config struct {
	EndTime     float64 `yaml:"end_time"`
	Coefficient float64 `yaml:"coefficient"`
	Initial     float64 `yaml:"initial"`
	MinExp      int     `yaml:"min_exp"`
	MaxExp      int     `yaml:"max_exp"`
	Integrator  string  `yaml:"integrator"`
	Format      string  `yaml:"format"`
	LogLevel    string  `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		EndTime:     DefaultEndTime,
		Coefficient: DefaultCoefficient,
		Initial:     DefaultInitial,
		MinExp:      analysis.DefaultMinExp,
		MaxExp:      analysis.DefaultMaxExp,
		Integrator:  DefaultIntegrator,
		Format:      DefaultFormat,
		LogLevel:    DefaultLogLevel,
	}
}

// Load reads a YAML file over the defaults; keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto reads a YAML file over base. Keys missing from the file leave the
// corresponding fields of base untouched.
func LoadInto(path string, base *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if _, err := analysis.Resolutions(c.MinExp, c.MaxExp); err != nil {
		return err
	}
	if !report.ValidFormat(c.Format) {
		return fmt.Errorf("unknown format: %s (available: %v)", c.Format, report.Formats)
	}
	return nil
}

func (c *Config) Params() dynamo.Params {
	return dynamo.Params{T: c.EndTime, A: c.Coefficient, X0: c.Initial}
}

func (c *Config) Resolutions() ([]int, error) {
	return analysis.Resolutions(c.MinExp, c.MaxExp)
}
