package config

import "sort"

var Presets = map[string]*Config{
	"stiff": {
		EndTime: 1.0, Coefficient: -100.0, Initial: 1.0,
		MinExp: 3, MaxExp: 10, Integrator: "crank-nicolson",
	},
	"mild": {
		EndTime: 1.0, Coefficient: -1.0, Initial: 1.0,
		MinExp: 3, MaxExp: 10, Integrator: "crank-nicolson",
	},
	"growth": {
		EndTime: 1.0, Coefficient: 1.0, Initial: 1.0,
		MinExp: 3, MaxExp: 10, Integrator: "crank-nicolson",
	},
	"fine": {
		EndTime: 1.0, Coefficient: -100.0, Initial: 1.0,
		MinExp: 6, MaxExp: 14, Integrator: "crank-nicolson",
	},
	"long": {
		EndTime: 10.0, Coefficient: -2.0, Initial: 1.0,
		MinExp: 5, MaxExp: 12, Integrator: "crank-nicolson",
	},
}

// GetPreset returns a copy of the named preset with the default format and
// log level filled in, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
