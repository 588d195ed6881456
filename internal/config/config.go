package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zzstoatzz/percolation/internal/render"
)

const (
	DefaultGamma          = 0.5
	DefaultSizeGamma      = 0.5
	DefaultBaseSize       = 150.0
	DefaultSizeFloor      = 0.25
	DefaultAlphaFloor     = 0.5
	DefaultPulseThreshold = 0.1
	DefaultPulseEven      = 1.2
	DefaultPulseOdd       = 1.1
	DefaultFPS            = 20
)

type Config struct {
	Transform  string  `yaml:"transform"` // "log" or "power"
	Gamma      float64 `yaml:"gamma"`
	SizeGamma  float64 `yaml:"size_gamma"`
	BaseSize   float64 `yaml:"base_size"`
	SizeFloor  float64 `yaml:"size_floor"`
	AlphaFloor float64 `yaml:"alpha_floor"`

	Pulse PulseConfig `yaml:"pulse"`

	FPS   int    `yaml:"fps"`
	Theme string `yaml:"theme"`
}

type PulseConfig struct {
	Threshold  float64 `yaml:"threshold"`
	EvenFactor float64 `yaml:"even_factor"`
	OddFactor  float64 `yaml:"odd_factor"`
}

func DefaultConfig() *Config {
	return &Config{
		Transform:  string(render.TransformLog),
		Gamma:      DefaultGamma,
		SizeGamma:  DefaultSizeGamma,
		BaseSize:   DefaultBaseSize,
		SizeFloor:  DefaultSizeFloor,
		AlphaFloor: DefaultAlphaFloor,
		Pulse: PulseConfig{
			Threshold:  DefaultPulseThreshold,
			EvenFactor: DefaultPulseEven,
			OddFactor:  DefaultPulseOdd,
		},
		FPS:   DefaultFPS,
		Theme: "lattice",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// RenderOptions translates the config into mapper options, leaving the
// gradient and unconnected style at their defaults.
func (c *Config) RenderOptions() render.Options {
	opts := render.DefaultOptions()
	if c.Transform == string(render.TransformPower) {
		opts.Transform = render.TransformPower
	}
	opts.Gamma = c.Gamma
	opts.SizeGamma = c.SizeGamma
	opts.BaseSize = c.BaseSize
	opts.SizeFloor = c.SizeFloor
	opts.AlphaFloor = c.AlphaFloor
	return opts
}

// PulseTracker builds a tracker from the config's pulse constants.
func (c *Config) PulseTracker() *render.PulseTracker {
	return render.NewPulseTracker(c.Pulse.Threshold, c.Pulse.EvenFactor, c.Pulse.OddFactor)
}
