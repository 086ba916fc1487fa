package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth    = 800
	DefaultHeight   = 600
	DefaultBudget   = 100
	DefaultRadius   = 2.0
	DefaultStrategy = "parallel"
	DefaultPalette  = "heat"
)

type Config struct {
	Strategy string       `yaml:"strategy"`
	Width    int          `yaml:"width"`
	Height   int          `yaml:"height"`
	Budget   int          `yaml:"budget"`
	Radius   float64      `yaml:"radius"`
	Workers  int          `yaml:"workers"`
	Palette  string       `yaml:"palette"`
	Region   RegionConfig `yaml:"region"`
}

// RegionConfig bounds the sampled rectangle in the complex plane.
type RegionConfig struct {
	RealMin float64 `yaml:"real_min"`
	RealMax float64 `yaml:"real_max"`
	ImagMin float64 `yaml:"imag_min"`
	ImagMax float64 `yaml:"imag_max"`
}

func DefaultConfig() *Config {
	return &Config{
		Strategy: DefaultStrategy,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Budget:   DefaultBudget,
		Radius:   DefaultRadius,
		Palette:  DefaultPalette,
		Region:   FullView,
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
