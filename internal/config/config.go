package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/projectile/internal/ballistics"
)

const (
	DefaultAcceleration = -9.81
	DefaultEnd          = 10.0
	DefaultSpeed        = 30.0
	DefaultAngle        = 45.0
	DefaultMass         = 10.0
	DefaultPlotWidth    = 16.0
	DefaultPlotHeight   = 8.0
	DefaultPlotDir      = "img/"
	DefaultTitle        = "trajectory"
)

var ErrInvalidConfig = errors.New("config: invalid value")

type Config struct {
	Projectile       ProjectileConfig `yaml:"projectile"`
	Acceleration     float64          `yaml:"acceleration"`
	Start            float64          `yaml:"start"`
	End              float64          `yaml:"end"`
	Samples          int              `yaml:"samples"`
	SamplesPerSecond int              `yaml:"samples_per_second"`
	StrictRange      bool             `yaml:"strict_range"`
	Stop             StopConfig       `yaml:"stop"`
	Render           RenderConfig     `yaml:"render"`
}

type ProjectileConfig struct {
	InitialY float64 `yaml:"initial_y"`
	Speed    float64 `yaml:"speed"`
	Angle    float64 `yaml:"angle"`
	Mass     float64 `yaml:"mass"`
}

type StopConfig struct {
	Enabled bool    `yaml:"enabled"`
	Y       float64 `yaml:"y"`
	// AtApex replaces Y with the absolute apex height.
	AtApex bool `yaml:"at_apex"`
}

type RenderConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Dir    string  `yaml:"dir"`
	XLabel string  `yaml:"x_label"`
	YLabel string  `yaml:"y_label"`
	Title  string  `yaml:"title"`
}

func DefaultConfig() *Config {
	return &Config{
		Projectile: ProjectileConfig{
			Speed: DefaultSpeed,
			Angle: DefaultAngle,
			Mass:  DefaultMass,
		},
		Acceleration:     DefaultAcceleration,
		End:              DefaultEnd,
		SamplesPerSecond: ballistics.DefaultSamplesPerSecond,
		Stop:             StopConfig{Enabled: true},
		Render: RenderConfig{
			Width:  DefaultPlotWidth,
			Height: DefaultPlotHeight,
			Dir:    DefaultPlotDir,
			XLabel: "d_x(t)",
			YLabel: "d_y(t)",
			Title:  DefaultTitle,
		},
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

// Validate checks values the model itself accepts but a run cannot use.
func (c *Config) Validate() error {
	if c.Projectile.Mass <= 0 {
		return fmt.Errorf("%w: mass must be positive, got %g", ErrInvalidConfig, c.Projectile.Mass)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("%w: plot size must be positive, got %gx%g", ErrInvalidConfig, c.Render.Width, c.Render.Height)
	}
	if c.SamplesPerSecond < 0 {
		return fmt.Errorf("%w: samples_per_second must not be negative", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) Build() ballistics.Projectile {
	p := c.Projectile
	return ballistics.New(p.InitialY, p.Speed, p.Angle, p.Mass)
}

// PathConfig resolves the sampling options, including an apex stop height.
func (c *Config) PathConfig() (ballistics.PathConfig, error) {
	pc := ballistics.PathConfig{
		Samples:          c.Samples,
		SamplesPerSecond: c.SamplesPerSecond,
		ConditionalStop:  c.Stop.Enabled,
		StopY:            c.Stop.Y,
		StrictRange:      c.StrictRange,
	}
	if c.Stop.Enabled && c.Stop.AtApex {
		apex, err := c.Build().Apex(c.Acceleration)
		if err != nil {
			return pc, err
		}
		pc.StopY = apex.Y
	}
	return pc, nil
}
