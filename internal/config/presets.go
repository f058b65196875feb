package config

import "sort"

const (
	Earth = -9.81
	Moon  = -1.62
	Mars  = -3.71
)

func preset(y0, speed, angle, mass, a, end float64) *Config {
	cfg := DefaultConfig()
	cfg.Projectile = ProjectileConfig{InitialY: y0, Speed: speed, Angle: angle, Mass: mass}
	cfg.Acceleration = a
	cfg.End = end
	return cfg
}

var Presets = map[string]map[string]*Config{
	"earth": {
		"classic": preset(0, 30, 45, 10, Earth, 10),
		"cliff":   preset(50, 20, 15, 2, Earth, 10),
		"lob":     preset(1.5, 12, 70, 0.45, Earth, 5),
		"steep":   preset(0, 40, 85, 5, Earth, 10),
	},
	"moon": {
		"classic": preset(0, 30, 45, 10, Moon, 30),
	},
	"mars": {
		"classic": preset(0, 30, 45, 10, Mars, 15),
	},
}

// GetPreset returns a copy of the named preset so callers can override fields.
func GetPreset(body, name string) *Config {
	bodyPresets, ok := Presets[body]
	if !ok {
		return nil
	}
	cfg, ok := bodyPresets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(body string) []string {
	bodyPresets, ok := Presets[body]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(bodyPresets))
	for name := range bodyPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListBodies() []string {
	bodies := make([]string, 0, len(Presets))
	for body := range Presets {
		bodies = append(bodies, body)
	}
	sort.Strings(bodies)
	return bodies
}
