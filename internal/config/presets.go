package config

import "sort"

// Presets bundle display settings that work well for common trace scales.
var Presets = map[string]*Config{
	// subtle: power-law compression and gentle pulses, good for small grids
	// where individual merges are easy to follow.
	"subtle": {
		Transform: "power", Gamma: 0.7, SizeGamma: 0.7,
		BaseSize: 120, SizeFloor: 0.3, AlphaFloor: 0.6,
		Pulse: PulseConfig{Threshold: 0.2, EvenFactor: 1.1, OddFactor: 1.05},
		FPS:   12, Theme: "lattice",
	},
	// vivid: strong log compression and pronounced pulses for large grids
	// dominated by one giant cluster.
	"vivid": {
		Transform: "log", Gamma: 0.5, SizeGamma: 0.4,
		BaseSize: 180, SizeFloor: 0.2, AlphaFloor: 0.45,
		Pulse: PulseConfig{Threshold: 0.05, EvenFactor: 1.3, OddFactor: 1.15},
		FPS:   30, Theme: "ember",
	},
	// paper: static-figure settings, no pulsing.
	"paper": {
		Transform: "log", Gamma: 0.5, SizeGamma: 0.5,
		BaseSize: 150, SizeFloor: 0.25, AlphaFloor: 0.5,
		Pulse: PulseConfig{Threshold: 1.0, EvenFactor: 1.0, OddFactor: 1.0},
		FPS:   10, Theme: "mono",
	},
}

// GetPreset returns the named preset, or nil when unknown.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
