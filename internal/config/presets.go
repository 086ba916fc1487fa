package config

import "sort"

// FullView frames the whole set with a little margin.
var FullView = RegionConfig{RealMin: -2.5, RealMax: 1.0, ImagMin: -1.25, ImagMax: 1.25}

// Classic landmarks. Deep zooms get larger budgets because filament
// detail needs more iterations to resolve.
var Presets = map[string]*Config{
	"full": {
		Strategy: DefaultStrategy, Width: 800, Height: 600, Budget: 100, Radius: DefaultRadius, Palette: DefaultPalette,
		Region: FullView,
	},
	"seahorse": {
		Strategy: DefaultStrategy, Width: 800, Height: 600, Budget: 400, Radius: DefaultRadius, Palette: DefaultPalette,
		Region: RegionConfig{RealMin: -0.8, RealMax: -0.7, ImagMin: 0.05, ImagMax: 0.15},
	},
	"elephant": {
		Strategy: DefaultStrategy, Width: 800, Height: 600, Budget: 400, Radius: DefaultRadius, Palette: DefaultPalette,
		Region: RegionConfig{RealMin: -1.85, RealMax: -1.75, ImagMin: -0.10, ImagMax: -0.02},
	},
	"spiral": {
		Strategy: DefaultStrategy, Width: 800, Height: 600, Budget: 1000, Radius: DefaultRadius, Palette: DefaultPalette,
		Region: RegionConfig{RealMin: -0.7435, RealMax: -0.7420, ImagMin: 0.1310, ImagMax: 0.1325},
	},
	"triple_spiral": {
		Strategy: DefaultStrategy, Width: 800, Height: 600, Budget: 800, Radius: DefaultRadius, Palette: DefaultPalette,
		Region: RegionConfig{RealMin: -0.7480, RealMax: -0.7450, ImagMin: 0.0950, ImagMax: 0.0980},
	},
	"dragon": {
		Strategy: DefaultStrategy, Width: 800, Height: 600, Budget: 800, Radius: DefaultRadius, Palette: DefaultPalette,
		Region: RegionConfig{RealMin: -0.7400, RealMax: -0.7350, ImagMin: 0.1800, ImagMax: 0.1850},
	},
	"minibrot": {
		Strategy: DefaultStrategy, Width: 800, Height: 600, Budget: 1500, Radius: DefaultRadius, Palette: DefaultPalette,
		Region: RegionConfig{RealMin: -1.7390, RealMax: -1.7375, ImagMin: -0.0235, ImagMax: -0.0220},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
