package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Strategy != DefaultStrategy {
		t.Errorf("expected strategy %s, got %s", DefaultStrategy, cfg.Strategy)
	}
	if cfg.Budget <= 0 {
		t.Error("budget should be positive")
	}
	if cfg.Radius <= 0 {
		t.Error("radius should be positive")
	}
	if cfg.Region.RealMin >= cfg.Region.RealMax {
		t.Error("default real range should be ordered")
	}
	if cfg.Region.ImagMin >= cfg.Region.ImagMax {
		t.Error("default imag range should be ordered")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("seahorse")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Region.RealMin != -0.8 {
		t.Errorf("expected real min -0.8, got %g", cfg.Region.RealMin)
	}
	if cfg.Budget <= 100 {
		t.Error("zoomed presets should carry a larger budget")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("expected sorted names, got %v", names)
		}
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Strategy = "batched"
	cfg.Budget = 777
	cfg.Region = RegionConfig{RealMin: -0.75, RealMax: -0.70, ImagMin: 0.1, ImagMax: 0.15}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Strategy != "batched" {
		t.Errorf("expected strategy batched, got %s", loaded.Strategy)
	}
	if loaded.Budget != 777 {
		t.Errorf("expected budget 777, got %d", loaded.Budget)
	}
	if loaded.Region != cfg.Region {
		t.Errorf("expected region %+v, got %+v", cfg.Region, loaded.Region)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := writeFile(path, "budget: 50\n"); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Budget != 50 {
		t.Errorf("expected budget 50, got %d", cfg.Budget)
	}
	if cfg.Strategy != DefaultStrategy {
		t.Errorf("unset fields should keep defaults, got strategy %s", cfg.Strategy)
	}
}
