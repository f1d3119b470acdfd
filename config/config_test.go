package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Field.Width != 105 {
		t.Errorf("Field.Width = %f, want 105", cfg.Field.Width)
	}
	if cfg.Derived.DT32 != float32(cfg.Physics.DT) {
		t.Error("Derived.DT32 not computed")
	}
	if cfg.Derived.FieldW32 != 105 {
		t.Errorf("Derived.FieldW32 = %f, want 105", cfg.Derived.FieldW32)
	}
}

func TestLoadOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	override := "decision:\n  pressure_distance: 3.5\n"
	if err := os.WriteFile(path, []byte(override), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Decision.PressureDistance != 3.5 {
		t.Errorf("PressureDistance = %f, want 3.5", cfg.Decision.PressureDistance)
	}
	// Fields absent from the override keep their defaults.
	if cfg.Decision.SupportDistance != 10 {
		t.Errorf("SupportDistance = %f, want default 10", cfg.Decision.SupportDistance)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/no/such/config.yaml"); err == nil {
		t.Error("Load accepted missing file")
	}
}
