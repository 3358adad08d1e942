package missions

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadThresholdsMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thresholds.yaml")
	content := `
primary_resist_threshold: 0.55
regen_floors:
  4: 250
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	thresholds, err := LoadThresholds(path)
	if err != nil {
		t.Fatalf("LoadThresholds failed: %v", err)
	}

	if thresholds.PrimaryResistThreshold != 0.55 {
		t.Errorf("override not applied: %v", thresholds.PrimaryResistThreshold)
	}
	if thresholds.RegenFloor(4) != 250 {
		t.Errorf("regen floor 4 override not applied: %v", thresholds.RegenFloor(4))
	}
	// Untouched levels keep the defaults.
	if thresholds.RegenFloor(1) != 15 {
		t.Errorf("regen floor 1 should keep default, got %v", thresholds.RegenFloor(1))
	}
	if thresholds.BufferFloor(2) != 20000 {
		t.Errorf("buffer floor 2 should keep default, got %v", thresholds.BufferFloor(2))
	}
}

func TestFloorClampsAboveTable(t *testing.T) {
	thresholds := DefaultThresholds()

	if got := thresholds.RegenFloor(9); got != 300 {
		t.Errorf("intensity above table should clamp to highest floor, got %v", got)
	}
	if got := thresholds.BufferFloor(0); got != 0 {
		t.Errorf("intensity below table should fall through to 0, got %v", got)
	}
}
