package missions

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Thresholds holds the calibration constants for mission matching.
// The floors are deliberately conservative estimates keyed by intensity
// level, used because exact incoming-damage figures per activity are not
// reliably available. They are tunable data, not derived truth.
type Thresholds struct {
	// PrimaryResistThreshold is the resistance value at or above which a
	// damage type counts as one of the fit's primary resists.
	PrimaryResistThreshold float64 `yaml:"primary_resist_threshold"`

	// RegenFloors is the minimum sustained mitigation (EHP/s) an active
	// or passive tank needs per intensity level.
	RegenFloors map[int]float64 `yaml:"regen_floors"`

	// BufferFloors is the minimum raw EHP a buffer tank needs per
	// intensity level.
	BufferFloors map[int]float64 `yaml:"buffer_floors"`
}

// DefaultThresholds returns the shipped calibration table.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PrimaryResistThreshold: 0.60,
		RegenFloors: map[int]float64{
			1: 15,
			2: 50,
			3: 150,
			4: 300,
		},
		BufferFloors: map[int]float64{
			1: 8000,
			2: 20000,
			3: 45000,
			4: 80000,
		},
	}
}

// LoadThresholds reads a threshold override file. Missing levels fall back
// to the defaults so an override file can tune a single floor.
func LoadThresholds(path string) (Thresholds, error) {
	thresholds := DefaultThresholds()

	data, err := os.ReadFile(path)
	if err != nil {
		return thresholds, fmt.Errorf("failed to read thresholds file: %w", err)
	}

	var override Thresholds
	if err := yaml.Unmarshal(data, &override); err != nil {
		return thresholds, fmt.Errorf("failed to parse thresholds file: %w", err)
	}

	if override.PrimaryResistThreshold > 0 {
		thresholds.PrimaryResistThreshold = override.PrimaryResistThreshold
	}
	for level, floor := range override.RegenFloors {
		thresholds.RegenFloors[level] = floor
	}
	for level, floor := range override.BufferFloors {
		thresholds.BufferFloors[level] = floor
	}

	return thresholds, nil
}

// RegenFloor returns the regen floor for an intensity level. Levels above
// the table clamp to the highest defined floor.
func (t Thresholds) RegenFloor(intensity int) float64 {
	return floorFor(t.RegenFloors, intensity)
}

// BufferFloor returns the buffer floor for an intensity level.
func (t Thresholds) BufferFloor(intensity int) float64 {
	return floorFor(t.BufferFloors, intensity)
}

func floorFor(floors map[int]float64, intensity int) float64 {
	if floor, ok := floors[intensity]; ok {
		return floor
	}
	// Clamp to the highest defined level
	max := 0
	for level := range floors {
		if level > max {
			max = level
		}
	}
	if intensity > max {
		return floors[max]
	}
	return 0
}
