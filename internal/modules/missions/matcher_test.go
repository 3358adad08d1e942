package missions

import (
	"testing"

	"github.com/aristath/quartermaster/internal/domain"
	"github.com/rs/zerolog"
)

func bufferFit(ehp float64, resists map[domain.DamageType]float64) *domain.Fit {
	return &domain.Fit{
		ID: "test/buffer",
		Stats: domain.FitStats{
			EHP:     ehp,
			Resists: resists,
		},
	}
}

func activeFit(repairRate float64, resists map[domain.DamageType]float64) *domain.Fit {
	return &domain.Fit{
		ID: "test/active",
		Stats: domain.FitStats{
			HasActiveRepair: true,
			RepairRate:      repairRate,
			Resists:         resists,
		},
	}
}

func kineticMission(intensity int) *domain.MissionProfile {
	return &domain.MissionProfile{
		Activity:       "guristas_l" + string(rune('0'+intensity)),
		Intensity:      intensity,
		DamageToResist: []domain.DamageType{domain.DamageKinetic, domain.DamageThermal},
	}
}

func TestDamageTypeGate(t *testing.T) {
	matcher := NewMatcher(DefaultThresholds(), zerolog.Nop())

	// EM/explosive tank against a kinetic/thermal mission: wrong tank.
	fit := activeFit(500, map[domain.DamageType]float64{
		domain.DamageEM:        0.85,
		domain.DamageExplosive: 0.70,
		domain.DamageKinetic:   0.30,
	})

	result := matcher.Match(fit, kineticMission(1))
	if result.Matches {
		t.Fatal("expected damage-type gate to reject mismatched resists")
	}
	if result.FailedGate != "damage_type" {
		t.Errorf("expected damage_type gate failure, got %q", result.FailedGate)
	}

	// Retuned to kinetic, same mission passes.
	fit = activeFit(500, map[domain.DamageType]float64{domain.DamageKinetic: 0.75})
	result = matcher.Match(fit, kineticMission(1))
	if !result.Matches {
		t.Errorf("expected kinetic tank to match kinetic mission, failed gate %q", result.FailedGate)
	}
}

func TestResistThresholdIsInclusive(t *testing.T) {
	matcher := NewMatcher(DefaultThresholds(), zerolog.Nop())

	// Exactly 60% counts as a primary resist.
	fit := activeFit(500, map[domain.DamageType]float64{domain.DamageKinetic: 0.60})
	if result := matcher.Match(fit, kineticMission(1)); !result.Matches {
		t.Errorf("resist exactly at threshold should count, failed gate %q", result.FailedGate)
	}

	fit = activeFit(500, map[domain.DamageType]float64{domain.DamageKinetic: 0.59})
	if result := matcher.Match(fit, kineticMission(1)); result.Matches {
		t.Error("resist below threshold should not count")
	}
}

func TestIntensityGateForRegenTanks(t *testing.T) {
	matcher := NewMatcher(DefaultThresholds(), zerolog.Nop())
	resists := map[domain.DamageType]float64{domain.DamageKinetic: 0.80}

	tests := []struct {
		name       string
		repairRate float64
		intensity  int
		want       bool
	}{
		{"meets level 1 floor", 15, 1, true},
		{"below level 1 floor", 14, 1, false},
		{"meets level 3 floor", 150, 3, true},
		{"level 2 rate against level 4 mission", 50, 4, false},
		{"exceeds level 4 floor", 400, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matcher.Match(activeFit(tt.repairRate, resists), kineticMission(tt.intensity))
			if result.Matches != tt.want {
				t.Errorf("Match() = %v, want %v (failed gate %q)", result.Matches, tt.want, result.FailedGate)
			}
		})
	}
}

func TestIntensityGateForBufferTanks(t *testing.T) {
	matcher := NewMatcher(DefaultThresholds(), zerolog.Nop())
	resists := map[domain.DamageType]float64{domain.DamageKinetic: 0.80}

	// 25k EHP buffer against a level-2 mission (floor 20k) passes.
	result := matcher.Match(bufferFit(25000, resists), kineticMission(2))
	if !result.Matches {
		t.Errorf("25k buffer should pass level-2 floor, failed gate %q", result.FailedGate)
	}
	if result.TankType != domain.TankBuffer {
		t.Errorf("expected buffer classification, got %v", result.TankType)
	}

	// Same fit against level 3 (floor 45k) fails on intensity.
	result = matcher.Match(bufferFit(25000, resists), kineticMission(3))
	if result.Matches {
		t.Error("25k buffer should fail level-3 floor")
	}
	if result.FailedGate != "intensity" {
		t.Errorf("expected intensity gate failure, got %q", result.FailedGate)
	}
}

// TestDefaultFloorTable pins the shipped calibration constants. These are
// tuning data, not correctness: if the table is recalibrated, update this
// test alongside it.
func TestDefaultFloorTable(t *testing.T) {
	thresholds := DefaultThresholds()

	regenWant := map[int]float64{1: 15, 2: 50, 3: 150, 4: 300}
	bufferWant := map[int]float64{1: 8000, 2: 20000, 3: 45000, 4: 80000}

	for level, want := range regenWant {
		if got := thresholds.RegenFloor(level); got != want {
			t.Errorf("regen floor level %d = %v, want %v", level, got, want)
		}
	}
	for level, want := range bufferWant {
		if got := thresholds.BufferFloor(level); got != want {
			t.Errorf("buffer floor level %d = %v, want %v", level, got, want)
		}
	}
}

func TestFloorsAreInjectable(t *testing.T) {
	// The matcher takes the table as data: the algorithm shape does not
	// change when the floors are tuned.
	custom := Thresholds{
		PrimaryResistThreshold: 0.50,
		RegenFloors:            map[int]float64{1: 1000},
		BufferFloors:           map[int]float64{1: 1},
	}
	matcher := NewMatcher(custom, zerolog.Nop())

	fit := activeFit(500, map[domain.DamageType]float64{domain.DamageKinetic: 0.55})
	result := matcher.Match(fit, kineticMission(1))
	if result.Matches {
		t.Error("custom regen floor of 1000 should reject a 500 EHP/s tank")
	}
	if result.FailedGate != "intensity" {
		t.Errorf("0.55 resist should pass a 0.50 threshold; failed gate %q", result.FailedGate)
	}
}
