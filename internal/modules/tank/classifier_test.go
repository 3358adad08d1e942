package tank

import (
	"testing"

	"github.com/aristath/quartermaster/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		stats          domain.FitStats
		wantType       domain.TankType
		wantMitigation float64
	}{
		{
			name: "active repairer",
			stats: domain.FitStats{
				HasActiveRepair:  true,
				RepairRate:       120,
				PassiveRegenRate: 40, // ignored: active module dominates
			},
			wantType:       domain.TankActive,
			wantMitigation: 120,
		},
		{
			name: "passive regen above baseline",
			stats: domain.FitStats{
				PassiveRegenRate: 85,
			},
			wantType:       domain.TankPassive,
			wantMitigation: 85,
		},
		{
			name: "incidental regen below baseline is buffer",
			stats: domain.FitStats{
				EHP:              42000,
				PassiveRegenRate: 4,
			},
			wantType:       domain.TankBuffer,
			wantMitigation: 0,
		},
		{
			name: "regen exactly at baseline is buffer",
			stats: domain.FitStats{
				PassiveRegenRate: PassiveRegenBaseline,
			},
			wantType:       domain.TankBuffer,
			wantMitigation: 0,
		},
		{
			name:           "no tank modules at all",
			stats:          domain.FitStats{EHP: 9000},
			wantType:       domain.TankBuffer,
			wantMitigation: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tankType, mitigation := Classify(tt.stats)
			if tankType != tt.wantType {
				t.Errorf("Classify() type = %v, want %v", tankType, tt.wantType)
			}
			if mitigation != tt.wantMitigation {
				t.Errorf("Classify() mitigation = %v, want %v", mitigation, tt.wantMitigation)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	stats := domain.FitStats{
		HasActiveRepair:  true,
		RepairRate:       210,
		PassiveRegenRate: 15,
		EHP:              33000,
	}

	firstType, firstMitigation := Classify(stats)
	for i := 0; i < 100; i++ {
		tankType, mitigation := Classify(stats)
		if tankType != firstType || mitigation != firstMitigation {
			t.Fatalf("classification not deterministic on iteration %d: %v/%v vs %v/%v",
				i, tankType, mitigation, firstType, firstMitigation)
		}
	}
}
