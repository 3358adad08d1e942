// Package tank derives a tank-type label and sustained-mitigation value
// from a fit's computed statistics.
package tank

import (
	"github.com/aristath/quartermaster/internal/domain"
)

// PassiveRegenBaseline is the regeneration rate (EHP/s) above which a fit
// without active modules counts as passively tanked rather than buffer.
// Below this the regen is incidental and the fit lives on raw EHP.
const PassiveRegenBaseline = 10.0

// Classify returns the tank type and sustained mitigation rate for the
// given stats. It is a pure function: identical input always yields the
// identical label and value, and there is no failure mode.
//
// Active repair modules dominate the classification: a fit with an active
// repairer is "active" even if it also regenerates passively. Buffer fits
// report zero mitigation and are evaluated on raw EHP instead.
func Classify(stats domain.FitStats) (domain.TankType, float64) {
	if stats.HasActiveRepair {
		return domain.TankActive, stats.RepairRate
	}
	if stats.PassiveRegenRate > PassiveRegenBaseline {
		return domain.TankPassive, stats.PassiveRegenRate
	}
	return domain.TankBuffer, 0
}
