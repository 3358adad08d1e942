// Package missions provides the mission knowledge base and the contextual
// matcher that decides whether a fit's tank suits an activity.
package missions

import (
	"github.com/aristath/quartermaster/internal/domain"
	"github.com/aristath/quartermaster/internal/modules/tank"
	"github.com/rs/zerolog"
)

// Matcher applies the soft gates against a mission context: damage-type
// alignment and intensity-threshold adequacy. With no mission context the
// caller skips the matcher entirely, so every eligible fit passes.
type Matcher struct {
	thresholds Thresholds
	log        zerolog.Logger
}

// NewMatcher creates a mission matcher with the given calibration table.
func NewMatcher(thresholds Thresholds, log zerolog.Logger) *Matcher {
	return &Matcher{
		thresholds: thresholds,
		log:        log.With().Str("module", "missions").Logger(),
	}
}

// MatchResult explains a match decision for a single fit.
type MatchResult struct {
	Matches        bool                `json:"matches"`
	TankType       domain.TankType     `json:"tank_type"`
	PrimaryResists []domain.DamageType `json:"primary_resists"`

	// FailedGate is "damage_type" or "intensity" when Matches is false.
	FailedGate string `json:"failed_gate,omitempty"`
}

// Match decides whether the fit's tank suits the mission. Both gates must
// pass:
//
//	damage gate:    the fit's primary resists intersect the damage types
//	                the mission deals; a tank tuned to the wrong damage
//	                type fails here.
//	intensity gate: active/passive tanks need sustained mitigation at or
//	                above the regen floor for the mission's intensity;
//	                buffer tanks need raw EHP at or above the buffer floor.
//
// The floors favor false negatives over false positives: rejecting a fit
// that would have survived is cheaper than recommending one that dies.
func (m *Matcher) Match(fit *domain.Fit, mission *domain.MissionProfile) MatchResult {
	tankType, mitigation := tank.Classify(fit.Stats)
	result := MatchResult{
		TankType:       tankType,
		PrimaryResists: fit.Stats.PrimaryResists(m.thresholds.PrimaryResistThreshold),
	}

	if !m.damageGate(result.PrimaryResists, mission.DamageToResist) {
		result.FailedGate = "damage_type"
		m.log.Debug().
			Str("fit", fit.ID).
			Str("activity", mission.Activity).
			Msg("Fit failed damage-type gate")
		return result
	}

	if !m.intensityGate(tankType, mitigation, fit.Stats.EHP, mission.Intensity) {
		result.FailedGate = "intensity"
		m.log.Debug().
			Str("fit", fit.ID).
			Str("activity", mission.Activity).
			Int("intensity", mission.Intensity).
			Msg("Fit failed intensity gate")
		return result
	}

	result.Matches = true
	return result
}

// damageGate checks that at least one primary resist covers a damage type
// the mission deals.
func (m *Matcher) damageGate(primary []domain.DamageType, dealt []domain.DamageType) bool {
	for _, p := range primary {
		for _, d := range dealt {
			if p == d {
				return true
			}
		}
	}
	return false
}

// intensityGate compares the fit's staying power against the floor for
// the mission's intensity level, keyed by tank type.
func (m *Matcher) intensityGate(tankType domain.TankType, mitigation, ehp float64, intensity int) bool {
	switch tankType {
	case domain.TankActive, domain.TankPassive:
		return mitigation >= m.thresholds.RegenFloor(intensity)
	default:
		return ehp >= m.thresholds.BufferFloor(intensity)
	}
}
