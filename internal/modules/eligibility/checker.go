// Package eligibility applies the hard gates (clone status, trained
// skills) that decide whether a pilot can fly a fit at all.
package eligibility

import (
	"fmt"
	"sort"

	"github.com/aristath/quartermaster/internal/domain"
	"github.com/rs/zerolog"
)

// Checker runs the eligibility gates for (fit, pilot) pairs.
// It holds no mutable state and is safe for concurrent use.
type Checker struct {
	resolver domain.RequirementResolver
	log      zerolog.Logger
}

// NewChecker creates a new eligibility checker.
func NewChecker(resolver domain.RequirementResolver, log zerolog.Logger) *Checker {
	return &Checker{
		resolver: resolver,
		log:      log.With().Str("module", "eligibility").Logger(),
	}
}

// Check applies the gates in order, short-circuiting on the first failure:
//
//  1. Clone gate: a restricted clone can never fly a fit that is not
//     restricted-eligible, regardless of trained skills. The gate is
//     absolute and cheaper than skill resolution, so no skill work is
//     done when it fails.
//  2. Skill gate: requirements are re-derived through the resolver. The
//     advisory cache on the fit is never consulted here; it exists for
//     inspection only.
//
// Ineligibility is a structured result, not an error. An error return
// means the resolver itself failed (unknown blueprint), which is a
// catalog defect rather than a pilot outcome.
func (c *Checker) Check(fit *domain.Fit, pilot *domain.PilotProfile) (domain.EligibilityResult, error) {
	result := domain.EligibilityResult{FitID: fit.ID}

	if pilot.CloneStatus == domain.CloneRestricted && !fit.CloneRestrictedEligible {
		result.Reason = domain.ReasonCloneGate
		c.log.Debug().
			Str("fit", fit.ID).
			Msg("Fit rejected by clone gate")
		return result, nil
	}

	required, err := c.resolver.DeriveRequirements(fit.Blueprint)
	if err != nil {
		return result, fmt.Errorf("failed to derive requirements for %s: %w", fit.ID, err)
	}

	var missing []domain.SkillGap
	for skill, level := range required {
		trained := pilot.TrainedLevel(skill)
		if trained < level {
			missing = append(missing, domain.SkillGap{
				Skill:    skill,
				Required: level,
				Trained:  trained,
			})
		}
	}

	// Map iteration order is random; sort for stable output.
	sort.Slice(missing, func(i, j int) bool {
		return missing[i].Skill < missing[j].Skill
	})

	if len(missing) > 0 {
		result.Reason = domain.ReasonMissingSkills
		result.MissingSkills = missing
		return result, nil
	}

	result.Eligible = true
	return result, nil
}
