// Package selection ranks filtered fit candidates and drives the
// selection pipeline: catalog lookup, eligibility, mission matching,
// then ranking into the final result shape.
package selection

import (
	"github.com/rs/zerolog"

	"github.com/aristath/quartermaster/internal/domain"
)

// Ranker orders surviving candidates and decides the output shape.
// The tie-break policy lives here and nowhere else, so a policy change
// is a one-file edit.
type Ranker struct {
	log zerolog.Logger
}

// NewRanker creates a selection ranker.
func NewRanker(log zerolog.Logger) *Ranker {
	return &Ranker{log: log.With().Str("component", "ranker").Logger()}
}

// Select ranks the candidates that survived filtering.
//
// One candidate yields a single Recommended fit. With more, the result
// is a pair: Efficient is the cheapest (ties to the lower tier, the
// simpler configuration wins), Premium is the highest tier (ties to the
// cheaper of equally advanced options). When both roles resolve to the
// same fit the pair collapses back to Recommended.
func (r *Ranker) Select(candidates []*domain.Fit) (*domain.SelectionResult, error) {
	if len(candidates) == 0 {
		return nil, domain.ErrNoEligibleFits
	}
	if len(candidates) == 1 {
		return &domain.SelectionResult{Recommended: candidates[0]}, nil
	}

	efficient := candidates[0]
	premium := candidates[0]
	for _, fit := range candidates[1:] {
		if cheaperThan(fit, efficient) {
			efficient = fit
		}
		if moreAdvancedThan(fit, premium) {
			premium = fit
		}
	}

	if efficient.ID == premium.ID {
		return &domain.SelectionResult{Recommended: efficient}, nil
	}
	return &domain.SelectionResult{Efficient: efficient, Premium: premium}, nil
}

// cheaperThan reports whether a should take the Efficient role over b:
// lower cost wins, equal cost goes to the lower tier.
func cheaperThan(a, b *domain.Fit) bool {
	switch a.Stats.EstimatedISK.Cmp(b.Stats.EstimatedISK) {
	case -1:
		return true
	case 1:
		return false
	default:
		return a.Tier < b.Tier
	}
}

// moreAdvancedThan reports whether a should take the Premium role over b:
// higher tier wins, equal tier goes to the lower cost.
func moreAdvancedThan(a, b *domain.Fit) bool {
	if a.Tier != b.Tier {
		return a.Tier > b.Tier
	}
	return a.Stats.EstimatedISK.Cmp(b.Stats.EstimatedISK) < 0
}
