package skills

import (
	"fmt"

	"github.com/aristath/quartermaster/internal/modules/stats"
	"github.com/rs/zerolog"
)

// Resolver derives authoritative skill requirements for a blueprint from
// the reference database. It implements domain.RequirementResolver.
type Resolver struct {
	repo *Repository
	log  zerolog.Logger
}

// NewResolver creates a new requirement resolver
func NewResolver(repo *Repository, log zerolog.Logger) *Resolver {
	return &Resolver{
		repo: repo,
		log:  log.With().Str("module", "skills").Logger(),
	}
}

// DeriveRequirements returns the minimum skill levels the blueprint
// demands. A blueprint with no reference rows is an error: every curated
// fit must have its requirements written by the curation step, so a miss
// means the catalog and reference data are out of sync.
func (r *Resolver) DeriveRequirements(blueprint string) (map[string]int, error) {
	key := stats.BlueprintKey(blueprint)

	requirements, found, err := r.repo.RequirementsFor(key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("no skill requirements recorded for blueprint key %s", key[:12])
	}
	return requirements, nil
}
