package catalog

import (
	"sort"
	"time"

	"github.com/aristath/quartermaster/internal/domain"
)

// Snapshot is one immutable, fully validated catalog version. All maps
// are built once at load time and never written afterwards, so the read
// path needs no locking.
type Snapshot struct {
	version    string
	loadedAt   time.Time
	archetypes map[string]*domain.Archetype
	fitsByID   map[string]*domain.Fit
}

// newSnapshot indexes the archetypes and sorts each fit list by tier so
// ordering is deterministic regardless of document order.
func newSnapshot(version string, loadedAt time.Time, archetypes []*domain.Archetype) *Snapshot {
	byKey := make(map[string]*domain.Archetype, len(archetypes))
	byFit := make(map[string]*domain.Fit)

	for _, archetype := range archetypes {
		sort.Slice(archetype.Fits, func(i, j int) bool {
			return archetype.Fits[i].Tier < archetype.Fits[j].Tier
		})
		byKey[archetype.Key()] = archetype
		for _, fit := range archetype.Fits {
			byFit[fit.ID] = fit
		}
	}

	return &Snapshot{
		version:    version,
		loadedAt:   loadedAt,
		archetypes: byKey,
		fitsByID:   byFit,
	}
}

// Version returns the snapshot's version identifier.
func (s *Snapshot) Version() string {
	return s.version
}

// LoadedAt returns when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}

// FitsFor returns the fits for a (hull, activity) pair in tier order.
// Returns domain.ErrArchetypeNotFound when the pair has no catalog entry.
func (s *Snapshot) FitsFor(hull, activity string) ([]*domain.Fit, error) {
	archetype, ok := s.archetypes[domain.ArchetypeKey(hull, activity)]
	if !ok {
		return nil, domain.ErrArchetypeNotFound
	}
	// Return a copied slice so callers cannot reorder the snapshot's view.
	fits := make([]*domain.Fit, len(archetype.Fits))
	copy(fits, archetype.Fits)
	return fits, nil
}

// FitByID returns a fit by its hull/activity/tier identifier.
func (s *Snapshot) FitByID(id string) (*domain.Fit, bool) {
	fit, ok := s.fitsByID[id]
	return fit, ok
}

// Archetypes returns all archetypes sorted by key, for the API.
func (s *Snapshot) Archetypes() []*domain.Archetype {
	keys := make([]string, 0, len(s.archetypes))
	for key := range s.archetypes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := make([]*domain.Archetype, 0, len(keys))
	for _, key := range keys {
		result = append(result, s.archetypes[key])
	}
	return result
}

// FitCount returns the total number of fits in the snapshot.
func (s *Snapshot) FitCount() int {
	return len(s.fitsByID)
}
