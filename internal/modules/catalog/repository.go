package catalog

import (
	"errors"
	"sync/atomic"

	"github.com/aristath/quartermaster/internal/domain"
	"github.com/rs/zerolog"
)

// ErrNotLoaded means no snapshot has been loaded yet.
var ErrNotLoaded = errors.New("catalog not loaded")

// Repository holds the current catalog snapshot behind an atomic pointer.
// Reads are lock-free; a reload builds a complete new snapshot elsewhere
// and swaps it in with a single store, so in-flight selection calls
// always observe one consistent catalog version.
type Repository struct {
	current atomic.Pointer[Snapshot]
	log     zerolog.Logger
}

// NewRepository creates an empty catalog repository.
func NewRepository(log zerolog.Logger) *Repository {
	return &Repository{
		log: log.With().Str("repo", "catalog").Logger(),
	}
}

// Swap installs a new snapshot and returns the previous one (nil on the
// first load).
func (r *Repository) Swap(snapshot *Snapshot) *Snapshot {
	previous := r.current.Swap(snapshot)
	r.log.Info().
		Str("version", snapshot.Version()).
		Int("fits", snapshot.FitCount()).
		Msg("Catalog snapshot swapped in")
	return previous
}

// Current returns the live snapshot.
func (r *Repository) Current() (*Snapshot, error) {
	snapshot := r.current.Load()
	if snapshot == nil {
		return nil, ErrNotLoaded
	}
	return snapshot, nil
}

// FitsFor returns the tier-ordered fits for a (hull, activity) pair from
// the current snapshot.
func (r *Repository) FitsFor(hull, activity string) ([]*domain.Fit, error) {
	snapshot, err := r.Current()
	if err != nil {
		return nil, err
	}
	return snapshot.FitsFor(hull, activity)
}

// FitByID returns a fit by identifier from the current snapshot.
func (r *Repository) FitByID(id string) (*domain.Fit, error) {
	snapshot, err := r.Current()
	if err != nil {
		return nil, err
	}
	fit, ok := snapshot.FitByID(id)
	if !ok {
		return nil, domain.ErrArchetypeNotFound
	}
	return fit, nil
}
