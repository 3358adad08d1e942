package domain

// StatsEngine validates an equipment blueprint and returns its combat
// statistics. A ValidationError means the configuration is malformed
// (exceeds resource limits, illegal placement) and the fit must be
// excluded from the catalog at load time, never surfaced per selection.
type StatsEngine interface {
	ComputeStats(blueprint string) (FitStats, error)
}

// RequirementResolver derives the authoritative minimum skill levels an
// equipment blueprint demands. The eligibility checker always goes through
// this interface; the advisory cache on the fit is never consulted.
type RequirementResolver interface {
	DeriveRequirements(blueprint string) (map[string]int, error)
}

// Appraiser returns a monetary valuation for a list of components.
// Staleness of the underlying prices is exposed via Valuation.OldestAt
// and enforced (or not) by the caller, never by the selection engine.
type Appraiser interface {
	Valuate(components []Component) (Valuation, error)
}

// MissionSource is a read-only lookup of activity combat metadata.
// Returns ErrMissionNotFound for unknown activities.
type MissionSource interface {
	Lookup(activity string) (*MissionProfile, error)
}
