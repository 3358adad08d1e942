package domain

import (
	"errors"
	"fmt"
)

// ErrArchetypeNotFound means no fits exist for the requested
// (hull, activity) pair. Surfaced directly to the caller, not retried.
var ErrArchetypeNotFound = errors.New("archetype not found")

// ErrMissionNotFound means the mission knowledge base has no entry for
// the requested activity.
var ErrMissionNotFound = errors.New("mission not found")

// ErrNoEligibleFits means catalog entries exist for the archetype but none
// survived eligibility and mission filtering. Callers should prefer the
// richer NoEligibleFitsError to explain the gap to the end user.
var ErrNoEligibleFits = errors.New("no eligible fits")

// RejectedFit records why one candidate was filtered out.
type RejectedFit struct {
	FitID         string              `json:"fit_id"`
	Reason        IneligibilityReason `json:"reason"`
	MissingSkills []SkillGap          `json:"missing_skills,omitempty"`
}

// NoEligibleFitsError carries the per-fit filtering reasons so the caller
// can explain exactly why nothing was flyable or appropriate.
type NoEligibleFitsError struct {
	Hull     string
	Activity string
	Rejected []RejectedFit
}

// Error implements the error interface.
func (e *NoEligibleFitsError) Error() string {
	return fmt.Sprintf("no eligible fits for %s/%s (%d rejected)", e.Hull, e.Activity, len(e.Rejected))
}

// Unwrap lets errors.Is match against ErrNoEligibleFits.
func (e *NoEligibleFitsError) Unwrap() error {
	return ErrNoEligibleFits
}

// ValidationError means a fit configuration is malformed: it exceeds
// resource limits or carries illegal values. Raised by the stats engine
// and handled at catalog load time by excluding the fit.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid fit configuration: %s: %s", e.Field, e.Reason)
}

// CatalogLoadError means the catalog documents could not be loaded as a
// whole (missing required fields, unknown skills). A reload that fails
// with this error leaves the previous snapshot in place.
type CatalogLoadError struct {
	Source string // file or bucket key that failed
	Err    error
}

// Error implements the error interface.
func (e *CatalogLoadError) Error() string {
	return fmt.Sprintf("catalog load failed (%s): %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *CatalogLoadError) Unwrap() error {
	return e.Err
}
