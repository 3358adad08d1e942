// Package domain contains the core types for fit selection.
// The domain layer is pure: no infrastructure dependencies, no I/O.
package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Tier is the progression tier of a fit. Tiers form a total order:
// base < common < budget advanced < optimal advanced. The numeric values
// define the default ranking order and must never be reordered.
type Tier int

const (
	TierBase Tier = iota
	TierCommon
	TierBudgetAdvanced
	TierOptimalAdvanced
)

// tierNames maps tiers to their document/string form.
var tierNames = map[Tier]string{
	TierBase:            "base",
	TierCommon:          "common",
	TierBudgetAdvanced:  "budget_advanced",
	TierOptimalAdvanced: "optimal_advanced",
}

// String returns the document form of the tier.
func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// ParseTier converts a document tier string into a Tier.
func ParseTier(s string) (Tier, error) {
	for tier, name := range tierNames {
		if name == s {
			return tier, nil
		}
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}

// AllTiers returns the tiers in ascending progression order.
func AllTiers() []Tier {
	return []Tier{TierBase, TierCommon, TierBudgetAdvanced, TierOptimalAdvanced}
}

// TankType classifies how a fit absorbs incoming damage.
// The set is closed: every fit is exactly one of the three.
type TankType string

const (
	TankActive  TankType = "active"  // relies on repair/boost modules
	TankBuffer  TankType = "buffer"  // relies on raw effective health
	TankPassive TankType = "passive" // relies on innate regeneration
)

// Valid reports whether the tank type is one of the known labels.
func (t TankType) Valid() bool {
	return t == TankActive || t == TankBuffer || t == TankPassive
}

// CloneStatus is a pilot-level capability restriction. Restricted clones
// cannot use advanced-tier equipment or hulls regardless of trained skills.
type CloneStatus string

const (
	CloneRestricted   CloneStatus = "restricted"
	CloneUnrestricted CloneStatus = "unrestricted"
)

// DamageType is one of the four damage types dealt and resisted in combat.
type DamageType string

const (
	DamageEM        DamageType = "em"
	DamageThermal   DamageType = "thermal"
	DamageKinetic   DamageType = "kinetic"
	DamageExplosive DamageType = "explosive"
)

// AllDamageTypes returns the four damage types in canonical order.
func AllDamageTypes() []DamageType {
	return []DamageType{DamageEM, DamageThermal, DamageKinetic, DamageExplosive}
}

// FitStats holds the combat statistics of a fit as computed by the stats
// engine. Stats are cached on the fit at catalog load time; the selection
// path reads them without recomputation.
type FitStats struct {
	// EHP is total effective health across shield, armor and hull.
	EHP float64 `json:"ehp"`

	// TankType is derived from the module loadout (see tank.Classify).
	TankType TankType `json:"tank_type"`

	// SustainedMitigation is the repair or regeneration rate in EHP/s.
	// Zero for buffer fits, which are evaluated on raw EHP instead.
	SustainedMitigation float64 `json:"sustained_mitigation"`

	// HasActiveRepair reports whether the fit carries an active repair or
	// boost module. Drives the active/passive/buffer classification.
	HasActiveRepair bool `json:"has_active_repair"`

	// RepairRate is the active repair/boost rate in EHP/s (0 if none).
	RepairRate float64 `json:"repair_rate"`

	// PassiveRegenRate is the innate regeneration rate in EHP/s.
	PassiveRegenRate float64 `json:"passive_regen_rate"`

	// DPS is total damage output per second.
	DPS float64 `json:"dps"`

	// DamageBreakdown splits DPS by damage type dealt.
	DamageBreakdown map[DamageType]float64 `json:"damage_breakdown"`

	// Resists maps damage type to resistance in [0, 1].
	Resists map[DamageType]float64 `json:"resists"`

	// CapStable reports whether the fit runs all modules indefinitely.
	CapStable bool `json:"cap_stable"`

	// EstimatedISK is the market valuation of the full fit.
	EstimatedISK decimal.Decimal `json:"estimated_isk"`

	// ValuatedAt is when EstimatedISK was computed. Staleness (24h by
	// convention) is a caller policy; the engine only exposes the timestamp.
	ValuatedAt time.Time `json:"valuated_at"`
}

// ValuationAge returns how old the ISK valuation is at the given instant.
func (s FitStats) ValuationAge(now time.Time) time.Duration {
	return now.Sub(s.ValuatedAt)
}

// PrimaryResists returns the damage types whose resistance meets or exceeds
// the threshold. These are the damage types the fit's tank is tuned for.
func (s FitStats) PrimaryResists(threshold float64) []DamageType {
	var primary []DamageType
	for _, dt := range AllDamageTypes() {
		if s.Resists[dt] >= threshold {
			primary = append(primary, dt)
		}
	}
	return primary
}

// Fit is a single candidate equipment configuration for a hull.
type Fit struct {
	// ID uniquely identifies the fit as hull/activity/tier.
	ID string `json:"id"`

	Hull     string `json:"hull"`
	Activity string `json:"activity"`
	Tier     Tier   `json:"tier"`

	// CloneRestrictedEligible reports whether a restricted clone can fly
	// this fit. Fits with advanced equipment are never restricted-eligible.
	CloneRestrictedEligible bool `json:"clone_restricted_eligible"`

	// Blueprint is the opaque equipment configuration text. It is owned
	// and interpreted only by the stats engine and skill resolver.
	Blueprint string `json:"equipment_blueprint"`

	// SkillRequirements is an advisory cache for inspection and debugging.
	// Eligibility checks re-derive requirements through the resolver and
	// must never trust this field.
	SkillRequirements map[string]int `json:"skill_requirements"`

	// Stats are the cached combat statistics, validated at load time.
	Stats FitStats `json:"stats"`
}

// FitID builds the canonical fit identifier.
func FitID(hull, activity string, tier Tier) string {
	return fmt.Sprintf("%s/%s/%s", hull, activity, tier)
}

// Archetype is the set of fits defined for one (hull, activity) pair,
// ordered by tier. Not every tier needs to exist. Immutable after load.
type Archetype struct {
	Hull     string `json:"hull"`
	Activity string `json:"activity"`
	Fits     []*Fit `json:"fits"`
}

// Key returns the lookup key for the archetype.
func (a *Archetype) Key() string {
	return ArchetypeKey(a.Hull, a.Activity)
}

// ArchetypeKey builds the lookup key for a (hull, activity) pair.
func ArchetypeKey(hull, activity string) string {
	return hull + "/" + activity
}

// PilotProfile carries a pilot's trained skills and clone status.
// Supplied per selection call; the engine never mutates or persists it.
type PilotProfile struct {
	Name        string         `json:"name,omitempty"`
	CloneStatus CloneStatus    `json:"clone_status"`
	Skills      map[string]int `json:"skills"`
}

// TrainedLevel returns the trained level for a skill (0 if untrained).
func (p *PilotProfile) TrainedLevel(skill string) int {
	return p.Skills[skill]
}

// MissionProfile describes an activity's combat context: how hard it hits
// and with what. Read-only lookup value, never mutated by the engine.
type MissionProfile struct {
	Activity string `json:"activity"`

	// Intensity is an ordinal proxy (1-4) for incoming damage severity,
	// used because exact incoming DPS figures are not reliably available.
	Intensity int `json:"intensity"`

	// DamageToResist is the set of damage types the activity deals to the
	// pilot. The fit's primary resists must cover at least one of them.
	DamageToResist []DamageType `json:"damage_to_resist"`

	// DamageToDeal is the set of damage types the activity is weak to.
	DamageToDeal []DamageType `json:"damage_to_deal"`
}

// Component is one priced line item of a fit (hull or module).
type Component struct {
	TypeName string `json:"type_name"`
	Quantity int    `json:"quantity"`
}

// Valuation is the result of appraising a component list.
type Valuation struct {
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`

	// OldestAt is the oldest underlying price timestamp, exposed so
	// callers can apply their own staleness policy.
	OldestAt time.Time `json:"oldest_at"`
}

// SkillGap is one unmet skill requirement.
type SkillGap struct {
	Skill    string `json:"skill"`
	Required int    `json:"required"`
	Trained  int    `json:"trained"`
}

// IneligibilityReason says which gate rejected a fit.
type IneligibilityReason string

const (
	ReasonCloneGate     IneligibilityReason = "clone_gate"
	ReasonMissingSkills IneligibilityReason = "missing_skills"
	ReasonNoMissionFit  IneligibilityReason = "no_mission_match"
)

// EligibilityResult is the structured outcome of an eligibility check.
// Ineligibility is expected and frequent: it is a result, not an error.
type EligibilityResult struct {
	FitID         string              `json:"fit_id"`
	Eligible      bool                `json:"eligible"`
	Reason        IneligibilityReason `json:"reason,omitempty"`
	MissingSkills []SkillGap          `json:"missing_skills,omitempty"`
}

// SelectionResult is the output contract of the ranker. Exactly one shape
// is valid: a single Recommended fit, or an Efficient/Premium pair.
type SelectionResult struct {
	Recommended *Fit `json:"recommended,omitempty"`
	Efficient   *Fit `json:"efficient,omitempty"`
	Premium     *Fit `json:"premium,omitempty"`
}

// IsPair reports whether the result is an Efficient/Premium pair.
func (r SelectionResult) IsPair() bool {
	return r.Efficient != nil && r.Premium != nil
}

// Valid reports whether the result holds exactly one of the two shapes.
func (r SelectionResult) Valid() bool {
	single := r.Recommended != nil && r.Efficient == nil && r.Premium == nil
	pair := r.Recommended == nil && r.Efficient != nil && r.Premium != nil
	return single || pair
}
