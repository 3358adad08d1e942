// Package catalog loads, indexes and serves the curated fit catalog,
// grouped by hull and activity. The catalog is an immutable snapshot:
// reloads build a complete new snapshot and swap it in atomically.
package catalog

import (
	"fmt"
	"time"

	"github.com/aristath/quartermaster/internal/domain"
	"github.com/shopspring/decimal"
)

// CatalogDocument is the on-disk form of one curated YAML file.
// A file may define several archetypes.
type CatalogDocument struct {
	Archetypes []ArchetypeDocument `yaml:"archetypes" msgpack:"archetypes"`
}

// ArchetypeDocument defines the fits for one (hull, activity) pair.
type ArchetypeDocument struct {
	Hull     string        `yaml:"hull" msgpack:"hull"`
	Activity string        `yaml:"activity" msgpack:"activity"`
	Fits     []FitDocument `yaml:"fits" msgpack:"fits"`
}

// FitDocument is one curated fit. The stats and skill_requirements blocks
// are produced by the offline curation step, which runs the collaborators
// and writes their results back for inspection. The engine only reads.
type FitDocument struct {
	Tier                    string          `yaml:"tier" msgpack:"tier"`
	CloneRestrictedEligible bool            `yaml:"clone_restricted_eligible" msgpack:"clone_restricted_eligible"`
	Blueprint               string          `yaml:"equipment_blueprint" msgpack:"equipment_blueprint"`
	SkillRequirements       map[string]int  `yaml:"skill_requirements" msgpack:"skill_requirements"`
	Stats                   StatsDocument   `yaml:"stats" msgpack:"stats"`
	Components              []ComponentLine `yaml:"components" msgpack:"components"`
}

// ComponentLine is one priced line item of the fit.
type ComponentLine struct {
	TypeName string `yaml:"type_name" msgpack:"type_name"`
	Quantity int    `yaml:"quantity" msgpack:"quantity"`
}

// StatsDocument is the cached combat statistics block of a fit document.
// Monetary values are strings to keep decimal exactness through YAML.
type StatsDocument struct {
	EHP                 float64            `yaml:"ehp" msgpack:"ehp"`
	TankType            string             `yaml:"tank_type" msgpack:"tank_type"`
	SustainedMitigation float64            `yaml:"sustained_mitigation" msgpack:"sustained_mitigation"`
	HasActiveRepair     bool               `yaml:"has_active_repair" msgpack:"has_active_repair"`
	RepairRate          float64            `yaml:"repair_rate" msgpack:"repair_rate"`
	PassiveRegenRate    float64            `yaml:"passive_regen_rate" msgpack:"passive_regen_rate"`
	DPS                 float64            `yaml:"dps" msgpack:"dps"`
	DamageBreakdown     map[string]float64 `yaml:"damage_breakdown" msgpack:"damage_breakdown"`
	Resists             map[string]float64 `yaml:"resists" msgpack:"resists"`
	CapStable           bool               `yaml:"cap_stable" msgpack:"cap_stable"`
	EstimatedISK        string             `yaml:"estimated_isk" msgpack:"estimated_isk"`
	ValuatedAt          time.Time          `yaml:"valuated_at" msgpack:"valuated_at"`
}

// ToFitStats converts the document stats block into domain statistics.
func (s StatsDocument) ToFitStats() (domain.FitStats, error) {
	isk := decimal.Zero
	if s.EstimatedISK != "" {
		var err error
		isk, err = decimal.NewFromString(s.EstimatedISK)
		if err != nil {
			return domain.FitStats{}, fmt.Errorf("invalid estimated_isk %q: %w", s.EstimatedISK, err)
		}
	}

	breakdown := make(map[domain.DamageType]float64, len(s.DamageBreakdown))
	for name, value := range s.DamageBreakdown {
		breakdown[domain.DamageType(name)] = value
	}
	resists := make(map[domain.DamageType]float64, len(s.Resists))
	for name, value := range s.Resists {
		resists[domain.DamageType(name)] = value
	}

	return domain.FitStats{
		EHP:                 s.EHP,
		TankType:            domain.TankType(s.TankType),
		SustainedMitigation: s.SustainedMitigation,
		HasActiveRepair:     s.HasActiveRepair,
		RepairRate:          s.RepairRate,
		PassiveRegenRate:    s.PassiveRegenRate,
		DPS:                 s.DPS,
		DamageBreakdown:     breakdown,
		Resists:             resists,
		CapStable:           s.CapStable,
		EstimatedISK:        isk,
		ValuatedAt:          s.ValuatedAt,
	}, nil
}

// DomainComponents converts the document component lines to domain components.
func (f FitDocument) DomainComponents() []domain.Component {
	components := make([]domain.Component, 0, len(f.Components))
	for _, line := range f.Components {
		components = append(components, domain.Component{
			TypeName: line.TypeName,
			Quantity: line.Quantity,
		})
	}
	return components
}
