package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aristath/quartermaster/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// StatsEngine is the slice of the stats collaborator the loader needs:
// registration of document stats plus authoritative recomputation.
type StatsEngine interface {
	Register(blueprint string, stats domain.FitStats) error
	ComputeStats(blueprint string) (domain.FitStats, error)
}

// SkillValidator checks that skill names referenced by a document exist
// in the reference data.
type SkillValidator interface {
	KnownSkill(name string) (bool, error)
}

// Loader builds catalog snapshots from curated YAML documents.
//
// Error discipline: a malformed stats block (ValidationError) excludes
// only that fit and is logged once here at load time; anything that makes
// the document set inconsistent as a whole (missing fields, duplicate
// tiers, unknown skills, underivable requirements) fails the entire load
// with a CatalogLoadError so a reload never produces a partial catalog.
type Loader struct {
	statsEngine    StatsEngine
	resolver       domain.RequirementResolver
	skillValidator SkillValidator
	appraiser      domain.Appraiser
	log            zerolog.Logger
}

// NewLoader creates a catalog loader. The appraiser is optional: when
// present, fits carrying a component list get their valuation refreshed
// at load time instead of trusting the document's cached figure.
func NewLoader(
	statsEngine StatsEngine,
	resolver domain.RequirementResolver,
	skillValidator SkillValidator,
	appraiser domain.Appraiser,
	log zerolog.Logger,
) *Loader {
	return &Loader{
		statsEngine:    statsEngine,
		resolver:       resolver,
		skillValidator: skillValidator,
		appraiser:      appraiser,
		log:            log.With().Str("module", "catalog").Logger(),
	}
}

// LoadDir reads every YAML document under dir and builds a snapshot.
func (l *Loader) LoadDir(dir string) (*Snapshot, error) {
	documents, err := l.ReadDocuments(dir)
	if err != nil {
		return nil, err
	}
	return l.Build(documents)
}

// ReadDocuments parses the YAML documents under dir without building a
// snapshot. The catalog service uses the raw document set for the
// warm-start cache.
func (l *Loader) ReadDocuments(dir string) ([]ArchetypeDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.CatalogLoadError{Source: dir, Err: err}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, &domain.CatalogLoadError{Source: dir, Err: errors.New("no catalog documents found")}
	}

	var documents []ArchetypeDocument
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &domain.CatalogLoadError{Source: path, Err: err}
		}

		var doc CatalogDocument
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &domain.CatalogLoadError{Source: path, Err: err}
		}
		documents = append(documents, doc.Archetypes...)
	}

	return documents, nil
}

// Build validates a document set and assembles a snapshot from it.
func (l *Loader) Build(documents []ArchetypeDocument) (*Snapshot, error) {
	var archetypes []*domain.Archetype
	excluded := 0

	for _, doc := range documents {
		archetype, skipped, err := l.buildArchetype(doc)
		if err != nil {
			return nil, err
		}
		excluded += skipped
		if len(archetype.Fits) > 0 {
			archetypes = append(archetypes, archetype)
		} else {
			l.log.Warn().
				Str("hull", doc.Hull).
				Str("activity", doc.Activity).
				Msg("Archetype has no valid fits after exclusions, dropping")
		}
	}

	if len(archetypes) == 0 {
		return nil, &domain.CatalogLoadError{
			Source: "document set",
			Err:    errors.New("no archetypes with valid fits"),
		}
	}

	snapshot := newSnapshot(uuid.New().String(), time.Now().UTC(), archetypes)
	l.log.Info().
		Str("version", snapshot.Version()).
		Int("archetypes", len(archetypes)).
		Int("fits", snapshot.FitCount()).
		Int("excluded", excluded).
		Msg("Catalog snapshot built")
	return snapshot, nil
}

// buildArchetype validates one archetype document. The returned int is
// the number of fits excluded for malformed stats.
func (l *Loader) buildArchetype(doc ArchetypeDocument) (*domain.Archetype, int, error) {
	source := domain.ArchetypeKey(doc.Hull, doc.Activity)
	if doc.Hull == "" || doc.Activity == "" {
		return nil, 0, &domain.CatalogLoadError{
			Source: source,
			Err:    errors.New("archetype missing hull or activity"),
		}
	}
	if len(doc.Fits) == 0 {
		return nil, 0, &domain.CatalogLoadError{
			Source: source,
			Err:    errors.New("archetype defines no fits"),
		}
	}

	archetype := &domain.Archetype{Hull: doc.Hull, Activity: doc.Activity}
	seenTiers := make(map[domain.Tier]bool)
	excluded := 0

	for _, fitDoc := range doc.Fits {
		tier, err := domain.ParseTier(fitDoc.Tier)
		if err != nil {
			return nil, 0, &domain.CatalogLoadError{Source: source, Err: err}
		}
		if seenTiers[tier] {
			return nil, 0, &domain.CatalogLoadError{
				Source: source,
				Err:    fmt.Errorf("duplicate tier %s", tier),
			}
		}
		seenTiers[tier] = true

		if strings.TrimSpace(fitDoc.Blueprint) == "" {
			return nil, 0, &domain.CatalogLoadError{
				Source: source,
				Err:    fmt.Errorf("fit %s has no equipment blueprint", tier),
			}
		}

		// The advisory requirement cache must only name skills the
		// reference data recognizes; a typo here means the curation
		// step and reference data are out of sync.
		for skill := range fitDoc.SkillRequirements {
			known, err := l.skillValidator.KnownSkill(skill)
			if err != nil {
				return nil, 0, &domain.CatalogLoadError{Source: source, Err: err}
			}
			if !known {
				return nil, 0, &domain.CatalogLoadError{
					Source: source,
					Err:    fmt.Errorf("fit %s references unknown skill %q", tier, skill),
				}
			}
		}

		// Requirements must be derivable now, not at selection time.
		if _, err := l.resolver.DeriveRequirements(fitDoc.Blueprint); err != nil {
			return nil, 0, &domain.CatalogLoadError{Source: source, Err: err}
		}

		fit, err := l.buildFit(archetype, tier, fitDoc)
		if err != nil {
			var validationErr *domain.ValidationError
			if errors.As(err, &validationErr) {
				// Malformed configuration: exclude this fit only, and
				// log once here rather than on every selection.
				l.log.Warn().
					Str("fit", domain.FitID(doc.Hull, doc.Activity, tier)).
					Str("field", validationErr.Field).
					Str("reason", validationErr.Reason).
					Msg("Excluding fit with invalid configuration")
				excluded++
				continue
			}
			return nil, 0, &domain.CatalogLoadError{Source: source, Err: err}
		}

		archetype.Fits = append(archetype.Fits, fit)
	}

	return archetype, excluded, nil
}

func (l *Loader) buildFit(archetype *domain.Archetype, tier domain.Tier, doc FitDocument) (*domain.Fit, error) {
	docStats, err := doc.Stats.ToFitStats()
	if err != nil {
		return nil, err
	}

	// Register validates the stats block; from here on ComputeStats is
	// the authoritative source for this blueprint.
	if err := l.statsEngine.Register(doc.Blueprint, docStats); err != nil {
		return nil, err
	}
	fitStats, err := l.statsEngine.ComputeStats(doc.Blueprint)
	if err != nil {
		return nil, err
	}

	// Refresh the valuation from the price table when the document lists
	// its components. Failure keeps the document's cached figure: pricing
	// gaps must not block a catalog load.
	if l.appraiser != nil && len(doc.Components) > 0 {
		valuation, err := l.appraiser.Valuate(doc.DomainComponents())
		if err != nil {
			l.log.Warn().
				Str("fit", domain.FitID(archetype.Hull, archetype.Activity, tier)).
				Err(err).
				Msg("Valuation refresh failed, keeping document figure")
		} else {
			fitStats.EstimatedISK = valuation.Total
			fitStats.ValuatedAt = valuation.OldestAt
		}
	}

	requirements := make(map[string]int, len(doc.SkillRequirements))
	for skill, level := range doc.SkillRequirements {
		requirements[skill] = level
	}

	return &domain.Fit{
		ID:                      domain.FitID(archetype.Hull, archetype.Activity, tier),
		Hull:                    archetype.Hull,
		Activity:                archetype.Activity,
		Tier:                    tier,
		CloneRestrictedEligible: doc.CloneRestrictedEligible,
		Blueprint:               doc.Blueprint,
		SkillRequirements:       requirements,
		Stats:                   fitStats,
	}, nil
}
