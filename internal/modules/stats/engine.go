// Package stats implements the fit statistics engine consumed by the
// catalog loader. The curated fit documents carry precomputed combat
// statistics; this engine validates their legality and serves them as the
// authoritative FitStats for a blueprint. The engine never interprets the
// raw blueprint text, only the curated numbers attached to it.
package stats

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/aristath/quartermaster/internal/domain"
	"github.com/rs/zerolog"
)

// Resource budget ceilings. A document whose stats exceed these is
// malformed and the fit gets excluded from the catalog.
const (
	maxEHP        = 2_000_000 // beyond any subcapital hull
	maxDPS        = 20_000
	maxRepairRate = 10_000
)

// DocumentEngine validates and serves combat statistics registered from
// fit documents, keyed by a checksum of the blueprint text.
type DocumentEngine struct {
	mu       sync.RWMutex
	statsFor map[string]domain.FitStats
	log      zerolog.Logger
}

// NewDocumentEngine creates an empty document stats engine.
func NewDocumentEngine(log zerolog.Logger) *DocumentEngine {
	return &DocumentEngine{
		statsFor: make(map[string]domain.FitStats),
		log:      log.With().Str("module", "stats").Logger(),
	}
}

// BlueprintKey returns the checksum under which a blueprint's stats and
// requirements are stored. The blueprint text is opaque: the checksum is
// the only interpretation this engine performs.
func BlueprintKey(blueprint string) string {
	sum := sha256.Sum256([]byte(blueprint))
	return hex.EncodeToString(sum[:])
}

// Register validates the document stats for a blueprint and stores them.
// A *domain.ValidationError return means the configuration is malformed
// and the caller must exclude the fit from the catalog.
func (e *DocumentEngine) Register(blueprint string, stats domain.FitStats) error {
	if err := validate(stats); err != nil {
		return err
	}

	e.mu.Lock()
	e.statsFor[BlueprintKey(blueprint)] = stats
	e.mu.Unlock()
	return nil
}

// ComputeStats returns the validated statistics for a blueprint.
func (e *DocumentEngine) ComputeStats(blueprint string) (domain.FitStats, error) {
	e.mu.RLock()
	stats, ok := e.statsFor[BlueprintKey(blueprint)]
	e.mu.RUnlock()

	if !ok {
		return domain.FitStats{}, fmt.Errorf("no statistics registered for blueprint")
	}
	return stats, nil
}

// validate applies the legality checks to a stats block.
func validate(stats domain.FitStats) error {
	if stats.EHP <= 0 {
		return &domain.ValidationError{Field: "ehp", Reason: "must be positive"}
	}
	if stats.EHP > maxEHP {
		return &domain.ValidationError{Field: "ehp", Reason: fmt.Sprintf("%.0f exceeds ceiling %d", stats.EHP, maxEHP)}
	}
	if stats.DPS < 0 || stats.DPS > maxDPS {
		return &domain.ValidationError{Field: "dps", Reason: fmt.Sprintf("%.0f outside [0, %d]", stats.DPS, maxDPS)}
	}
	if stats.RepairRate < 0 || stats.RepairRate > maxRepairRate {
		return &domain.ValidationError{Field: "repair_rate", Reason: "outside legal range"}
	}
	if stats.PassiveRegenRate < 0 {
		return &domain.ValidationError{Field: "passive_regen_rate", Reason: "must not be negative"}
	}
	if stats.HasActiveRepair && stats.RepairRate <= 0 {
		return &domain.ValidationError{Field: "repair_rate", Reason: "active repair module with no repair rate"}
	}
	if !stats.TankType.Valid() {
		return &domain.ValidationError{Field: "tank_type", Reason: fmt.Sprintf("unknown label %q", stats.TankType)}
	}
	for dt, value := range stats.Resists {
		if value < 0 || value > 1 {
			return &domain.ValidationError{Field: "resists." + string(dt), Reason: fmt.Sprintf("%.2f outside [0, 1]", value)}
		}
	}
	if stats.EstimatedISK.IsNegative() {
		return &domain.ValidationError{Field: "estimated_isk", Reason: "must not be negative"}
	}
	return nil
}
