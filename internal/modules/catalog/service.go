package catalog

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/aristath/quartermaster/internal/domain"
	"github.com/aristath/quartermaster/internal/events"
)

// Service orchestrates catalog loading: optional remote sync, document
// parsing, snapshot build, atomic swap, and warm-start caching. A failed
// reload never touches the currently served snapshot.
type Service struct {
	repo       *Repository
	loader     *Loader
	cache      *DocumentCache // nil when the warm-start cache is disabled
	syncer     *RemoteSyncer  // nil when remote sync is disabled
	bus        *events.Bus
	catalogDir string
	log        zerolog.Logger
}

// NewService creates the catalog service. cache and syncer are optional.
func NewService(
	repo *Repository,
	loader *Loader,
	cache *DocumentCache,
	syncer *RemoteSyncer,
	bus *events.Bus,
	catalogDir string,
	log zerolog.Logger,
) *Service {
	return &Service{
		repo:       repo,
		loader:     loader,
		cache:      cache,
		syncer:     syncer,
		bus:        bus,
		catalogDir: catalogDir,
		log:        log.With().Str("module", "catalog").Logger(),
	}
}

// Reload refreshes the catalog: sync from the remote bucket when
// configured, parse and validate the local documents, then swap the new
// snapshot in. On any failure the previous snapshot stays in place and a
// CatalogReloadFailed event is emitted.
func (s *Service) Reload(ctx context.Context) error {
	if s.syncer != nil {
		if _, err := s.syncer.Sync(ctx, s.catalogDir); err != nil {
			// The local directory still holds the last synced documents,
			// so a bucket outage degrades to a local-only reload.
			s.log.Warn().Err(err).Msg("Remote catalog sync failed, loading local documents")
		}
	}

	documents, err := s.loader.ReadDocuments(s.catalogDir)
	if err != nil {
		return s.reloadFailed(err)
	}

	snapshot, err := s.loader.Build(documents)
	if err != nil {
		return s.reloadFailed(err)
	}

	previous := s.repo.Swap(snapshot)
	if s.cache != nil {
		s.cache.Write(documents)
	}

	data := map[string]interface{}{
		"version": snapshot.Version(),
		"fits":    snapshot.FitCount(),
	}
	if previous != nil {
		data["previous_version"] = previous.Version()
	}
	s.bus.Emit(events.CatalogReloaded, "catalog", data)
	return nil
}

func (s *Service) reloadFailed(err error) error {
	s.log.Error().Err(err).Msg("Catalog reload failed, keeping current snapshot")
	s.bus.Emit(events.CatalogReloadFailed, "catalog", map[string]interface{}{
		"error": err.Error(),
	})
	return err
}

// WarmStart performs the initial load at boot. When the catalog
// directory cannot produce a snapshot, it falls back to the warm-start
// cache so the service can come up on the last known good document set.
func (s *Service) WarmStart(ctx context.Context) error {
	err := s.Reload(ctx)
	if err == nil {
		return nil
	}
	if s.cache == nil {
		return err
	}

	documents, savedAt, cacheErr := s.cache.Read()
	if cacheErr != nil {
		s.log.Warn().Err(cacheErr).Msg("Warm-start cache unavailable")
		return err
	}

	snapshot, buildErr := s.loader.Build(documents)
	if buildErr != nil {
		s.log.Warn().Err(buildErr).Msg("Warm-start cache did not build")
		return err
	}

	s.repo.Swap(snapshot)
	s.log.Warn().
		Time("cached_at", savedAt).
		Str("version", snapshot.Version()).
		Msg("Serving catalog from warm-start cache")
	s.bus.Emit(events.CatalogReloaded, "catalog", map[string]interface{}{
		"version":    snapshot.Version(),
		"fits":       snapshot.FitCount(),
		"from_cache": true,
	})
	return nil
}

// TierSummary aggregates fit statistics for one tier across the catalog.
type TierSummary struct {
	Tier      string  `json:"tier"`
	Fits      int     `json:"fits"`
	MeanEHP   float64 `json:"mean_ehp"`
	StdDevEHP float64 `json:"stddev_ehp"`
	MeanDPS   float64 `json:"mean_dps"`
	MeanISK   float64 `json:"mean_isk"`
}

// CatalogSummary describes the currently served snapshot.
type CatalogSummary struct {
	Version    string        `json:"version"`
	LoadedAt   time.Time     `json:"loaded_at"`
	Archetypes int           `json:"archetypes"`
	Fits       int           `json:"fits"`
	Tiers      []TierSummary `json:"tiers"`
}

// Summary computes aggregate statistics over the current snapshot.
func (s *Service) Summary() (*CatalogSummary, error) {
	snapshot, err := s.repo.Current()
	if err != nil {
		return nil, err
	}

	type sample struct {
		ehp, dps, isk []float64
	}
	byTier := make(map[domain.Tier]*sample)

	archetypes := snapshot.Archetypes()
	for _, archetype := range archetypes {
		for _, fit := range archetype.Fits {
			group, ok := byTier[fit.Tier]
			if !ok {
				group = &sample{}
				byTier[fit.Tier] = group
			}
			group.ehp = append(group.ehp, fit.Stats.EHP)
			group.dps = append(group.dps, fit.Stats.DPS)
			group.isk = append(group.isk, fit.Stats.EstimatedISK.InexactFloat64())
		}
	}

	tiers := make([]domain.Tier, 0, len(byTier))
	for tier := range byTier {
		tiers = append(tiers, tier)
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i] < tiers[j] })

	summary := &CatalogSummary{
		Version:    snapshot.Version(),
		LoadedAt:   snapshot.LoadedAt(),
		Archetypes: len(archetypes),
		Fits:       snapshot.FitCount(),
	}
	for _, tier := range tiers {
		group := byTier[tier]
		stddev := 0.0
		if len(group.ehp) > 1 {
			stddev = stat.StdDev(group.ehp, nil)
		}
		summary.Tiers = append(summary.Tiers, TierSummary{
			Tier:      tier.String(),
			Fits:      len(group.ehp),
			MeanEHP:   stat.Mean(group.ehp, nil),
			StdDevEHP: stddev,
			MeanDPS:   stat.Mean(group.dps, nil),
			MeanISK:   stat.Mean(group.isk, nil),
		})
	}
	return summary, nil
}
