package di

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/aristath/quartermaster/internal/config"
	"github.com/aristath/quartermaster/internal/modules/catalog"
	"github.com/aristath/quartermaster/internal/modules/eligibility"
	"github.com/aristath/quartermaster/internal/modules/missions"
	"github.com/aristath/quartermaster/internal/modules/pricing"
	"github.com/aristath/quartermaster/internal/modules/selection"
	"github.com/aristath/quartermaster/internal/modules/skills"
	"github.com/aristath/quartermaster/internal/modules/stats"
)

// InitializeServices creates the business logic layer on top of the
// repositories and performs the initial catalog load.
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	container.StatsEngine = stats.NewDocumentEngine(log)
	container.Resolver = skills.NewResolver(container.SkillsRepo, log)
	container.Appraiser = pricing.NewAppraiser(container.PricesRepo, log)

	thresholds := missions.DefaultThresholds()
	if cfg.ThresholdsFile != "" {
		loaded, err := missions.LoadThresholds(cfg.ThresholdsFile)
		if err != nil {
			return fmt.Errorf("failed to load mission thresholds: %w", err)
		}
		thresholds = loaded
	}
	container.Matcher = missions.NewMatcher(thresholds, log)
	container.Checker = eligibility.NewChecker(container.Resolver, log)
	container.Ranker = selection.NewRanker(log)

	// The mission knowledge base is optional: without it, selections
	// simply cannot use mission context.
	if _, err := os.Stat(cfg.MissionsDir); err == nil {
		if err := container.MissionsRepo.LoadDir(cfg.MissionsDir); err != nil {
			return fmt.Errorf("failed to load mission knowledge base: %w", err)
		}
	} else {
		log.Warn().Str("dir", cfg.MissionsDir).Msg("Missions directory not found, mission matching unavailable")
	}

	container.CatalogLoader = catalog.NewLoader(
		container.StatsEngine,
		container.Resolver,
		container.SkillsRepo,
		container.Appraiser,
		log,
	)

	var cache *catalog.DocumentCache
	if cfg.SnapshotCache {
		cache = catalog.NewDocumentCache(cfg.SnapshotCachePath(), log)
	}

	var syncer *catalog.RemoteSyncer
	if cfg.Remote != nil && cfg.Remote.Enabled {
		var err error
		syncer, err = catalog.NewRemoteSyncer(context.Background(), cfg.Remote, log)
		if err != nil {
			return fmt.Errorf("failed to initialize remote catalog sync: %w", err)
		}
	}

	container.CatalogService = catalog.NewService(
		container.CatalogRepo,
		container.CatalogLoader,
		cache,
		syncer,
		container.EventBus,
		cfg.CatalogDir,
		log,
	)

	container.SelectionService = selection.NewService(
		container.CatalogRepo,
		container.Checker,
		container.MissionsRepo,
		container.Matcher,
		container.Ranker,
		container.EventBus,
		log,
	)

	// Initial load; falls back to the warm-start cache when the catalog
	// directory cannot produce a snapshot. A failed boot load is not
	// fatal: the API serves 503s until a reload succeeds.
	if err := container.CatalogService.WarmStart(context.Background()); err != nil {
		log.Error().Err(err).Msg("Initial catalog load failed, selection unavailable until reload")
	}

	log.Info().Msg("Services initialized")
	return nil
}
