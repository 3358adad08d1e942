package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/quartermaster/internal/events"
	"github.com/aristath/quartermaster/internal/modules/catalog"
	"github.com/aristath/quartermaster/internal/modules/missions"
	"github.com/aristath/quartermaster/internal/modules/pricing"
	"github.com/aristath/quartermaster/internal/modules/skills"
)

// InitializeRepositories creates the data access layer and ensures the
// database schemas exist.
func InitializeRepositories(container *Container, log zerolog.Logger) error {
	container.EventBus = events.NewBus(log)

	container.SkillsRepo = skills.NewRepository(container.ReferenceDB.Conn(), log)
	if err := container.SkillsRepo.EnsureSchema(); err != nil {
		return fmt.Errorf("failed to ensure skills schema: %w", err)
	}

	container.PricesRepo = pricing.NewRepository(container.PricesDB.Conn(), log)
	if err := container.PricesRepo.EnsureSchema(); err != nil {
		return fmt.Errorf("failed to ensure prices schema: %w", err)
	}

	container.CatalogRepo = catalog.NewRepository(log)
	container.MissionsRepo = missions.NewRepository(log)

	log.Info().Msg("Repositories initialized")
	return nil
}
