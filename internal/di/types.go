// Package di provides dependency injection wiring for the application.
// The Container is the single source of truth for all service instances
// and is handed to the server for access to services.
package di

import (
	"github.com/aristath/quartermaster/internal/database"
	"github.com/aristath/quartermaster/internal/events"
	"github.com/aristath/quartermaster/internal/modules/catalog"
	"github.com/aristath/quartermaster/internal/modules/eligibility"
	"github.com/aristath/quartermaster/internal/modules/missions"
	"github.com/aristath/quartermaster/internal/modules/pricing"
	"github.com/aristath/quartermaster/internal/modules/selection"
	"github.com/aristath/quartermaster/internal/modules/skills"
	"github.com/aristath/quartermaster/internal/modules/stats"
	"github.com/aristath/quartermaster/internal/scheduler"
)

// Container holds all dependencies for the application.
//
// Wiring order: databases, then repositories, then services, then jobs.
// Each stage only reads from the previous ones.
type Container struct {
	// Databases
	ReferenceDB *database.DB // skill requirement reference data
	PricesDB    *database.DB // component price cache

	// Event bus
	EventBus *events.Bus

	// Repositories
	SkillsRepo   *skills.Repository
	PricesRepo   *pricing.Repository
	CatalogRepo  *catalog.Repository
	MissionsRepo *missions.Repository

	// Services
	StatsEngine      *stats.DocumentEngine
	Resolver         *skills.Resolver
	Appraiser        *pricing.Appraiser
	CatalogLoader    *catalog.Loader
	CatalogService   *catalog.Service
	Checker          *eligibility.Checker
	Matcher          *missions.Matcher
	Ranker           *selection.Ranker
	SelectionService *selection.Service
}

// JobInstances holds the scheduled job instances so the server can expose
// manual triggers for them.
type JobInstances struct {
	CatalogReload  *scheduler.CatalogReloadJob
	PriceStaleness *scheduler.PriceStalenessJob
}

// Close releases the container's database handles.
func (c *Container) Close() {
	if c.ReferenceDB != nil {
		c.ReferenceDB.Close()
	}
	if c.PricesDB != nil {
		c.PricesDB.Close()
	}
}
