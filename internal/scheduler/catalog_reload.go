package scheduler

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aristath/quartermaster/internal/modules/catalog"
)

// CatalogReloadJob refreshes the fit catalog on a schedule so curation
// updates and repriced documents reach the engine without a restart.
// A failed reload keeps the current snapshot; the catalog service emits
// the failure event.
type CatalogReloadJob struct {
	service *catalog.Service
	log     zerolog.Logger
}

// NewCatalogReloadJob creates the periodic catalog reload job.
func NewCatalogReloadJob(service *catalog.Service, log zerolog.Logger) *CatalogReloadJob {
	return &CatalogReloadJob{
		service: service,
		log:     log.With().Str("job", "catalog_reload").Logger(),
	}
}

// Name returns the job name
func (j *CatalogReloadJob) Name() string {
	return "catalog_reload"
}

// Run reloads the catalog
func (j *CatalogReloadJob) Run() error {
	return j.service.Reload(context.Background())
}
