package di

import (
	"github.com/rs/zerolog"

	"github.com/aristath/quartermaster/internal/config"
	"github.com/aristath/quartermaster/internal/scheduler"
)

// RegisterJobs creates the background job instances and registers them
// with the scheduler.
func RegisterJobs(container *Container, cfg *config.Config, sched *scheduler.Scheduler, log zerolog.Logger) (*JobInstances, error) {
	jobs := &JobInstances{
		CatalogReload:  scheduler.NewCatalogReloadJob(container.CatalogService, log),
		PriceStaleness: scheduler.NewPriceStalenessJob(container.PricesRepo, container.EventBus, cfg.PriceStalenessWindow, log),
	}

	if cfg.ReloadSchedule != "" {
		if err := sched.AddJob(cfg.ReloadSchedule, jobs.CatalogReload); err != nil {
			return nil, err
		}
		if err := sched.AddJob(cfg.ReloadSchedule, jobs.PriceStaleness); err != nil {
			return nil, err
		}
	} else {
		log.Info().Msg("Reload schedule disabled, jobs available via manual trigger only")
	}

	return jobs, nil
}
