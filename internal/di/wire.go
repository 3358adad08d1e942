package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/quartermaster/internal/config"
	"github.com/aristath/quartermaster/internal/scheduler"
)

// Wire initializes all dependencies and returns a fully configured
// container. Order of operations:
//  1. Initialize databases
//  2. Initialize repositories
//  3. Initialize services (includes the initial catalog load)
//  4. Register jobs
func Wire(cfg *config.Config, sched *scheduler.Scheduler, log zerolog.Logger) (*Container, *JobInstances, error) {
	container, err := InitializeDatabases(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize databases: %w", err)
	}

	if err := InitializeRepositories(container, log); err != nil {
		container.Close()
		return nil, nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}

	if err := InitializeServices(container, cfg, log); err != nil {
		container.Close()
		return nil, nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	jobs, err := RegisterJobs(container, cfg, sched, log)
	if err != nil {
		container.Close()
		return nil, nil, fmt.Errorf("failed to register jobs: %w", err)
	}

	log.Info().Msg("Dependency injection wiring completed")
	return container, jobs, nil
}
