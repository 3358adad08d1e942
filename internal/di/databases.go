package di

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/aristath/quartermaster/internal/config"
	"github.com/aristath/quartermaster/internal/database"
)

// InitializeDatabases opens the application databases and returns a
// container holding them. The reference database carries curated skill
// requirement data; the prices database is a refreshable cache.
func InitializeDatabases(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	referenceDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "reference.db"),
		Profile: database.ProfileReference,
		Name:    "reference",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open reference database: %w", err)
	}

	pricesDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "prices.db"),
		Profile: database.ProfileCache,
		Name:    "prices",
	})
	if err != nil {
		referenceDB.Close()
		return nil, fmt.Errorf("failed to open prices database: %w", err)
	}

	log.Info().
		Str("data_dir", cfg.DataDir).
		Msg("Databases initialized")

	return &Container{
		ReferenceDB: referenceDB,
		PricesDB:    pricesDB,
	}, nil
}
