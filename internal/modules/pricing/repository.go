// Package pricing implements the appraiser collaborator: a component
// price table maintained offline, served with explicit timestamps so
// callers can apply their own staleness policy. The selection engine
// never fetches prices in real time.
package pricing

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ComponentPrice is one priced item type as stored in the price table.
type ComponentPrice struct {
	TypeName  string          `json:"type_name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Repository handles component price database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new price repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "pricing").Logger(),
	}
}

// Schema for the price table. Prices are stored as text to keep decimal
// exactness through sqlite.
const Schema = `
CREATE TABLE IF NOT EXISTS component_prices (
	type_name  TEXT PRIMARY KEY,
	unit_price TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

// EnsureSchema creates the price table if it does not exist.
func (r *Repository) EnsureSchema() error {
	if _, err := r.db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create pricing schema: %w", err)
	}
	return nil
}

// Get returns the stored price for a component type, or nil if unknown.
func (r *Repository) Get(typeName string) (*ComponentPrice, error) {
	row := r.db.QueryRow(
		"SELECT type_name, unit_price, updated_at FROM component_prices WHERE type_name = ?",
		typeName,
	)

	var price ComponentPrice
	var raw string
	err := row.Scan(&price.TypeName, &raw, &price.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query price for %s: %w", typeName, err)
	}

	price.UnitPrice, err = decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("corrupt price for %s: %w", typeName, err)
	}
	return &price, nil
}

// Upsert stores a component price. Used by the curation tooling and tests.
func (r *Repository) Upsert(typeName string, unitPrice decimal.Decimal, updatedAt time.Time) error {
	_, err := r.db.Exec(
		`INSERT INTO component_prices (type_name, unit_price, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(type_name) DO UPDATE SET unit_price = excluded.unit_price, updated_at = excluded.updated_at`,
		typeName, unitPrice.String(), updatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert price for %s: %w", typeName, err)
	}
	return nil
}

// StaleComponents returns the component types whose price is older than
// the window at the given instant. Read by the staleness sweep job.
func (r *Repository) StaleComponents(window time.Duration, now time.Time) ([]ComponentPrice, error) {
	cutoff := now.Add(-window).UTC()
	rows, err := r.db.Query(
		"SELECT type_name, unit_price, updated_at FROM component_prices WHERE updated_at < ? ORDER BY updated_at ASC",
		cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale prices: %w", err)
	}
	defer rows.Close()

	var stale []ComponentPrice
	for rows.Next() {
		var price ComponentPrice
		var raw string
		if err := rows.Scan(&price.TypeName, &raw, &price.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan stale price: %w", err)
		}
		if price.UnitPrice, err = decimal.NewFromString(raw); err != nil {
			return nil, fmt.Errorf("corrupt price for %s: %w", price.TypeName, err)
		}
		stale = append(stale, price)
	}
	return stale, rows.Err()
}
