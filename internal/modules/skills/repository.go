// Package skills implements the skill/requirement resolver backed by the
// curated reference database. The offline curation step writes the
// minimum skill levels for every blueprint into the reference tables;
// this package serves them as the authoritative requirements.
package skills

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// Repository handles skill requirement database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new skill requirement repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "skills").Logger(),
	}
}

// Schema for the reference tables. Written by the offline curation step;
// this service only reads.
const Schema = `
CREATE TABLE IF NOT EXISTS blueprint_requirements (
	blueprint_key TEXT NOT NULL,
	skill         TEXT NOT NULL,
	min_level     INTEGER NOT NULL CHECK (min_level BETWEEN 1 AND 5),
	PRIMARY KEY (blueprint_key, skill)
);

CREATE TABLE IF NOT EXISTS known_skills (
	name TEXT PRIMARY KEY
);
`

// EnsureSchema creates the reference tables if they do not exist.
func (r *Repository) EnsureSchema() error {
	if _, err := r.db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create skills schema: %w", err)
	}
	return nil
}

// RequirementsFor returns the skill requirements stored for a blueprint
// key. An empty map with no error means the blueprint is known to need
// no skills only when hasAny is true; callers distinguish "no rows" via
// the second return.
func (r *Repository) RequirementsFor(blueprintKey string) (map[string]int, bool, error) {
	rows, err := r.db.Query(
		"SELECT skill, min_level FROM blueprint_requirements WHERE blueprint_key = ?",
		blueprintKey,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to query requirements: %w", err)
	}
	defer rows.Close()

	requirements := make(map[string]int)
	for rows.Next() {
		var skill string
		var level int
		if err := rows.Scan(&skill, &level); err != nil {
			return nil, false, fmt.Errorf("failed to scan requirement: %w", err)
		}
		requirements[skill] = level
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	return requirements, len(requirements) > 0, nil
}

// KnownSkill reports whether a skill name exists in the reference data.
// Used at catalog load time to reject documents naming unknown skills.
func (r *Repository) KnownSkill(name string) (bool, error) {
	var exists int
	err := r.db.QueryRow("SELECT 1 FROM known_skills WHERE name = ?", name).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query known skill: %w", err)
	}
	return true, nil
}

// UpsertRequirements replaces the stored requirements for a blueprint.
// Exposed for tests and the curation tooling.
func (r *Repository) UpsertRequirements(blueprintKey string, requirements map[string]int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM blueprint_requirements WHERE blueprint_key = ?", blueprintKey); err != nil {
		return fmt.Errorf("failed to clear requirements: %w", err)
	}

	for skill, level := range requirements {
		if _, err := tx.Exec(
			"INSERT INTO blueprint_requirements (blueprint_key, skill, min_level) VALUES (?, ?, ?)",
			blueprintKey, skill, level,
		); err != nil {
			return fmt.Errorf("failed to insert requirement %s: %w", skill, err)
		}
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO known_skills (name) VALUES (?)", skill,
		); err != nil {
			return fmt.Errorf("failed to register skill %s: %w", skill, err)
		}
	}

	return tx.Commit()
}
