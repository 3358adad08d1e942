package catalog

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// DocumentCache persists the last successfully loaded document set as a
// msgpack file. It is a warm-start fallback: when the catalog directory
// is unavailable at boot (remote bucket down, volume not mounted), the
// last-known documents can still produce a working snapshot.
type DocumentCache struct {
	path string
	log  zerolog.Logger
}

// cachedDocumentSet is the serialized cache payload.
type cachedDocumentSet struct {
	SavedAt   time.Time           `msgpack:"saved_at"`
	Documents []ArchetypeDocument `msgpack:"documents"`
}

// NewDocumentCache creates a document cache at the given path.
func NewDocumentCache(path string, log zerolog.Logger) *DocumentCache {
	return &DocumentCache{
		path: path,
		log:  log.With().Str("component", "catalog_cache").Logger(),
	}
}

// Write persists the document set. Failures are logged, not fatal: the
// cache is an optimization, never a source of truth.
func (c *DocumentCache) Write(documents []ArchetypeDocument) {
	payload := cachedDocumentSet{
		SavedAt:   time.Now().UTC(),
		Documents: documents,
	}

	data, err := msgpack.Marshal(&payload)
	if err != nil {
		c.log.Warn().Err(err).Msg("Failed to encode document cache")
		return
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		c.log.Warn().Err(err).Msg("Failed to write document cache")
		return
	}
	if err := os.Rename(tmp, c.path); err != nil {
		c.log.Warn().Err(err).Msg("Failed to finalize document cache")
		return
	}

	c.log.Debug().Int("archetypes", len(documents)).Msg("Document cache written")
}

// Read returns the cached document set and when it was saved.
func (c *DocumentCache) Read() ([]ArchetypeDocument, time.Time, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to read document cache: %w", err)
	}

	var payload cachedDocumentSet
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode document cache: %w", err)
	}

	return payload.Documents, payload.SavedAt, nil
}
