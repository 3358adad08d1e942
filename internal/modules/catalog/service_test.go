package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/quartermaster/internal/events"
)

const serviceTestDoc = `archetypes:
  - hull: Vexor
    activity: anomaly_ratting
    fits:
      - tier: base
        equipment_blueprint: "vexor base"
        stats:
          ehp: 18000
          tank_type: buffer
          dps: 300
          estimated_isk: "12000000"
      - tier: common
        equipment_blueprint: "vexor common"
        stats:
          ehp: 24000
          tank_type: buffer
          dps: 420
          estimated_isk: "30000000"
`

func newTestService(t *testing.T, catalogDir, cachePath string) (*Service, *Repository, *events.Bus) {
	t.Helper()
	log := zerolog.Nop()
	repo := NewRepository(log)
	var cache *DocumentCache
	if cachePath != "" {
		cache = NewDocumentCache(cachePath, log)
	}
	bus := events.NewBus(log)
	service := NewService(repo, newTestLoader(t, nil), cache, nil, bus, catalogDir, log)
	return service, repo, bus
}

func TestServiceReload(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vexor.yaml"), []byte(serviceTestDoc), 0644))

	cachePath := filepath.Join(t.TempDir(), "catalog.msgpack")
	service, repo, bus := newTestService(t, dir, cachePath)

	var emitted []*events.Event
	bus.Subscribe(func(event *events.Event) {
		emitted = append(emitted, event)
	})

	require.NoError(t, service.Reload(context.Background()))

	snapshot, err := repo.Current()
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.FitCount())

	require.Len(t, emitted, 1)
	assert.Equal(t, events.CatalogReloaded, emitted[0].Type)

	// Reload persisted the document set as the warm-start cache.
	_, err = os.Stat(cachePath)
	assert.NoError(t, err)
}

func TestServiceReloadFailureKeepsSnapshot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vexor.yaml"), []byte(serviceTestDoc), 0644))

	service, repo, bus := newTestService(t, dir, "")
	require.NoError(t, service.Reload(context.Background()))

	served, err := repo.Current()
	require.NoError(t, err)

	var emitted []*events.Event
	bus.Subscribe(func(event *events.Event) {
		emitted = append(emitted, event)
	})

	// Break the directory: the next reload must fail without touching
	// the served snapshot.
	require.NoError(t, os.Remove(filepath.Join(dir, "vexor.yaml")))

	err = service.Reload(context.Background())
	require.Error(t, err)

	current, err := repo.Current()
	require.NoError(t, err)
	assert.Equal(t, served.Version(), current.Version())

	require.Len(t, emitted, 1)
	assert.Equal(t, events.CatalogReloadFailed, emitted[0].Type)
}

func TestServiceWarmStartFromCache(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vexor.yaml"), []byte(serviceTestDoc), 0644))

	cachePath := filepath.Join(t.TempDir(), "catalog.msgpack")
	service, _, _ := newTestService(t, dir, cachePath)
	require.NoError(t, service.Reload(context.Background()))

	// A fresh service pointed at an empty directory boots from the
	// cached document set.
	emptyDir := t.TempDir()
	restarted, repo, _ := newTestService(t, emptyDir, cachePath)

	require.NoError(t, restarted.WarmStart(context.Background()))

	snapshot, err := repo.Current()
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.FitCount())
}

func TestServiceSummary(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vexor.yaml"), []byte(serviceTestDoc), 0644))

	service, _, _ := newTestService(t, dir, "")
	require.NoError(t, service.Reload(context.Background()))

	summary, err := service.Summary()
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Archetypes)
	assert.Equal(t, 2, summary.Fits)
	require.Len(t, summary.Tiers, 2)
	assert.Equal(t, "base", summary.Tiers[0].Tier)
	assert.Equal(t, 18000.0, summary.Tiers[0].MeanEHP)
	assert.Equal(t, "common", summary.Tiers[1].Tier)
	assert.Equal(t, 12000000.0, summary.Tiers[0].MeanISK)
}
