package skills

import (
	"testing"

	"github.com/aristath/quartermaster/internal/database"
	"github.com/aristath/quartermaster/internal/modules/stats"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := database.New(database.Config{
		Path:    "file:skills_test_" + t.Name() + "?mode=memory&cache=shared",
		Profile: database.ProfileReference,
		Name:    "reference",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db.Conn(), zerolog.Nop())
	require.NoError(t, repo.EnsureSchema())
	return repo
}

func TestDeriveRequirements(t *testing.T) {
	repo := newTestRepo(t)
	resolver := NewResolver(repo, zerolog.Nop())

	blueprint := "[Vexor, drone skirmisher]"
	require.NoError(t, repo.UpsertRequirements(stats.BlueprintKey(blueprint), map[string]int{
		"Gallente Cruiser": 3,
		"Drones":           5,
	}))

	requirements, err := resolver.DeriveRequirements(blueprint)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Gallente Cruiser": 3, "Drones": 5}, requirements)
}

func TestDeriveRequirementsUnknownBlueprint(t *testing.T) {
	repo := newTestRepo(t)
	resolver := NewResolver(repo, zerolog.Nop())

	_, err := resolver.DeriveRequirements("[Vexor, never curated]")
	assert.Error(t, err)
}

func TestUpsertReplacesPreviousRequirements(t *testing.T) {
	repo := newTestRepo(t)
	resolver := NewResolver(repo, zerolog.Nop())

	blueprint := "[Rifter, refit]"
	key := stats.BlueprintKey(blueprint)

	require.NoError(t, repo.UpsertRequirements(key, map[string]int{"Minmatar Frigate": 1, "Gunnery": 2}))
	require.NoError(t, repo.UpsertRequirements(key, map[string]int{"Minmatar Frigate": 4}))

	requirements, err := resolver.DeriveRequirements(blueprint)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Minmatar Frigate": 4}, requirements)
}

func TestKnownSkill(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.UpsertRequirements("somekey", map[string]int{"Thermodynamics": 1}))

	known, err := repo.KnownSkill("Thermodynamics")
	require.NoError(t, err)
	assert.True(t, known)

	known, err = repo.KnownSkill("Basket Weaving")
	require.NoError(t, err)
	assert.False(t, known)
}
