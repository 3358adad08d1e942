package selection

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/quartermaster/internal/domain"
	"github.com/aristath/quartermaster/internal/events"
	"github.com/aristath/quartermaster/internal/modules/catalog"
	"github.com/aristath/quartermaster/internal/modules/eligibility"
	"github.com/aristath/quartermaster/internal/modules/missions"
	"github.com/aristath/quartermaster/internal/modules/stats"
)

type mapResolver struct {
	requirements map[string]map[string]int
}

func (r *mapResolver) DeriveRequirements(blueprint string) (map[string]int, error) {
	reqs, ok := r.requirements[blueprint]
	if !ok {
		return nil, errors.New("no requirement rows for blueprint")
	}
	return reqs, nil
}

type allKnownSkills struct{}

func (allKnownSkills) KnownSkill(name string) (bool, error) { return true, nil }

type mapMissions struct {
	profiles map[string]*domain.MissionProfile
}

func (m *mapMissions) Lookup(activity string) (*domain.MissionProfile, error) {
	profile, ok := m.profiles[activity]
	if !ok {
		return nil, domain.ErrMissionNotFound
	}
	return profile, nil
}

func baseFitDoc() catalog.FitDocument {
	return catalog.FitDocument{
		Tier:                    "base",
		CloneRestrictedEligible: true,
		Blueprint:               "vexor base",
		SkillRequirements:       map[string]int{"Gunnery": 1},
		Stats: catalog.StatsDocument{
			EHP:          25000,
			TankType:     "buffer",
			DPS:          300,
			Resists:      map[string]float64{"kinetic": 0.70, "thermal": 0.65, "em": 0.40},
			EstimatedISK: "12000000",
		},
	}
}

func optimalFitDoc() catalog.FitDocument {
	return catalog.FitDocument{
		Tier:      "optimal_advanced",
		Blueprint: "vexor optimal",
		SkillRequirements: map[string]int{
			"Gunnery": 5,
			"Drones":  5,
		},
		Stats: catalog.StatsDocument{
			EHP:          60000,
			TankType:     "buffer",
			DPS:          750,
			Resists:      map[string]float64{"kinetic": 0.80, "thermal": 0.72, "em": 0.50},
			EstimatedISK: "90000000",
		},
	}
}

func newTestService(t *testing.T, fits []catalog.FitDocument, profiles map[string]*domain.MissionProfile) *Service {
	t.Helper()
	log := zerolog.Nop()

	resolver := &mapResolver{requirements: map[string]map[string]int{
		"vexor base":    {"Gunnery": 1},
		"vexor optimal": {"Gunnery": 5, "Drones": 5},
	}}

	loader := catalog.NewLoader(stats.NewDocumentEngine(log), resolver, allKnownSkills{}, nil, log)
	snapshot, err := loader.Build([]catalog.ArchetypeDocument{{
		Hull:     "Vexor",
		Activity: "anomaly_ratting",
		Fits:     fits,
	}})
	require.NoError(t, err)

	repo := catalog.NewRepository(log)
	repo.Swap(snapshot)

	return NewService(
		repo,
		eligibility.NewChecker(resolver, log),
		&mapMissions{profiles: profiles},
		missions.NewMatcher(missions.DefaultThresholds(), log),
		NewRanker(log),
		events.NewBus(log),
		log,
	)
}

func skilledPilot(clone domain.CloneStatus) *domain.PilotProfile {
	return &domain.PilotProfile{
		CloneStatus: clone,
		Skills:      map[string]int{"Gunnery": 5, "Drones": 5},
	}
}

func TestSelectFitSingleCandidate(t *testing.T) {
	service := newTestService(t, []catalog.FitDocument{baseFitDoc()}, nil)

	report, err := service.SelectFit("Vexor", "anomaly_ratting", skilledPilot(domain.CloneUnrestricted), false)
	require.NoError(t, err)

	require.True(t, report.Result.Valid())
	assert.False(t, report.Result.IsPair())
	assert.Equal(t, "Vexor/anomaly_ratting/base", report.Result.Recommended.ID)
	assert.Empty(t, report.Rejected)
	assert.NotEmpty(t, report.ID)
}

func TestSelectFitPair(t *testing.T) {
	service := newTestService(t, []catalog.FitDocument{baseFitDoc(), optimalFitDoc()}, nil)

	report, err := service.SelectFit("Vexor", "anomaly_ratting", skilledPilot(domain.CloneUnrestricted), false)
	require.NoError(t, err)

	require.True(t, report.Result.IsPair())
	assert.Equal(t, "Vexor/anomaly_ratting/base", report.Result.Efficient.ID)
	assert.Equal(t, "Vexor/anomaly_ratting/optimal_advanced", report.Result.Premium.ID)
}

func TestSelectFitRestrictedClone(t *testing.T) {
	service := newTestService(t, []catalog.FitDocument{baseFitDoc(), optimalFitDoc()}, nil)

	report, err := service.SelectFit("Vexor", "anomaly_ratting", skilledPilot(domain.CloneRestricted), false)
	require.NoError(t, err)

	// Only the clone-eligible base fit survives, so the pair degrades to
	// a single recommendation.
	require.True(t, report.Result.Valid())
	assert.False(t, report.Result.IsPair())
	assert.Equal(t, "Vexor/anomaly_ratting/base", report.Result.Recommended.ID)

	require.Len(t, report.Rejected, 1)
	assert.Equal(t, "Vexor/anomaly_ratting/optimal_advanced", report.Rejected[0].FitID)
	assert.Equal(t, domain.ReasonCloneGate, report.Rejected[0].Reason)
}

func TestSelectFitMissingSkills(t *testing.T) {
	service := newTestService(t, []catalog.FitDocument{optimalFitDoc()}, nil)

	pilot := &domain.PilotProfile{
		CloneStatus: domain.CloneUnrestricted,
		Skills:      map[string]int{"Gunnery": 3},
	}

	_, err := service.SelectFit("Vexor", "anomaly_ratting", pilot, false)

	var noFits *domain.NoEligibleFitsError
	require.ErrorAs(t, err, &noFits)
	assert.ErrorIs(t, err, domain.ErrNoEligibleFits)

	require.Len(t, noFits.Rejected, 1)
	assert.Equal(t, domain.ReasonMissingSkills, noFits.Rejected[0].Reason)
	require.Len(t, noFits.Rejected[0].MissingSkills, 2)
	assert.Equal(t, "Drones", noFits.Rejected[0].MissingSkills[0].Skill)
	assert.Equal(t, "Gunnery", noFits.Rejected[0].MissingSkills[1].Skill)
}

func TestSelectFitMissionDamageMismatch(t *testing.T) {
	profiles := map[string]*domain.MissionProfile{
		"anomaly_ratting": {
			Activity:       "anomaly_ratting",
			Intensity:      2,
			DamageToResist: []domain.DamageType{domain.DamageEM, domain.DamageExplosive},
		},
	}
	service := newTestService(t, []catalog.FitDocument{baseFitDoc()}, profiles)

	_, err := service.SelectFit("Vexor", "anomaly_ratting", skilledPilot(domain.CloneUnrestricted), true)

	var noFits *domain.NoEligibleFitsError
	require.ErrorAs(t, err, &noFits)
	require.Len(t, noFits.Rejected, 1)
	assert.Equal(t, domain.ReasonNoMissionFit, noFits.Rejected[0].Reason)
}

func TestSelectFitMissionBufferFloor(t *testing.T) {
	profiles := map[string]*domain.MissionProfile{
		"anomaly_ratting": {
			Activity:       "anomaly_ratting",
			Intensity:      2,
			DamageToResist: []domain.DamageType{domain.DamageKinetic, domain.DamageThermal},
		},
	}
	// 25,000 EHP buffer against the level-2 floor of 20,000: passes.
	service := newTestService(t, []catalog.FitDocument{baseFitDoc()}, profiles)

	report, err := service.SelectFit("Vexor", "anomaly_ratting", skilledPilot(domain.CloneUnrestricted), true)
	require.NoError(t, err)
	assert.Equal(t, "Vexor/anomaly_ratting/base", report.Result.Recommended.ID)
}

func TestSelectFitArchetypeNotFound(t *testing.T) {
	service := newTestService(t, []catalog.FitDocument{baseFitDoc()}, nil)

	_, err := service.SelectFit("Dominix", "anomaly_ratting", skilledPilot(domain.CloneUnrestricted), false)
	assert.ErrorIs(t, err, domain.ErrArchetypeNotFound)
}

func TestSelectFitMissionNotFound(t *testing.T) {
	service := newTestService(t, []catalog.FitDocument{baseFitDoc()}, nil)

	_, err := service.SelectFit("Vexor", "anomaly_ratting", skilledPilot(domain.CloneUnrestricted), true)
	assert.ErrorIs(t, err, domain.ErrMissionNotFound)
}

func TestSelectFitIdempotent(t *testing.T) {
	service := newTestService(t, []catalog.FitDocument{baseFitDoc(), optimalFitDoc()}, nil)
	pilot := skilledPilot(domain.CloneUnrestricted)

	first, err := service.SelectFit("Vexor", "anomaly_ratting", pilot, false)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := service.SelectFit("Vexor", "anomaly_ratting", pilot, false)
		require.NoError(t, err)
		assert.Equal(t, first.Result.Efficient.ID, again.Result.Efficient.ID)
		assert.Equal(t, first.Result.Premium.ID, again.Result.Premium.ID)
	}
}

func TestCheckFit(t *testing.T) {
	service := newTestService(t, []catalog.FitDocument{baseFitDoc(), optimalFitDoc()}, nil)

	result, err := service.CheckFit("Vexor/anomaly_ratting/optimal_advanced", skilledPilot(domain.CloneUnrestricted))
	require.NoError(t, err)
	assert.True(t, result.Eligible)

	result, err = service.CheckFit("Vexor/anomaly_ratting/optimal_advanced", &domain.PilotProfile{
		CloneStatus: domain.CloneUnrestricted,
		Skills:      map[string]int{"Gunnery": 4},
	})
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	assert.Equal(t, domain.ReasonMissingSkills, result.Reason)

	_, err = service.CheckFit("Vexor/anomaly_ratting/common", skilledPilot(domain.CloneUnrestricted))
	assert.ErrorIs(t, err, domain.ErrArchetypeNotFound)
}
