package selection

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/quartermaster/internal/domain"
	"github.com/aristath/quartermaster/internal/events"
	"github.com/aristath/quartermaster/internal/modules/catalog"
	"github.com/aristath/quartermaster/internal/modules/eligibility"
	"github.com/aristath/quartermaster/internal/modules/missions"
)

// Report is the full outcome of one selection call: the result shape
// plus every candidate that was filtered out and why. The rejections are
// the explanation layer; callers surface them when nothing survived or
// when the pilot wants to know what a pair excluded.
type Report struct {
	ID        string                  `json:"id"`
	Hull      string                  `json:"hull"`
	Activity  string                  `json:"activity"`
	Mission   *domain.MissionProfile  `json:"mission,omitempty"`
	Result    *domain.SelectionResult `json:"result"`
	Rejected  []domain.RejectedFit    `json:"rejected,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
}

// Service drives the selection pipeline: catalog lookup, clone/skill
// eligibility, optional mission matching, then ranking. Selection is a
// pure read over the current catalog snapshot; concurrent calls share
// nothing mutable.
type Service struct {
	catalog  *catalog.Repository
	checker  *eligibility.Checker
	missions domain.MissionSource
	matcher  *missions.Matcher
	ranker   *Ranker
	bus      *events.Bus
	log      zerolog.Logger
}

// NewService creates the selection service.
func NewService(
	catalogRepo *catalog.Repository,
	checker *eligibility.Checker,
	missionSource domain.MissionSource,
	matcher *missions.Matcher,
	ranker *Ranker,
	bus *events.Bus,
	log zerolog.Logger,
) *Service {
	return &Service{
		catalog:  catalogRepo,
		checker:  checker,
		missions: missionSource,
		matcher:  matcher,
		ranker:   ranker,
		bus:      bus,
		log:      log.With().Str("module", "selection").Logger(),
	}
}

// SelectFit picks the best fit(s) for a (hull, activity) pair and pilot.
// When withMission is set, the activity's combat profile is looked up and
// eligible fits additionally pass the mission matcher.
//
// Errors: domain.ErrArchetypeNotFound when the catalog has no such pair,
// domain.ErrMissionNotFound when withMission names an unknown activity,
// and *domain.NoEligibleFitsError when candidates existed but none
// survived filtering.
func (s *Service) SelectFit(hull, activity string, pilot *domain.PilotProfile, withMission bool) (*Report, error) {
	fits, err := s.catalog.FitsFor(hull, activity)
	if err != nil {
		return nil, err
	}

	var mission *domain.MissionProfile
	if withMission {
		mission, err = s.missions.Lookup(activity)
		if err != nil {
			return nil, err
		}
	}

	var candidates []*domain.Fit
	var rejected []domain.RejectedFit

	for _, fit := range fits {
		check, err := s.checker.Check(fit, pilot)
		if err != nil {
			return nil, err
		}
		if !check.Eligible {
			rejected = append(rejected, domain.RejectedFit{
				FitID:         fit.ID,
				Reason:        check.Reason,
				MissingSkills: check.MissingSkills,
			})
			continue
		}

		if mission != nil {
			match := s.matcher.Match(fit, mission)
			if !match.Matches {
				rejected = append(rejected, domain.RejectedFit{
					FitID:  fit.ID,
					Reason: domain.ReasonNoMissionFit,
				})
				continue
			}
		}

		candidates = append(candidates, fit)
	}

	if len(candidates) == 0 {
		return nil, &domain.NoEligibleFitsError{
			Hull:     hull,
			Activity: activity,
			Rejected: rejected,
		}
	}

	result, err := s.ranker.Select(candidates)
	if err != nil {
		return nil, err
	}

	report := &Report{
		ID:        uuid.New().String(),
		Hull:      hull,
		Activity:  activity,
		Mission:   mission,
		Result:    result,
		Rejected:  rejected,
		CreatedAt: time.Now().UTC(),
	}

	s.log.Info().
		Str("report", report.ID).
		Str("hull", hull).
		Str("activity", activity).
		Bool("mission", mission != nil).
		Bool("pair", result.IsPair()).
		Int("rejected", len(rejected)).
		Msg("Selection completed")

	s.bus.Emit(events.SelectionCompleted, "selection", map[string]interface{}{
		"report_id": report.ID,
		"hull":      hull,
		"activity":  activity,
		"pair":      result.IsPair(),
		"rejected":  len(rejected),
	})

	return report, nil
}

// CheckFit reports a single fit's eligibility for a pilot. Ineligibility
// is a normal result here, never an error.
func (s *Service) CheckFit(fitID string, pilot *domain.PilotProfile) (domain.EligibilityResult, error) {
	fit, err := s.catalog.FitByID(fitID)
	if err != nil {
		return domain.EligibilityResult{}, err
	}
	return s.checker.Check(fit, pilot)
}
