package missions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aristath/quartermaster/internal/domain"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// missionDocument is the on-disk form of one knowledge base file.
// A file may hold multiple activities.
type missionDocument struct {
	Missions []missionEntry `yaml:"missions"`
}

type missionEntry struct {
	Activity       string   `yaml:"activity"`
	Intensity      int      `yaml:"intensity"`
	DamageToResist []string `yaml:"damage_to_resist"`
	DamageToDeal   []string `yaml:"damage_to_deal"`
}

// Repository is the read-only mission knowledge base, loaded from YAML
// documents at startup. Lookup values are copied so callers can never
// mutate the shared profile.
type Repository struct {
	mu       sync.RWMutex
	profiles map[string]domain.MissionProfile
	log      zerolog.Logger
}

// NewRepository creates an empty mission repository.
func NewRepository(log zerolog.Logger) *Repository {
	return &Repository{
		profiles: make(map[string]domain.MissionProfile),
		log:      log.With().Str("repo", "missions").Logger(),
	}
}

// LoadDir reads every YAML document in dir into the knowledge base.
// Replaces the previous contents wholesale.
func (r *Repository) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read missions directory: %w", err)
	}

	profiles := make(map[string]domain.MissionProfile)
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := loadFile(path, profiles); err != nil {
			return err
		}
	}

	r.mu.Lock()
	r.profiles = profiles
	r.mu.Unlock()

	r.log.Info().Int("activities", len(profiles)).Msg("Mission knowledge base loaded")
	return nil
}

func loadFile(path string, profiles map[string]domain.MissionProfile) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read mission document %s: %w", path, err)
	}

	var doc missionDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse mission document %s: %w", path, err)
	}

	for _, entry := range doc.Missions {
		if entry.Activity == "" {
			return fmt.Errorf("mission document %s: entry without activity identifier", path)
		}
		if entry.Intensity < 1 || entry.Intensity > 4 {
			return fmt.Errorf("mission document %s: activity %q has intensity %d outside 1-4",
				path, entry.Activity, entry.Intensity)
		}

		toResist, err := parseDamageTypes(entry.DamageToResist)
		if err != nil {
			return fmt.Errorf("mission document %s: activity %q: %w", path, entry.Activity, err)
		}
		toDeal, err := parseDamageTypes(entry.DamageToDeal)
		if err != nil {
			return fmt.Errorf("mission document %s: activity %q: %w", path, entry.Activity, err)
		}

		profiles[entry.Activity] = domain.MissionProfile{
			Activity:       entry.Activity,
			Intensity:      entry.Intensity,
			DamageToResist: toResist,
			DamageToDeal:   toDeal,
		}
	}
	return nil
}

func parseDamageTypes(names []string) ([]domain.DamageType, error) {
	known := map[string]domain.DamageType{}
	for _, dt := range domain.AllDamageTypes() {
		known[string(dt)] = dt
	}

	var parsed []domain.DamageType
	for _, name := range names {
		dt, ok := known[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown damage type %q", name)
		}
		parsed = append(parsed, dt)
	}
	return parsed, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Lookup returns the mission profile for an activity, or
// domain.ErrMissionNotFound. The returned profile is a copy.
func (r *Repository) Lookup(activity string) (*domain.MissionProfile, error) {
	r.mu.RLock()
	profile, ok := r.profiles[activity]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("activity %q: %w", activity, domain.ErrMissionNotFound)
	}

	// Copy the slices so the knowledge base stays immutable.
	copied := profile
	copied.DamageToResist = append([]domain.DamageType(nil), profile.DamageToResist...)
	copied.DamageToDeal = append([]domain.DamageType(nil), profile.DamageToDeal...)
	return &copied, nil
}

// Activities returns the known activity identifiers, for the API.
func (r *Repository) Activities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activities := make([]string, 0, len(r.profiles))
	for activity := range r.profiles {
		activities = append(activities, activity)
	}
	return activities
}
