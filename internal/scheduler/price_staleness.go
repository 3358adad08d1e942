package scheduler

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/quartermaster/internal/events"
	"github.com/aristath/quartermaster/internal/modules/pricing"
)

// PriceStalenessJob sweeps the component price table and reports entries
// older than the configured window. Stale prices never block selection;
// the sweep only surfaces them so the curation side knows what to
// refresh.
type PriceStalenessJob struct {
	prices *pricing.Repository
	bus    *events.Bus
	window time.Duration
	log    zerolog.Logger
}

// NewPriceStalenessJob creates the price staleness sweep job.
func NewPriceStalenessJob(prices *pricing.Repository, bus *events.Bus, window time.Duration, log zerolog.Logger) *PriceStalenessJob {
	return &PriceStalenessJob{
		prices: prices,
		bus:    bus,
		window: window,
		log:    log.With().Str("job", "price_staleness").Logger(),
	}
}

// Name returns the job name
func (j *PriceStalenessJob) Name() string {
	return "price_staleness"
}

// Run sweeps for stale component prices
func (j *PriceStalenessJob) Run() error {
	stale, err := j.prices.StaleComponents(j.window, time.Now().UTC())
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	names := make([]string, 0, len(stale))
	for _, component := range stale {
		names = append(names, component.TypeName)
	}

	j.log.Warn().
		Int("count", len(stale)).
		Str("oldest", stale[0].UpdatedAt.Format(time.RFC3339)).
		Msg("Component prices exceed the staleness window")

	j.bus.Emit(events.PricesStale, "pricing", map[string]interface{}{
		"count":      len(stale),
		"components": names,
		"oldest_at":  stale[0].UpdatedAt,
		"window":     j.window.String(),
	})
	return nil
}
