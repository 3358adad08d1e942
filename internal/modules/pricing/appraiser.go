package pricing

import (
	"fmt"
	"time"

	"github.com/aristath/quartermaster/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Currency is the only currency the appraiser deals in.
const Currency = "ISK"

// Appraiser values component lists against the stored price table.
// Implements domain.Appraiser.
type Appraiser struct {
	repo *Repository
	log  zerolog.Logger
}

// NewAppraiser creates a new appraiser
func NewAppraiser(repo *Repository, log zerolog.Logger) *Appraiser {
	return &Appraiser{
		repo: repo,
		log:  log.With().Str("module", "pricing").Logger(),
	}
}

// Valuate sums the stored prices for the component list. The returned
// valuation carries the oldest underlying price timestamp; deciding
// whether that is too stale is the caller's policy, not this engine's.
// An unpriced component fails the valuation rather than silently
// undervaluing the fit.
func (a *Appraiser) Valuate(components []domain.Component) (domain.Valuation, error) {
	if len(components) == 0 {
		return domain.Valuation{}, fmt.Errorf("cannot valuate an empty component list")
	}

	total := decimal.Zero
	var oldest time.Time

	for _, component := range components {
		price, err := a.repo.Get(component.TypeName)
		if err != nil {
			return domain.Valuation{}, err
		}
		if price == nil {
			return domain.Valuation{}, fmt.Errorf("no price recorded for component %q", component.TypeName)
		}

		quantity := component.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		total = total.Add(price.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))))

		if oldest.IsZero() || price.UpdatedAt.Before(oldest) {
			oldest = price.UpdatedAt
		}
	}

	return domain.Valuation{
		Total:    total,
		Currency: Currency,
		OldestAt: oldest,
	}, nil
}
