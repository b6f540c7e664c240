package taste

import (
	"math"
	"time"

	"pulseMontreal/domain"
)

// decayFactor discounts a signal by its age: exp(-ln2 * age / halfLife).
// Monotonically decreasing in age, 1.0 for a fresh signal.
func decayFactor(age time.Duration, halfLifeDays float64) float64 {
	if halfLifeDays <= 0 {
		return 1.0
	}
	if age < 0 {
		age = 0
	}

	ageDays := age.Hours() / 24
	return math.Exp(-math.Ln2 * ageDays / halfLifeDays)
}

// buildWeights aggregates the raw signals into normalized (category, value)
// weights. Pure function of its inputs plus the reference time, so
// recomputing with unchanged inputs yields an identical mapping.
func buildWeights(
	cfg Config,
	now time.Time,
	interactions []domain.UserEventInteraction,
	favorites []domain.Favorite,
	interestTags []domain.UserInterestTag,
	tagsByEvent map[string][]domain.EventTag,
) domain.ProfileWeights {

	raw := make(map[string]map[string]float64)

	accumulate := func(category, value string, w float64) {
		values, ok := raw[category]
		if !ok {
			values = make(map[string]float64)
			raw[category] = values
		}
		values[value] += w
	}

	for _, interaction := range interactions {
		w := cfg.interactionWeight(interaction.Type)
		if w == 0 {
			continue
		}
		w *= decayFactor(now.Sub(interaction.OccurredAt), cfg.HalfLifeDays)

		for _, tag := range tagsByEvent[interaction.EventID] {
			accumulate(tag.Category, tag.Value, w)
		}
	}

	for _, favorite := range favorites {
		w := cfg.SavedEventWeight * decayFactor(now.Sub(favorite.CreatedAt), cfg.HalfLifeDays)
		for _, tag := range tagsByEvent[favorite.EventID] {
			accumulate(tag.Category, tag.Value, w)
		}
	}

	// declared interests carry no recency decay; they hold until changed
	for _, tag := range interestTags {
		w := tag.Score * cfg.sourceMultiplier(tag.Source)
		if w != 0 {
			accumulate(tag.Category, tag.Value, w)
		}
	}

	return normalize(raw)
}

// normalize scales positive weights into [0,1] by the maximum and clamps
// net-negative values (dismissed interests) to zero.
func normalize(raw map[string]map[string]float64) domain.ProfileWeights {
	maxWeight := 0.0
	for _, values := range raw {
		for _, w := range values {
			if w > maxWeight {
				maxWeight = w
			}
		}
	}

	out := make(domain.ProfileWeights, len(raw))
	for category, values := range raw {
		outValues := make(map[string]float64, len(values))
		for value, w := range values {
			if w <= 0 {
				outValues[value] = 0
				continue
			}
			if maxWeight > 0 {
				outValues[value] = w / maxWeight
			}
		}
		out[category] = outValues
	}

	return out
}
