package taste

// Config holds the tunable constants of profile building. The exact weights
// are product decisions, so they are configuration, not hard-coded.
type Config struct {
	// per interaction type; DISMISS is negative so a dismissed value can
	// cancel accumulated interest
	WeightView     float64
	WeightClick    float64
	WeightFavorite float64
	WeightShare    float64
	WeightDismiss  float64

	// weight of a saved-event row (the favorites table, distinct from the
	// FAVORITE interaction)
	SavedEventWeight float64

	// multipliers applied to declared interest tags by source
	SourceManualMult  float64
	SourceSpotifyMult float64
	SourceAutoMult    float64

	// recency decay half-life in days; older interactions contribute less
	HalfLifeDays float64

	// batch rebuild settings
	RebuildConcurrency int
	ActiveWindowDays   int
}

const (
	defaultWeightView     = 0.2
	defaultWeightClick    = 0.5
	defaultWeightFavorite = 1.0
	defaultWeightShare    = 0.8
	defaultWeightDismiss  = -0.6

	defaultSavedEventWeight = 1.0

	defaultSourceManualMult  = 1.0
	defaultSourceSpotifyMult = 0.8
	defaultSourceAutoMult    = 0.5

	defaultHalfLifeDays       = 30.0
	defaultRebuildConcurrency = 4
	defaultActiveWindowDays   = 90
)

func DefaultConfig() Config {
	return Config{
		WeightView:     defaultWeightView,
		WeightClick:    defaultWeightClick,
		WeightFavorite: defaultWeightFavorite,
		WeightShare:    defaultWeightShare,
		WeightDismiss:  defaultWeightDismiss,

		SavedEventWeight: defaultSavedEventWeight,

		SourceManualMult:  defaultSourceManualMult,
		SourceSpotifyMult: defaultSourceSpotifyMult,
		SourceAutoMult:    defaultSourceAutoMult,

		HalfLifeDays:       defaultHalfLifeDays,
		RebuildConcurrency: defaultRebuildConcurrency,
		ActiveWindowDays:   defaultActiveWindowDays,
	}
}

func (c Config) interactionWeight(interactionType string) float64 {
	switch interactionType {
	case "VIEW":
		return c.WeightView
	case "CLICK":
		return c.WeightClick
	case "FAVORITE":
		return c.WeightFavorite
	case "SHARE":
		return c.WeightShare
	case "DISMISS":
		return c.WeightDismiss
	default:
		return 0
	}
}

func (c Config) sourceMultiplier(source string) float64 {
	switch source {
	case "manual":
		return c.SourceManualMult
	case "spotify":
		return c.SourceSpotifyMult
	case "auto":
		return c.SourceAutoMult
	default:
		return 0
	}
}
