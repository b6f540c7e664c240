package domain

import "time"

// ProfileWeights maps tag category -> value -> normalized weight in [0,1].
type ProfileWeights map[string]map[string]float64

// TasteProfile is a derived per-user cache, fully reconstructible from
// interactions, favorites and interest tags. It is always overwritten as a
// whole on recompute, never patched incrementally.
type TasteProfile struct {
	UserID     string         `json:"user_id"`
	Weights    ProfileWeights `json:"weights"`
	BuiltAt    time.Time      `json:"built_at"`
	SignalRows int            `json:"signal_rows"`
}

// Weight returns the profile weight for a (category, value) pair, zero when
// the pair is unknown.
func (p *TasteProfile) Weight(category, value string) float64 {
	if p == nil || p.Weights == nil {
		return 0
	}
	values, ok := p.Weights[category]
	if !ok {
		return 0
	}
	return values[value]
}

// IsEmpty reports whether the profile carries no positive weight at all.
func (p *TasteProfile) IsEmpty() bool {
	if p == nil {
		return true
	}
	for _, values := range p.Weights {
		for _, w := range values {
			if w > 0 {
				return false
			}
		}
	}
	return true
}
