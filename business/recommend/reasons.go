package recommend

import "fmt"

// reasonsFor turns the strictly positive score components into short
// advisory texts. A component that contributed nothing never gets a reason.
func reasonsFor(c components, scope string) []string {
	reasons := make([]string, 0, 3)

	if c.taste > 0 && c.topTagValue != "" {
		reasons = append(reasons, fmt.Sprintf("matches your interest in %s", c.topTagValue))
	}

	if c.trending > 0 {
		reasons = append(reasons, "popular "+scopeLabel(scope))
	}

	if c.recency > 0 {
		reasons = append(reasons, "coming up soon")
	}

	return reasons
}

func scopeLabel(scope string) string {
	switch scope {
	case ScopeToday:
		return "today"
	case ScopeWeekend:
		return "this weekend"
	default:
		return "this week"
	}
}
