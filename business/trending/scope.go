package trending

import "time"

// Scope is a rolling time-window filter for popularity ranking.
const (
	ScopeToday   = "today"
	ScopeWeekend = "weekend"
	ScopeWeek    = "week"
)

func ValidScope(scope string) bool {
	switch scope {
	case ScopeToday, ScopeWeekend, ScopeWeek:
		return true
	}
	return false
}

// InteractionWindowStart returns the start of the trailing window whose
// interactions count toward the given scope.
func InteractionWindowStart(scope string, now time.Time) time.Time {
	switch scope {
	case ScopeToday:
		return now.Add(-24 * time.Hour)
	case ScopeWeekend:
		return now.Add(-72 * time.Hour)
	default:
		return now.Add(-7 * 24 * time.Hour)
	}
}

// EventWindow returns the start-time range an event must fall into to belong
// to the scope: today is the rest of the day, weekend the upcoming
// Friday-through-Sunday, week the next seven days.
func EventWindow(scope string, now time.Time) (time.Time, time.Time) {
	switch scope {
	case ScopeToday:
		endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
		return now, endOfDay
	case ScopeWeekend:
		return weekendWindow(now)
	default:
		return now, now.Add(7 * 24 * time.Hour)
	}
}

func weekendWindow(now time.Time) (time.Time, time.Time) {
	daysUntilFriday := (int(time.Friday) - int(now.Weekday()) + 7) % 7
	// already inside the weekend: keep the running one
	if now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		daysUntilFriday = 0
	}

	friday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, daysUntilFriday)

	daysUntilSundayEnd := (int(time.Sunday) - int(friday.Weekday()) + 7) % 7
	sundayEnd := friday.AddDate(0, 0, daysUntilSundayEnd+1)

	from := friday
	if now.After(friday) {
		from = now
	}

	return from, sundayEnd
}
