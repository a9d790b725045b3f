package journal

import "time"

// Market session labels assigned to a trade's entry time.
const (
	SessionNY     = "NY"
	SessionLondon = "London"
	SessionAsia   = "Asia"
)

// ClassifySession buckets a timestamp into a market session by hour of day
// in loc. Hours [8,17) are NY, [2,8) London, everything else (including the
// 17:00-18:00 gap) Asia. The table is fixed; loc is explicit so callers and
// tests are not at the mercy of the host timezone.
func ClassifySession(ts time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	hour := ts.In(loc).Hour()
	switch {
	case hour >= 8 && hour < 17:
		return SessionNY
	case hour >= 2 && hour < 8:
		return SessionLondon
	default:
		return SessionAsia
	}
}
