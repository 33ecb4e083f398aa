package excitement

import (
	"time"

	"github.com/riskibarqy/excitement-engine/internal/domain/livedata"
)

const (
	// DefaultElapsedMinutes is assumed when the provider gives no usable clock.
	DefaultElapsedMinutes = 45
	halfLengthMinutes     = 45
)

// ElapsedMinutes prefers the provider's own minute, then the period start time. It reports
// false when neither is known and the default was used.
func ElapsedMinutes(info livedata.EventInfo, now time.Time) (int, bool) {
	if info.Elapsed != nil {
		return clampMinute(*info.Elapsed), true
	}

	if !info.PeriodStartedAt.IsZero() {
		minutes := int(now.Sub(info.PeriodStartedAt).Minutes())
		if minutes < 0 {
			minutes = 0
		}
		if info.Period == 2 {
			minutes += halfLengthMinutes
		}
		return clampMinute(minutes), true
	}

	return DefaultElapsedMinutes, false
}
