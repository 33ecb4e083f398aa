package livescore

import (
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/excitement-engine/internal/domain/livedata"
)

type teamPayload struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

type eventPayload struct {
	ID        any         `json:"id"`
	HomeTeam  teamPayload `json:"home_team"`
	AwayTeam  teamPayload `json:"away_team"`
	StartTime any         `json:"start_time"`
}

type liveEventsEnvelope struct {
	Events []eventPayload `json:"events"`
}

type eventInfoPayload struct {
	ID              any    `json:"id"`
	HomeScore       int    `json:"home_score"`
	AwayScore       int    `json:"away_score"`
	Status          string `json:"status"`
	Period          int    `json:"period"`
	Elapsed         *int   `json:"elapsed"`
	PeriodStartedAt any    `json:"period_started_at"`
}

type eventInfoEnvelope struct {
	Event eventInfoPayload `json:"event"`
}

type statisticPayload struct {
	Name string `json:"name"`
	Home any    `json:"home"`
	Away any    `json:"away"`
}

type statisticsEnvelope struct {
	Statistics []statisticPayload `json:"statistics"`
}

func (p eventPayload) toDomain() livedata.ExternalEvent {
	return livedata.ExternalEvent{
		ID:            idString(p.ID),
		HomeTeam:      strings.TrimSpace(p.HomeTeam.Name),
		AwayTeam:      strings.TrimSpace(p.AwayTeam.Name),
		HomeShortName: strings.TrimSpace(p.HomeTeam.ShortName),
		AwayShortName: strings.TrimSpace(p.AwayTeam.ShortName),
		StartAt:       parseProviderTime(p.StartTime),
	}
}

func (p eventInfoPayload) toDomain() livedata.EventInfo {
	return livedata.EventInfo{
		ID:              idString(p.ID),
		HomeGoals:       p.HomeScore,
		AwayGoals:       p.AwayScore,
		Status:          strings.ToUpper(strings.TrimSpace(p.Status)),
		Period:          p.Period,
		Elapsed:         p.Elapsed,
		PeriodStartedAt: parseProviderTime(p.PeriodStartedAt),
	}
}

// statisticSetters maps the provider's statistic names onto both sides of the domain shape.
var statisticSetters = map[string]func(side *livedata.SideStatistics, value float64){
	"expected_goals":  func(s *livedata.SideStatistics, v float64) { s.XG = v },
	"xg":              func(s *livedata.SideStatistics, v float64) { s.XG = v },
	"fouls":           func(s *livedata.SideStatistics, v float64) { s.Fouls = int(v) },
	"yellow_cards":    func(s *livedata.SideStatistics, v float64) { s.YellowCards = int(v) },
	"red_cards":       func(s *livedata.SideStatistics, v float64) { s.RedCards = int(v) },
	"ball_possession": func(s *livedata.SideStatistics, v float64) { s.Possession = v },
	"possession":      func(s *livedata.SideStatistics, v float64) { s.Possession = v },
	"big_chances":     func(s *livedata.SideStatistics, v float64) { s.BigChances = int(v) },
}

// toDomain reports false when the provider sent no usable statistic.
func (e statisticsEnvelope) toDomain() (livedata.Statistics, bool) {
	var out livedata.Statistics
	matched := 0
	for _, item := range e.Statistics {
		name := strings.ToLower(strings.TrimSpace(item.Name))
		name = strings.ReplaceAll(name, " ", "_")
		set, ok := statisticSetters[name]
		if !ok {
			continue
		}
		set(&out.Home, numericValue(item.Home))
		set(&out.Away, numericValue(item.Away))
		matched++
	}
	return out, matched > 0
}

func idString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

func numericValue(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "%"), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// parseProviderTime accepts RFC 3339, "2006-01-02 15:04:05" and unix seconds.
func parseProviderTime(value any) time.Time {
	switch v := value.(type) {
	case float64:
		if v <= 0 {
			return time.Time{}
		}
		return time.Unix(int64(v), 0).UTC()
	case string:
		raw := strings.TrimSpace(v)
		if raw == "" {
			return time.Time{}
		}
		if unix, err := strconv.ParseInt(raw, 10, 64); err == nil && unix > 0 {
			return time.Unix(unix, 0).UTC()
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, raw); err == nil {
				return parsed.UTC()
			}
		}
	}
	return time.Time{}
}
