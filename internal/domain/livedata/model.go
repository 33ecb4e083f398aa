// Package livedata holds the shapes a live-data provider reports about in-play events.
package livedata

import "time"

// ExternalEvent is a provider's view of one live fixture.
type ExternalEvent struct {
	ID            string
	HomeTeam      string
	AwayTeam      string
	HomeShortName string
	AwayShortName string
	StartAt       time.Time
}

// EventInfo is the provider's current state of an event.
type EventInfo struct {
	ID              string
	HomeGoals       int
	AwayGoals       int
	Status          string
	Period          int
	Elapsed         *int
	PeriodStartedAt time.Time
}

type SideStatistics struct {
	XG          float64
	Fouls       int
	YellowCards int
	RedCards    int
	Possession  float64
	BigChances  int
}

// Statistics are the in-match numbers for both sides.
type Statistics struct {
	Home SideStatistics
	Away SideStatistics
}
