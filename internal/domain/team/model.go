package team

import (
	"fmt"
	"time"
)

// Team is a club known to the engine, keyed by an internal id.
type Team struct {
	ID             string
	Name           string
	ShortName      string
	NormalizedName string
	CreatedAt      time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
