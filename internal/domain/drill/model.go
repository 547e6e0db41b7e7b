package drill

import (
	"errors"
	"strings"
)

// Category constants for the built-in drill catalog.
const (
	CategoryAdminOps   = "Admin"
	CategorySkill      = "Skill Drills"
	CategoryOffense    = "Offense"
	CategoryDefense    = "Defense"
	CategoryTransition = "Transition"
	CategoryFaceOff    = "Face-Off"
	CategoryGoalie     = "Goalie"
	CategoryWallBall   = "Wall Ball"
	CategoryConditions = "Conditioning"
)

// DefaultDurationMinutes is used when a catalog drill carries no duration.
const DefaultDurationMinutes = 10

// Domain errors
var (
	ErrEmptyTitle       = errors.New("drill title cannot be empty")
	ErrEmptyCategory    = errors.New("drill category cannot be empty")
	ErrNegativeDuration = errors.New("drill duration cannot be negative")
)

// Drill is a catalog entry. The practice planner only ever copies it;
// plans never mutate the catalog.
type Drill struct {
	ID              string
	Title           string
	Category        string
	Description     string
	DurationMinutes int
	VideoURL        string
	LabURLs         []string
}

// Validate checks if the Drill has valid data.
// PRE: Drill struct is populated
// POST: Returns nil if valid, error otherwise
func (d *Drill) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(d.Category) == "" {
		return ErrEmptyCategory
	}
	if d.DurationMinutes < 0 {
		return ErrNegativeDuration
	}
	return nil
}

// EffectiveDuration returns the drill's duration, falling back to the
// catalog default when none is set.
// INVARIANT: Drill fields are not mutated
func (d *Drill) EffectiveDuration() int {
	if d.DurationMinutes <= 0 {
		return DefaultDurationMinutes
	}
	return d.DurationMinutes
}
