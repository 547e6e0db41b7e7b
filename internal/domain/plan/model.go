package plan

import (
	"errors"
	"strings"
	"time"
)

// Field constants
const (
	FieldTurf  = "Turf"
	FieldGrass = "Grass"
	FieldBox   = "Box"
	FieldWall  = "Wall"
)

// ValidFields contains all valid field values.
var ValidFields = []string{FieldTurf, FieldGrass, FieldBox, FieldWall}

// Defaults applied when an editor session opens with no saved state.
const (
	DefaultStartTime       = "18:00"
	DefaultField           = FieldTurf
	DefaultDurationMinutes = 90
	DefaultSetupMinutes    = 15
)

// Domain errors
var (
	ErrEmptyStartTime = errors.New("start time cannot be empty")
	ErrInvalidField   = errors.New("field must be one of: Turf, Grass, Box, Wall")
	ErrEmptyDate      = errors.New("practice date cannot be empty")
)

// Info holds the practice metadata edited through the info form.
type Info struct {
	Name            string
	Date            string // YYYY-MM-DD
	StartTime       string // HH:MM
	Field           string
	DurationMinutes int
}

// Goals holds free-text coaching goals per category.
type Goals struct {
	Coaching  string
	Offensive string
	Defensive string
	Goalie    string
	FaceOff   string
}

// DrillInstance is a catalog drill copied into a plan. It carries its own
// duration and notes independent of the catalog original.
// INVARIANT: PracticeID is unique within one plan and never reused after removal.
type DrillInstance struct {
	PracticeID     string
	DrillID        string
	Title          string
	Category       string
	Description    string
	CustomDuration int
	Notes          string
	VideoURL       string
	LabURLs        []string
}

// TimeSlot is one timeline position holding one or more parallel drill
// instances. Sequence order is the authoritative timeline order.
type TimeSlot struct {
	ID              string
	Drills          []DrillInstance
	DurationMinutes int
}

// RecalcDuration sets the slot duration to the longest of its parallel drills.
// PRE: slot holds at least one drill
// POST: DurationMinutes equals the max drill duration
func (s *TimeSlot) RecalcDuration() {
	max := 0
	for _, d := range s.Drills {
		if d.CustomDuration > max {
			max = d.CustomDuration
		}
	}
	s.DurationMinutes = max
}

// SelectedStrategy is a denormalized strategy reference marked active for a plan.
type SelectedStrategy struct {
	StrategyID string
	Name       string
	Category   string
	VideoURL   string
}

// Plan is the full practice plan document: metadata, goals, setup, an
// ordered drill timeline and the active strategy set.
type Plan struct {
	Info          Info
	Goals         Goals
	SetupMinutes  int
	SetupNotes    []string
	PracticeNotes string
	TimeSlots     []TimeSlot
	Strategies    []SelectedStrategy
}

// NewPlan returns a plan populated with editor defaults for the given date.
func NewPlan(today time.Time) Plan {
	return Plan{
		Info: Info{
			Date:            today.Format("2006-01-02"),
			StartTime:       DefaultStartTime,
			Field:           DefaultField,
			DurationMinutes: DefaultDurationMinutes,
		},
	}
}

// Validate checks if the plan metadata has valid data.
// PRE: Plan struct is populated
// POST: Returns nil if valid, error otherwise
func (i *Info) Validate() error {
	if strings.TrimSpace(i.Date) == "" {
		return ErrEmptyDate
	}
	if strings.TrimSpace(i.StartTime) == "" {
		return ErrEmptyStartTime
	}
	if !isValidField(i.Field) {
		return ErrInvalidField
	}
	return nil
}

// UsedMinutes returns the sum of all slot durations plus setup time.
// INVARIANT: Plan fields are not mutated
func (p *Plan) UsedMinutes() int {
	total := p.SetupMinutes
	for _, s := range p.TimeSlots {
		total += coerceMinutes(s.DurationMinutes)
	}
	return total
}

// OverAllotted reports whether the used duration exceeds the allotted
// practice length. Surfaced as a warning, never enforced.
// INVARIANT: Plan fields are not mutated
func (p *Plan) OverAllotted() bool {
	return p.UsedMinutes() > p.Info.DurationMinutes
}

// HasStrategy reports whether a strategy is in the active set.
// INVARIANT: Plan fields are not mutated
func (p *Plan) HasStrategy(strategyID string) bool {
	for _, s := range p.Strategies {
		if s.StrategyID == strategyID {
			return true
		}
	}
	return false
}

func isValidField(field string) bool {
	for _, f := range ValidFields {
		if f == field {
			return true
		}
	}
	return false
}
