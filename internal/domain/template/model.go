package template

import (
	"errors"
	"strings"
	"time"

	"laxhq/internal/domain/plan"
)

// Age group constants
const (
	AgeGroup8to10  = "8-10"
	AgeGroup11to14 = "11-14"
	AgeGroup15Plus = "15+"
	AgeGroupAll    = "all"
)

// ValidAgeGroups contains all valid age group values.
var ValidAgeGroups = []string{AgeGroup8to10, AgeGroup11to14, AgeGroup15Plus, AgeGroupAll}

// Domain errors
var (
	ErrEmptyName       = errors.New("template name cannot be empty")
	ErrInvalidAgeGroup = errors.New("age group must be one of: 8-10, 11-14, 15+, all")
	ErrZeroDuration    = errors.New("template duration must be greater than zero")
)

// Template is a reusable practice outline. Applying a template replaces the
// editor's slots, duration and notes; it never touches practice metadata.
type Template struct {
	ID              string
	Name            string
	Description     string
	AgeGroup        string
	DurationMinutes int
	TimeSlots       []plan.TimeSlot
	Notes           string
	Official        bool
	CreatedBy       string
	CreatedAt       time.Time
}

// Validate checks if the Template has valid data.
// PRE: Template struct is populated
// POST: Returns nil if valid, error otherwise
func (t *Template) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if !isValidAgeGroup(t.AgeGroup) {
		return ErrInvalidAgeGroup
	}
	if t.DurationMinutes <= 0 {
		return ErrZeroDuration
	}
	return nil
}

func isValidAgeGroup(ageGroup string) bool {
	for _, g := range ValidAgeGroups {
		if g == ageGroup {
			return true
		}
	}
	return false
}
