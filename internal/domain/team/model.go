package team

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyName = errors.New("team name cannot be empty")
)

// Team groups accounts and practice plans. Editor sessions and autosave
// snapshots are keyed by team.
type Team struct {
	ID       string
	Name     string
	AgeGroup string
}

// Validate checks if the Team has valid data.
// PRE: Team struct is populated
// POST: Returns nil if valid, error otherwise
func (t *Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
