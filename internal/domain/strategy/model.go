package strategy

import (
	"errors"
	"strings"
)

// Game phase constants for organizing strategies.
const (
	PhaseSettledOffense = "settled_offense"
	PhaseSettledDefense = "settled_defense"
	PhaseTransition     = "transition"
	PhaseClearing       = "clearing"
	PhaseRiding         = "riding"
	PhaseFaceOff        = "face_off"
	PhaseManUp          = "man_up"
	PhaseManDown        = "man_down"
)

// Domain errors
var (
	ErrEmptyName     = errors.New("strategy name cannot be empty")
	ErrEmptyCategory = errors.New("strategy category cannot be empty")
)

// Strategy is a catalog entry describing a team concept (e.g. a zone
// defense or a motion offense). Plans reference strategies by ID.
type Strategy struct {
	ID          string
	Name        string
	Category    string
	Description string
	VideoURL    string
	LabURLs     []string
}

// Validate checks if the Strategy has valid data.
// PRE: Strategy struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Strategy) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(s.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
