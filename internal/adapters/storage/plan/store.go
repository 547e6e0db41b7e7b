package plan

import (
	"context"
	"encoding/json"
	"time"
)

// Record is a stored practice plan row. DrillSequence is an opaque versioned
// JSON blob owned by the persistence gateway; it must round-trip losslessly.
type Record struct {
	ID              string
	TeamID          string
	Title           string
	PracticeDate    string // YYYY-MM-DD
	DurationMinutes int
	Notes           string
	DrillSequence   json.RawMessage
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Store persists practice plan records.
type Store interface {
	GetByID(ctx context.Context, id string) (Record, error)
	Save(ctx context.Context, value Record) error
	Delete(ctx context.Context, id string) error
	ListByTeamID(ctx context.Context, teamID string) ([]Record, error)
}
