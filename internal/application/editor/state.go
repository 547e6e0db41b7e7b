package editor

import (
	"encoding/json"
	"fmt"
	"time"

	"laxhq/internal/domain/plan"
)

// StateVersion is the current autosave snapshot format version.
const StateVersion = 1

// state is the serialized form of an editor session, written wholesale on
// every autosave and read once on session open.
type state struct {
	Version       int             `json:"version"`
	Info          stateInfo       `json:"practiceInfo"`
	Goals         stateGoals      `json:"practiceGoals"`
	SetupMinutes  int             `json:"setupTime,omitempty"`
	SetupNotes    []string        `json:"setupNotes,omitempty"`
	PracticeNotes string          `json:"practiceNotes,omitempty"`
	TimeSlots     []stateSlot     `json:"timeSlots"`
	Strategies    []stateStrategy `json:"selectedStrategies,omitempty"`
}

type stateInfo struct {
	Name            string `json:"name,omitempty"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	Field           string `json:"field"`
	DurationMinutes int    `json:"duration"`
}

type stateGoals struct {
	Coaching  string `json:"coaching,omitempty"`
	Offensive string `json:"offensive,omitempty"`
	Defensive string `json:"defensive,omitempty"`
	Goalie    string `json:"goalie,omitempty"`
	FaceOff   string `json:"faceoff,omitempty"`
}

type stateSlot struct {
	ID              string       `json:"id"`
	Drills          []stateDrill `json:"drills"`
	DurationMinutes int          `json:"duration"`
}

type stateDrill struct {
	PracticeID     string   `json:"practiceId"`
	DrillID        string   `json:"drillId"`
	Title          string   `json:"title"`
	Category       string   `json:"category,omitempty"`
	Description    string   `json:"description,omitempty"`
	CustomDuration int      `json:"customDuration"`
	Notes          string   `json:"notes,omitempty"`
	VideoURL       string   `json:"videoUrl,omitempty"`
	LabURLs        []string `json:"labUrls,omitempty"`
}

type stateStrategy struct {
	StrategyID string `json:"strategyId"`
	Name       string `json:"name"`
	Category   string `json:"category,omitempty"`
	VideoURL   string `json:"videoUrl,omitempty"`
}

// EncodeState serializes a plan into the versioned snapshot format.
func EncodeState(p plan.Plan) ([]byte, error) {
	s := state{
		Version: StateVersion,
		Info: stateInfo{
			Name:            p.Info.Name,
			Date:            p.Info.Date,
			StartTime:       p.Info.StartTime,
			Field:           p.Info.Field,
			DurationMinutes: p.Info.DurationMinutes,
		},
		Goals: stateGoals{
			Coaching:  p.Goals.Coaching,
			Offensive: p.Goals.Offensive,
			Defensive: p.Goals.Defensive,
			Goalie:    p.Goals.Goalie,
			FaceOff:   p.Goals.FaceOff,
		},
		SetupMinutes:  p.SetupMinutes,
		SetupNotes:    p.SetupNotes,
		PracticeNotes: p.PracticeNotes,
		TimeSlots:     make([]stateSlot, 0, len(p.TimeSlots)),
	}
	for _, slot := range p.TimeSlots {
		out := stateSlot{ID: slot.ID, DurationMinutes: slot.DurationMinutes, Drills: make([]stateDrill, 0, len(slot.Drills))}
		for _, d := range slot.Drills {
			out.Drills = append(out.Drills, stateDrill{
				PracticeID:     d.PracticeID,
				DrillID:        d.DrillID,
				Title:          d.Title,
				Category:       d.Category,
				Description:    d.Description,
				CustomDuration: d.CustomDuration,
				Notes:          d.Notes,
				VideoURL:       d.VideoURL,
				LabURLs:        d.LabURLs,
			})
		}
		s.TimeSlots = append(s.TimeSlots, out)
	}
	for _, sel := range p.Strategies {
		s.Strategies = append(s.Strategies, stateStrategy{
			StrategyID: sel.StrategyID,
			Name:       sel.Name,
			Category:   sel.Category,
			VideoURL:   sel.VideoURL,
		})
	}
	return json.Marshal(s)
}

// DecodeState parses a snapshot back into a plan. Missing optional fields
// fall back to editor defaults so older or partial snapshots still load.
// POST: Returns an error only for malformed JSON or an unknown version
func DecodeState(data []byte, today time.Time) (plan.Plan, error) {
	var s state
	if err := json.Unmarshal(data, &s); err != nil {
		return plan.Plan{}, fmt.Errorf("decoding editor state: %w", err)
	}
	if s.Version > StateVersion {
		return plan.Plan{}, fmt.Errorf("editor state version %d not supported", s.Version)
	}

	p := plan.NewPlan(today)
	if s.Info.Name != "" {
		p.Info.Name = s.Info.Name
	}
	if s.Info.Date != "" {
		p.Info.Date = s.Info.Date
	}
	if s.Info.StartTime != "" {
		p.Info.StartTime = s.Info.StartTime
	}
	if s.Info.Field != "" {
		p.Info.Field = s.Info.Field
	}
	if s.Info.DurationMinutes > 0 {
		p.Info.DurationMinutes = s.Info.DurationMinutes
	}
	p.Goals = plan.Goals{
		Coaching:  s.Goals.Coaching,
		Offensive: s.Goals.Offensive,
		Defensive: s.Goals.Defensive,
		Goalie:    s.Goals.Goalie,
		FaceOff:   s.Goals.FaceOff,
	}
	p.SetupMinutes = s.SetupMinutes
	p.SetupNotes = s.SetupNotes
	p.PracticeNotes = s.PracticeNotes
	for _, slot := range s.TimeSlots {
		out := plan.TimeSlot{ID: slot.ID, DurationMinutes: slot.DurationMinutes}
		for _, d := range slot.Drills {
			out.Drills = append(out.Drills, plan.DrillInstance{
				PracticeID:     d.PracticeID,
				DrillID:        d.DrillID,
				Title:          d.Title,
				Category:       d.Category,
				Description:    d.Description,
				CustomDuration: d.CustomDuration,
				Notes:          d.Notes,
				VideoURL:       d.VideoURL,
				LabURLs:        d.LabURLs,
			})
		}
		if len(out.Drills) == 0 {
			continue
		}
		if out.DurationMinutes <= 0 {
			out.RecalcDuration()
		}
		p.TimeSlots = append(p.TimeSlots, out)
	}
	for _, sel := range s.Strategies {
		p.Strategies = append(p.Strategies, plan.SelectedStrategy{
			StrategyID: sel.StrategyID,
			Name:       sel.Name,
			Category:   sel.Category,
			VideoURL:   sel.VideoURL,
		})
	}
	return p, nil
}
