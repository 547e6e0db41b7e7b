package orchestrators

import (
	"encoding/json"
	"fmt"

	"laxhq/internal/domain/plan"
)

// SequenceVersion is the current drill_sequence blob format version.
const SequenceVersion = 1

// drillSequence is the versioned JSON blob stored in a plan record's
// drill_sequence column. Title, date, allotted duration and notes live in
// their own columns; everything else about the plan lives here.
type drillSequence struct {
	Version    int                `json:"version"`
	Info       sequenceInfo       `json:"practiceInfo"`
	Goals      sequenceGoals      `json:"practiceGoals,omitempty"`
	SetupNotes []string           `json:"setupNotes,omitempty"`
	TimeSlots  []sequenceSlot     `json:"timeSlots"`
	Strategies []sequenceStrategy `json:"selectedStrategies,omitempty"`
}

type sequenceInfo struct {
	StartTime    string `json:"startTime"`
	SetupMinutes int    `json:"setupTime,omitempty"`
	Field        string `json:"field"`
}

type sequenceGoals struct {
	Coaching  string `json:"coaching,omitempty"`
	Offensive string `json:"offensive,omitempty"`
	Defensive string `json:"defensive,omitempty"`
	Goalie    string `json:"goalie,omitempty"`
	FaceOff   string `json:"faceoff,omitempty"`
}

type sequenceSlot struct {
	ID              string          `json:"id"`
	Drills          []sequenceDrill `json:"drills"`
	DurationMinutes int             `json:"duration"`
}

type sequenceDrill struct {
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

type sequenceStrategy struct {
	StrategyID string `json:"strategyId"`
	Name       string `json:"name"`
	Category   string `json:"category,omitempty"`
	VideoURL   string `json:"videoUrl,omitempty"`
}

// encodeSequence serializes the timeline parts of a plan into the versioned
// drill_sequence blob.
func encodeSequence(p plan.Plan) (json.RawMessage, error) {
	seq := drillSequence{
		Version: SequenceVersion,
		Info: sequenceInfo{
			StartTime:    p.Info.StartTime,
			SetupMinutes: p.SetupMinutes,
			Field:        p.Info.Field,
		},
		Goals: sequenceGoals{
			Coaching:  p.Goals.Coaching,
			Offensive: p.Goals.Offensive,
			Defensive: p.Goals.Defensive,
			Goalie:    p.Goals.Goalie,
			FaceOff:   p.Goals.FaceOff,
		},
		SetupNotes: p.SetupNotes,
		TimeSlots:  make([]sequenceSlot, 0, len(p.TimeSlots)),
	}
	for _, slot := range p.TimeSlots {
		out := sequenceSlot{ID: slot.ID, DurationMinutes: slot.DurationMinutes, Drills: make([]sequenceDrill, 0, len(slot.Drills))}
		for _, d := range slot.Drills {
			out.Drills = append(out.Drills, sequenceDrill{
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
		seq.TimeSlots = append(seq.TimeSlots, out)
	}
	for _, sel := range p.Strategies {
		seq.Strategies = append(seq.Strategies, sequenceStrategy{
			StrategyID: sel.StrategyID,
			Name:       sel.Name,
			Category:   sel.Category,
			VideoURL:   sel.VideoURL,
		})
	}
	return json.Marshal(seq)
}

// decodeSequence parses a drill_sequence blob into the timeline parts of a
// plan. Missing optional fields fall back to editor defaults so records
// written before a field existed still load.
// POST: Returns an error only for malformed JSON or an unknown version
func decodeSequence(data json.RawMessage, into *plan.Plan) error {
	var seq drillSequence
	if err := json.Unmarshal(data, &seq); err != nil {
		return fmt.Errorf("decoding drill sequence: %w", err)
	}
	if seq.Version > SequenceVersion {
		return fmt.Errorf("drill sequence version %d not supported", seq.Version)
	}

	if seq.Info.StartTime != "" {
		into.Info.StartTime = seq.Info.StartTime
	}
	if seq.Info.Field != "" {
		into.Info.Field = seq.Info.Field
	}
	into.SetupMinutes = seq.Info.SetupMinutes
	into.SetupNotes = seq.SetupNotes
	into.Goals = plan.Goals{
		Coaching:  seq.Goals.Coaching,
		Offensive: seq.Goals.Offensive,
		Defensive: seq.Goals.Defensive,
		Goalie:    seq.Goals.Goalie,
		FaceOff:   seq.Goals.FaceOff,
	}
	into.TimeSlots = nil
	for _, slot := range seq.TimeSlots {
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
		into.TimeSlots = append(into.TimeSlots, out)
	}
	into.Strategies = nil
	for _, sel := range seq.Strategies {
		into.Strategies = append(into.Strategies, plan.SelectedStrategy{
			StrategyID: sel.StrategyID,
			Name:       sel.Name,
			Category:   sel.Category,
			VideoURL:   sel.VideoURL,
		})
	}
	return nil
}
