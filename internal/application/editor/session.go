package editor

import (
	"log/slog"
	"sync"
	"time"

	"laxhq/internal/domain/drill"
	"laxhq/internal/domain/plan"
	"laxhq/internal/domain/strategy"
	"laxhq/internal/domain/template"
)

// Move directions for MoveSlot.
const (
	MoveUp   = "up"
	MoveDown = "down"
)

// Deps holds injected dependencies for editor sessions.
type Deps struct {
	GenerateID func() string
	Now        func() time.Time
}

// Session owns one in-memory practice plan and is its only writer. Every
// mutation runs to completion under the session lock and cannot fail:
// out-of-range reorders and updates of unknown instance ids are successful
// no-ops. Mutations notify the autosaver, never the other way round.
type Session struct {
	mu    sync.Mutex
	plan  plan.Plan
	deps  Deps
	saver *Autosaver
	dirty bool
}

// NewSession creates a session with editor defaults.
// PRE: deps.GenerateID and deps.Now are non-nil
// POST: Session holds a default plan; saver may be nil (autosave disabled)
func NewSession(deps Deps, saver *Autosaver) *Session {
	return &Session{
		plan:  plan.NewPlan(deps.Now()),
		deps:  deps,
		saver: saver,
	}
}

// AddDrill copies a catalog drill into the plan as a new single-drill time
// slot appended at the end of the timeline.
// POST: Returns the new instance; its PracticeID is unique within the plan
func (s *Session) AddDrill(d drill.Drill) plan.DrillInstance {
	instance := plan.DrillInstance{
		PracticeID:     s.deps.GenerateID(),
		DrillID:        d.ID,
		Title:          d.Title,
		Category:       d.Category,
		Description:    d.Description,
		CustomDuration: d.EffectiveDuration(),
		VideoURL:       d.VideoURL,
		LabURLs:        append([]string(nil), d.LabURLs...),
	}

	s.mu.Lock()
	s.plan.TimeSlots = append(s.plan.TimeSlots, plan.TimeSlot{
		ID:              s.deps.GenerateID(),
		Drills:          []plan.DrillInstance{instance},
		DurationMinutes: instance.CustomDuration,
	})
	s.mu.Unlock()

	s.mutated()
	return instance
}

// AddParallelDrill copies a catalog drill into an existing slot so it runs
// alongside the slot's other drills. Out-of-range slot indexes are no-ops.
// POST: Slot duration equals its longest drill
func (s *Session) AddParallelDrill(slotIndex int, d drill.Drill) {
	instance := plan.DrillInstance{
		PracticeID:     s.deps.GenerateID(),
		DrillID:        d.ID,
		Title:          d.Title,
		Category:       d.Category,
		Description:    d.Description,
		CustomDuration: d.EffectiveDuration(),
		VideoURL:       d.VideoURL,
		LabURLs:        append([]string(nil), d.LabURLs...),
	}

	s.mu.Lock()
	if slotIndex >= 0 && slotIndex < len(s.plan.TimeSlots) {
		slot := &s.plan.TimeSlots[slotIndex]
		slot.Drills = append(slot.Drills, instance)
		slot.RecalcDuration()
	}
	s.mu.Unlock()

	s.mutated()
}

// RemoveDrill removes the instance with the given practice id. When it was
// the last occupant of its slot, the slot is removed from the timeline.
// POST: No instance with practiceID remains; unknown ids are a no-op
func (s *Session) RemoveDrill(practiceID string) {
	s.mu.Lock()
	for i := range s.plan.TimeSlots {
		slot := &s.plan.TimeSlots[i]
		for j, d := range slot.Drills {
			if d.PracticeID != practiceID {
				continue
			}
			if len(slot.Drills) == 1 {
				s.plan.TimeSlots = append(s.plan.TimeSlots[:i], s.plan.TimeSlots[i+1:]...)
			} else {
				slot.Drills = append(slot.Drills[:j], slot.Drills[j+1:]...)
				slot.RecalcDuration()
			}
			s.mu.Unlock()
			s.mutated()
			return
		}
	}
	s.mu.Unlock()
}

// DrillUpdate carries the editable fields of a drill instance. Nil fields
// are left unchanged (shallow merge).
type DrillUpdate struct {
	Duration *int
	Notes    *string
}

// UpdateDrill merges the update into the matching instance and recomputes
// its slot duration. Unknown practice ids are a no-op.
// POST: Slot duration equals its longest drill
func (s *Session) UpdateDrill(practiceID string, update DrillUpdate) {
	s.mu.Lock()
	for i := range s.plan.TimeSlots {
		slot := &s.plan.TimeSlots[i]
		for j := range slot.Drills {
			if slot.Drills[j].PracticeID != practiceID {
				continue
			}
			if update.Duration != nil {
				slot.Drills[j].CustomDuration = *update.Duration
			}
			if update.Notes != nil {
				slot.Drills[j].Notes = *update.Notes
			}
			slot.RecalcDuration()
			s.mu.Unlock()
			s.mutated()
			return
		}
	}
	s.mu.Unlock()
}

// MoveSlot swaps the slot at index with its immediate neighbor. Moving the
// first slot up or the last slot down is a successful no-op, not an error.
func (s *Session) MoveSlot(index int, direction string) {
	target := index + 1
	if direction == MoveUp {
		target = index - 1
	}

	s.mu.Lock()
	slots := s.plan.TimeSlots
	if index < 0 || index >= len(slots) || target < 0 || target >= len(slots) {
		s.mu.Unlock()
		return
	}
	slots[index], slots[target] = slots[target], slots[index]
	s.mu.Unlock()

	s.mutated()
}

// ToggleStrategy adds the strategy to the active set if absent and removes
// it if present. An idempotent toggle, never a counter.
// POST: Returns true if the strategy is active after the call
func (s *Session) ToggleStrategy(st strategy.Strategy) bool {
	s.mu.Lock()
	active := false
	if s.plan.HasStrategy(st.ID) {
		kept := s.plan.Strategies[:0]
		for _, sel := range s.plan.Strategies {
			if sel.StrategyID != st.ID {
				kept = append(kept, sel)
			}
		}
		s.plan.Strategies = kept
	} else {
		s.plan.Strategies = append(s.plan.Strategies, plan.SelectedStrategy{
			StrategyID: st.ID,
			Name:       st.Name,
			Category:   st.Category,
			VideoURL:   st.VideoURL,
		})
		active = true
	}
	s.mu.Unlock()

	s.mutated()
	return active
}

// InfoUpdate carries the editable practice metadata fields. Nil fields are
// left unchanged (shallow merge).
type InfoUpdate struct {
	Name            *string
	Date            *string
	StartTime       *string
	Field           *string
	DurationMinutes *int
}

// UpdateInfo shallow-merges the update into the practice metadata.
func (s *Session) UpdateInfo(update InfoUpdate) {
	s.mu.Lock()
	if update.Name != nil {
		s.plan.Info.Name = *update.Name
	}
	if update.Date != nil {
		s.plan.Info.Date = *update.Date
	}
	if update.StartTime != nil {
		s.plan.Info.StartTime = *update.StartTime
	}
	if update.Field != nil {
		s.plan.Info.Field = *update.Field
	}
	if update.DurationMinutes != nil {
		s.plan.Info.DurationMinutes = *update.DurationMinutes
	}
	s.mu.Unlock()

	s.mutated()
}

// GoalsUpdate carries the editable goal fields. Nil fields are left
// unchanged (shallow merge).
type GoalsUpdate struct {
	Coaching  *string
	Offensive *string
	Defensive *string
	Goalie    *string
	FaceOff   *string
}

// UpdateGoals shallow-merges the update into the practice goals.
func (s *Session) UpdateGoals(update GoalsUpdate) {
	s.mu.Lock()
	if update.Coaching != nil {
		s.plan.Goals.Coaching = *update.Coaching
	}
	if update.Offensive != nil {
		s.plan.Goals.Offensive = *update.Offensive
	}
	if update.Defensive != nil {
		s.plan.Goals.Defensive = *update.Defensive
	}
	if update.Goalie != nil {
		s.plan.Goals.Goalie = *update.Goalie
	}
	if update.FaceOff != nil {
		s.plan.Goals.FaceOff = *update.FaceOff
	}
	s.mu.Unlock()

	s.mutated()
}

// SetSetup replaces the setup buffer and its notes.
func (s *Session) SetSetup(minutes int, notes []string) {
	s.mu.Lock()
	s.plan.SetupMinutes = minutes
	s.plan.SetupNotes = append([]string(nil), notes...)
	s.mu.Unlock()

	s.mutated()
}

// SetPracticeNotes replaces the free-text practice notes.
func (s *Session) SetPracticeNotes(notes string) {
	s.mu.Lock()
	s.plan.PracticeNotes = notes
	s.mu.Unlock()

	s.mutated()
}

// ApplyTemplate replaces the timeline, allotted duration and notes with the
// template's. Practice metadata and goals are untouched. Drill instances in
// the template receive fresh practice ids so template reuse cannot alias ids
// across plans.
func (s *Session) ApplyTemplate(t template.Template) {
	slots := cloneSlots(t.TimeSlots)
	for i := range slots {
		slots[i].ID = s.deps.GenerateID()
		for j := range slots[i].Drills {
			slots[i].Drills[j].PracticeID = s.deps.GenerateID()
		}
	}

	s.mu.Lock()
	s.plan.TimeSlots = slots
	s.plan.Info.DurationMinutes = t.DurationMinutes
	s.plan.PracticeNotes = t.Notes
	s.mu.Unlock()

	slog.Info("editor_event", "event", "template_applied", "template_id", t.ID, "template", t.Name)
	s.mutated()
}

// Clear empties the timeline, strategies and notes, keeping practice
// metadata so the coach can rebuild without re-entering the basics.
func (s *Session) Clear() {
	s.mu.Lock()
	s.plan.TimeSlots = nil
	s.plan.Strategies = nil
	s.plan.PracticeNotes = ""
	s.plan.SetupNotes = nil
	s.mu.Unlock()

	s.mutated()
}

// Replace swaps the whole plan, used by snapshot restore and plan load.
// POST: Session state equals p by value; the session does not alias p
func (s *Session) Replace(p plan.Plan) {
	s.mu.Lock()
	s.plan = clonePlan(p)
	s.mu.Unlock()

	s.mutated()
}

// Plan returns a deep copy of the current plan.
// INVARIANT: Callers cannot mutate session state through the returned value
func (s *Session) Plan() plan.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePlan(s.plan)
}

// Timeline derives the current schedule from the plan.
func (s *Session) Timeline() plan.Timeline {
	s.mu.Lock()
	defer s.mu.Unlock()
	return plan.ComputeTimeline(s.plan.Info.StartTime, s.plan.SetupMinutes, s.plan.TimeSlots)
}

// Dirty reports whether the plan has mutations not yet saved to the plan store.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// MarkSaved clears the unsaved indicator after a successful remote save.
func (s *Session) MarkSaved() {
	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
}

// mutated flags unsaved changes and schedules a debounced autosave.
func (s *Session) mutated() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
	if s.saver != nil {
		s.saver.Notify()
	}
}

func clonePlan(p plan.Plan) plan.Plan {
	out := p
	out.SetupNotes = append([]string(nil), p.SetupNotes...)
	out.TimeSlots = cloneSlotsOrNil(p.TimeSlots)
	out.Strategies = append([]plan.SelectedStrategy(nil), p.Strategies...)
	return out
}

func cloneSlotsOrNil(slots []plan.TimeSlot) []plan.TimeSlot {
	if slots == nil {
		return nil
	}
	return cloneSlots(slots)
}

func cloneSlots(slots []plan.TimeSlot) []plan.TimeSlot {
	out := make([]plan.TimeSlot, len(slots))
	for i, slot := range slots {
		out[i] = slot
		out[i].Drills = make([]plan.DrillInstance, len(slot.Drills))
		for j, d := range slot.Drills {
			out[i].Drills[j] = d
			out[i].Drills[j].LabURLs = append([]string(nil), d.LabURLs...)
		}
	}
	return out
}
