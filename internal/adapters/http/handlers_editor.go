package web

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"laxhq/internal/adapters/http/middleware"
	"laxhq/internal/application/editor"
	"laxhq/internal/domain/drill"
	"laxhq/internal/domain/strategy"
)

// timelineView is the JSON shape of the computed schedule.
type timelineView struct {
	SlotStartTimes   []string `json:"slotStartTimes"`
	SlotEndTimes     []string `json:"slotEndTimes"`
	TotalUsedMinutes int      `json:"totalUsedMinutes"`
	EndTime          string   `json:"endTime"`
}

// openEditor resolves the caller's editor session, keyed by team.
func openEditor(w http.ResponseWriter, r *http.Request) (*editor.Session, middleware.Session, bool) {
	session, ok := requirePlanEditor(w, r)
	if !ok {
		return nil, middleware.Session{}, false
	}
	es, _ := editorManager.Open(r.Context(), session.TeamID)
	return es, session, true
}

// writeEditorState responds with the current editor document and its timeline.
func writeEditorState(w http.ResponseWriter, es *editor.Session) {
	state, err := editor.EncodeState(es.Plan())
	if err != nil {
		internalError(w, err)
		return
	}
	tl := es.Timeline()
	writeJSON(w, http.StatusOK, map[string]any{
		"state": json.RawMessage(state),
		"timeline": timelineView{
			SlotStartTimes:   tl.SlotStartTimes,
			SlotEndTimes:     tl.SlotEndTimes,
			TotalUsedMinutes: tl.TotalUsedMinutes,
			EndTime:          tl.EndTime,
		},
		"dirty": es.Dirty(),
	})
}

// findDrill looks up a catalog drill by ID.
func findDrill(id string) (drill.Drill, bool) {
	for _, d := range catalogService.Drills() {
		if d.ID == id {
			return d, true
		}
	}
	return drill.Drill{}, false
}

// findStrategy looks up a catalog strategy by ID.
func findStrategy(id string) (strategy.Strategy, bool) {
	for _, s := range catalogService.Strategies() {
		if s.ID == id {
			return s, true
		}
	}
	return strategy.Strategy{}, false
}

// handleEditor handles GET /api/editor
func handleEditor(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session, ok := requirePlanEditor(w, r)
	if !ok {
		return
	}
	es, restored := editorManager.Open(r.Context(), session.TeamID)

	state, err := editor.EncodeState(es.Plan())
	if err != nil {
		internalError(w, err)
		return
	}
	tl := es.Timeline()
	writeJSON(w, http.StatusOK, map[string]any{
		"state": json.RawMessage(state),
		"timeline": timelineView{
			SlotStartTimes:   tl.SlotStartTimes,
			SlotEndTimes:     tl.SlotEndTimes,
			TotalUsedMinutes: tl.TotalUsedMinutes,
			EndTime:          tl.EndTime,
		},
		"dirty":    es.Dirty(),
		"restored": restored,
	})
}

// handleEditorDrillAdd handles POST /api/editor/drills
func handleEditorDrillAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	es, _, ok := openEditor(w, r)
	if !ok {
		return
	}

	var body struct {
		DrillID   string `json:"drillId"`
		SlotIndex *int   `json:"slotIndex"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	d, found := findDrill(body.DrillID)
	if !found {
		http.Error(w, "drill not found", http.StatusNotFound)
		return
	}

	if body.SlotIndex != nil {
		es.AddParallelDrill(*body.SlotIndex, d)
	} else {
		es.AddDrill(d)
	}
	writeEditorState(w, es)
}

// handleEditorDrillUpdate handles POST /api/editor/drills/update
func handleEditorDrillUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	es, _, ok := openEditor(w, r)
	if !ok {
		return
	}

	var body struct {
		PracticeID string  `json:"practiceId"`
		Duration   *int    `json:"duration"`
		Notes      *string `json:"notes"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	es.UpdateDrill(body.PracticeID, editor.DrillUpdate{
		Duration: body.Duration,
		Notes:    body.Notes,
	})
	writeEditorState(w, es)
}

// handleEditorDrillRemove handles POST /api/editor/drills/remove
func handleEditorDrillRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	es, _, ok := openEditor(w, r)
	if !ok {
		return
	}

	var body struct {
		PracticeID string `json:"practiceId"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	es.RemoveDrill(body.PracticeID)
	writeEditorState(w, es)
}

// handleEditorSlotMove handles POST /api/editor/slots/move
func handleEditorSlotMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	es, _, ok := openEditor(w, r)
	if !ok {
		return
	}

	var body struct {
		Index     int    `json:"index"`
		Direction string `json:"direction"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if body.Direction != editor.MoveUp && body.Direction != editor.MoveDown {
		http.Error(w, "direction must be up or down", http.StatusBadRequest)
		return
	}

	es.MoveSlot(body.Index, body.Direction)
	writeEditorState(w, es)
}

// handleEditorStrategyToggle handles POST /api/editor/strategies/toggle
func handleEditorStrategyToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	es, _, ok := openEditor(w, r)
	if !ok {
		return
	}

	var body struct {
		StrategyID string `json:"strategyId"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	st, found := findStrategy(body.StrategyID)
	if !found {
		http.Error(w, "strategy not found", http.StatusNotFound)
		return
	}

	selected := es.ToggleStrategy(st)
	state, err := editor.EncodeState(es.Plan())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"state":    json.RawMessage(state),
		"selected": selected,
	})
}

// handleEditorInfo handles POST /api/editor/info
func handleEditorInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	es, _, ok := openEditor(w, r)
	if !ok {
		return
	}

	var body struct {
		Name            *string `json:"name"`
		Date            *string `json:"date"`
		StartTime       *string `json:"startTime"`
		Field           *string `json:"field"`
		DurationMinutes *int    `json:"duration"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	es.UpdateInfo(editor.InfoUpdate{
		Name:            body.Name,
		Date:            body.Date,
		StartTime:       body.StartTime,
		Field:           body.Field,
		DurationMinutes: body.DurationMinutes,
	})
	writeEditorState(w, es)
}

// handleEditorGoals handles POST /api/editor/goals
func handleEditorGoals(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	es, _, ok := openEditor(w, r)
	if !ok {
		return
	}

	var body struct {
		Coaching  *string `json:"coaching"`
		Offensive *string `json:"offensive"`
		Defensive *string `json:"defensive"`
		Goalie    *string `json:"goalie"`
		FaceOff   *string `json:"faceoff"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	es.UpdateGoals(editor.GoalsUpdate{
		Coaching:  body.Coaching,
		Offensive: body.Offensive,
		Defensive: body.Defensive,
		Goalie:    body.Goalie,
		FaceOff:   body.FaceOff,
	})
	writeEditorState(w, es)
}

// handleEditorSetup handles POST /api/editor/setup
func handleEditorSetup(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	es, _, ok := openEditor(w, r)
	if !ok {
		return
	}

	var body struct {
		Minutes int      `json:"minutes"`
		Notes   []string `json:"notes"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	es.SetSetup(body.Minutes, body.Notes)
	writeEditorState(w, es)
}

// handleEditorNotes handles POST /api/editor/notes
func handleEditorNotes(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	es, _, ok := openEditor(w, r)
	if !ok {
		return
	}

	var body struct {
		Notes string `json:"notes"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	es.SetPracticeNotes(body.Notes)
	writeEditorState(w, es)
}

// handleEditorTemplate handles POST /api/editor/template
func handleEditorTemplate(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	es, _, ok := openEditor(w, r)
	if !ok {
		return
	}

	var body struct {
		TemplateID string `json:"templateId"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.TemplateID) == "" {
		http.Error(w, "templateId is required", http.StatusBadRequest)
		return
	}

	t, err := stores.TemplateStore.GetByID(r.Context(), body.TemplateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "template not found", http.StatusNotFound)
			return
		}
		internalError(w, err)
		return
	}

	es.ApplyTemplate(t)
	writeEditorState(w, es)
}

// handleEditorClear handles POST /api/editor/clear
func handleEditorClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	es, _, ok := openEditor(w, r)
	if !ok {
		return
	}

	es.Clear()
	writeEditorState(w, es)
}

// handleEditorClose handles POST /api/editor/close
func handleEditorClose(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session, ok := requirePlanEditor(w, r)
	if !ok {
		return
	}

	if err := editorManager.Close(r.Context(), session.TeamID); err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
