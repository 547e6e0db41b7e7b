package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"laxhq/internal/adapters/http/middleware"
	"laxhq/internal/application/editor"
	"laxhq/internal/application/orchestrators"
	"laxhq/internal/application/projections"
	"laxhq/internal/domain/plan"
)

// handlePlans handles GET and POST /api/plans
func handlePlans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		handleListPlans(w, r)
	case "POST":
		handleSavePlan(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func handleListPlans(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	teamID := session.TeamID
	if requested := r.URL.Query().Get("teamId"); requested != "" && middleware.IsAdmin(r.Context()) {
		teamID = requested
	}

	summaries, err := projections.QueryListPlans(r.Context(), projections.ListPlansQuery{
		TeamID: teamID,
	}, projections.ListPlansDeps{PlanStore: stores.PlanStore})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"plans": summaries})
}

// handleSavePlan persists the caller's current editor document. An empty
// planId creates a new record; a known one overwrites it wholesale.
func handleSavePlan(w http.ResponseWriter, r *http.Request) {
	session, ok := requirePlanEditor(w, r)
	if !ok {
		return
	}

	var body struct {
		PlanID string `json:"planId"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	es, _ := editorManager.Open(r.Context(), session.TeamID)

	id, err := orchestrators.ExecuteSavePlan(r.Context(), orchestrators.SavePlanInput{
		PlanID:    body.PlanID,
		TeamID:    session.TeamID,
		AccountID: session.AccountID,
		Plan:      es.Plan(),
	}, orchestrators.SavePlanDeps{
		PlanStore:  stores.PlanStore,
		GenerateID: generateID,
		Now:        timeNow,
	})
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrPlanNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, orchestrators.ErrEmptyPlanTitle),
			errors.Is(err, plan.ErrEmptyDate),
			errors.Is(err, plan.ErrEmptyStartTime),
			errors.Is(err, plan.ErrInvalidField):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			internalError(w, err)
		}
		return
	}

	if err := editorManager.Saved(r.Context(), session.TeamID); err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": id})
}

// handlePlanItem dispatches /api/plans/{id} and its sub-actions.
func handlePlanItem(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/plans/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch action {
	case "":
		switch r.Method {
		case "GET":
			handleGetPlan(w, r, id)
		case "DELETE":
			handleDeletePlan(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case "open":
		handleOpenPlan(w, r, id)
	case "share":
		handleSharePlan(w, r, id)
	case "print":
		handlePrintPlan(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func loadPlan(w http.ResponseWriter, r *http.Request, id string) (orchestrators.LoadPlanResult, bool) {
	result, err := orchestrators.ExecuteLoadPlan(r.Context(), orchestrators.LoadPlanInput{
		PlanID: id,
	}, orchestrators.LoadPlanDeps{PlanStore: stores.PlanStore, Now: timeNow})
	if err != nil {
		if errors.Is(err, orchestrators.ErrPlanNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			internalError(w, err)
		}
		return orchestrators.LoadPlanResult{}, false
	}
	return result, true
}

func handleGetPlan(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := requireSession(w, r); !ok {
		return
	}

	result, ok := loadPlan(w, r, id)
	if !ok {
		return
	}

	state, err := editor.EncodeState(result.Plan)
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":        id,
		"teamId":    result.TeamID,
		"state":     json.RawMessage(state),
		"createdAt": result.CreatedAt,
		"updatedAt": result.UpdatedAt,
	})
}

func handleDeletePlan(w http.ResponseWriter, r *http.Request, id string) {
	session, ok := requirePlanEditor(w, r)
	if !ok {
		return
	}

	err := orchestrators.ExecuteDeletePlan(r.Context(), orchestrators.DeletePlanInput{
		PlanID:    id,
		AccountID: session.AccountID,
	}, orchestrators.DeletePlanDeps{PlanStore: stores.PlanStore})
	if err != nil {
		if errors.Is(err, orchestrators.ErrPlanNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		internalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleOpenPlan loads a saved plan into the caller's editor session,
// replacing whatever was there.
func handleOpenPlan(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session, ok := requirePlanEditor(w, r)
	if !ok {
		return
	}

	result, ok := loadPlan(w, r, id)
	if !ok {
		return
	}

	es, _ := editorManager.Open(r.Context(), session.TeamID)
	es.Replace(result.Plan)
	es.MarkSaved()
	writeEditorState(w, es)
}

func handleSharePlan(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session, ok := requirePlanEditor(w, r)
	if !ok {
		return
	}
	if emailSender == nil {
		http.Error(w, "email delivery is not configured", http.StatusServiceUnavailable)
		return
	}

	var body struct {
		Recipients []string `json:"recipients"`
		Message    string   `json:"message"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	sent, err := orchestrators.ExecuteSharePlan(r.Context(), orchestrators.SharePlanInput{
		PlanID:     id,
		AccountID:  session.AccountID,
		Recipients: body.Recipients,
		Message:    body.Message,
	}, orchestrators.SharePlanDeps{
		PlanStore:    orchestrators.LoadPlanDeps{PlanStore: stores.PlanStore, Now: timeNow},
		AccountStore: stores.AccountStore,
		Sender:       emailSender,
	})
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrPlanNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, orchestrators.ErrNoRecipients):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			internalError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"sent": sent})
}

// handlePrintPlan renders a saved plan as a printable HTML page.
func handlePrintPlan(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}

	result, ok := loadPlan(w, r, id)
	if !ok {
		return
	}

	html, err := orchestrators.RenderPlanHTML(result.Plan)
	if err != nil {
		internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// handleTemplates handles GET and POST /api/templates
func handleTemplates(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		handleListTemplates(w, r)
	case "POST":
		handleSaveTemplate(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func handleListTemplates(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSession(w, r); !ok {
		return
	}

	summaries, err := projections.QueryListTemplates(r.Context(), projections.ListTemplatesQuery{
		AgeGroup:     r.URL.Query().Get("ageGroup"),
		OfficialOnly: r.URL.Query().Get("official") == "true",
	}, projections.ListTemplatesDeps{TemplateStore: stores.TemplateStore})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"templates": summaries})
}

// handleSaveTemplate captures the caller's current editor timeline as a
// reusable template.
func handleSaveTemplate(w http.ResponseWriter, r *http.Request) {
	session, ok := requirePlanEditor(w, r)
	if !ok {
		return
	}

	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		AgeGroup    string `json:"ageGroup"`
		Official    bool   `json:"official"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	official := body.Official && middleware.IsAdmin(r.Context())
	es, _ := editorManager.Open(r.Context(), session.TeamID)

	id, err := orchestrators.ExecuteSaveTemplate(r.Context(), orchestrators.SaveTemplateInput{
		Name:        body.Name,
		Description: body.Description,
		AgeGroup:    body.AgeGroup,
		AccountID:   session.AccountID,
		Official:    official,
		Plan:        es.Plan(),
	}, orchestrators.SaveTemplateDeps{
		TemplateStore: stores.TemplateStore,
		GenerateID:    generateID,
		Now:           timeNow,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": id})
}
