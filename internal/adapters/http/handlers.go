package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"laxhq/internal/adapters/http/middleware"
	"laxhq/internal/application/catalog"
	"laxhq/internal/application/orchestrators"
	"laxhq/internal/application/projections"
	accountDomain "laxhq/internal/domain/account"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// requireSession resolves the session or writes a 401.
func requireSession(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return middleware.Session{}, false
	}
	return session, true
}

// requireAdmin resolves the session and verifies the admin role.
func requireAdmin(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	session, ok := requireSession(w, r)
	if !ok {
		return middleware.Session{}, false
	}
	if session.Role != accountDomain.RoleAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return middleware.Session{}, false
	}
	return session, true
}

// requirePlanEditor resolves the session and verifies a plan-editing role.
func requirePlanEditor(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	session, ok := requireSession(w, r)
	if !ok {
		return middleware.Session{}, false
	}
	if !middleware.CanEditPlans(r.Context()) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return middleware.Session{}, false
	}
	return session, true
}

// handleLogin handles POST /api/login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input orchestrators.LoginInput
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	token, err := sessions.Create(result.AccountID, result.Email, result.Role, result.TeamID)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	writeJSON(w, http.StatusOK, map[string]any{
		"accountId":              result.AccountID,
		"email":                  result.Email,
		"role":                   result.Role,
		"teamId":                 result.TeamID,
		"passwordChangeRequired": result.PasswordChangeRequired,
	})
}

// handleLogout handles POST /api/logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	cookie, err := r.Cookie("laxhq_session")
	if err == nil {
		sessions.Delete(cookie.Value)
	}

	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleMe handles GET /api/me
func handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session, ok := requireSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"accountId": session.AccountID,
		"email":     session.Email,
		"role":      session.Role,
		"teamId":    session.TeamID,
	})
}

// handleChangePassword handles POST /api/change-password
func handleChangePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var body struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteChangePassword(r.Context(), orchestrators.ChangePasswordInput{
		AccountID:       session.AccountID,
		CurrentPassword: body.CurrentPassword,
		NewPassword:     body.NewPassword,
	}, orchestrators.ChangePasswordDeps{AccountStore: stores.AccountStore})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleDrills handles GET /api/drills?category=<c>&search=<q>
func handleDrills(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}

	filter := catalog.Filter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}
	drills := catalog.FilterDrills(catalogService.Drills(), filter)

	writeJSON(w, http.StatusOK, map[string]any{
		"drills":     drills,
		"categories": catalog.Categories(catalogService.Drills()),
	})
}

// handleStrategies handles GET /api/strategies?category=<c>&search=<q>
func handleStrategies(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}

	filter := catalog.Filter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"strategies": catalog.FilterStrategies(catalogService.Strategies(), filter),
	})
}

// handleCategories handles GET /api/categories
func handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": catalog.Categories(catalogService.Drills()),
	})
}

// handleCatalogRefresh handles POST /api/catalog/refresh
func handleCatalogRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	catalogService.Refresh(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// handleDashboard handles GET /api/dashboard
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	dashboard, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardQuery{
		AccountID: session.AccountID,
	}, projections.GetDashboardDeps{
		AccountStore:  stores.AccountStore,
		TeamStore:     stores.TeamStore,
		PlanStore:     stores.PlanStore,
		DrillStore:    stores.DrillStore,
		StrategyStore: stores.StrategyStore,
		Now:           timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}
