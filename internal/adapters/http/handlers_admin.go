package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	accountStore "laxhq/internal/adapters/storage/account"
	"laxhq/internal/application/orchestrators"
	teamDomain "laxhq/internal/domain/team"
)

// maxImportBytes bounds CSV uploads.
const maxImportBytes = 4 << 20

// handleAdminImportDrills handles POST /api/admin/import/drills
// Accepts a multipart upload with a "file" CSV field plus dryRun and
// updateMode form flags.
func handleAdminImportDrills(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := orchestrators.ExecuteImportDrills(r.Context(), orchestrators.ImportDrillsInput{
		Reader:         file,
		AdminAccountID: session.AccountID,
		DryRun:         r.FormValue("dryRun") == "true",
		UpdateMode:     r.FormValue("updateMode") == "true",
	}, orchestrators.ImportDrillsDeps{
		DrillStore: stores.DrillStore,
		GenerateID: generateID,
	})
	if err != nil {
		var validation *orchestrators.ImportValidationError
		if errors.As(err, &validation) {
			http.Error(w, validation.Error(), http.StatusBadRequest)
			return
		}
		internalError(w, err)
		return
	}

	catalogService.Refresh(r.Context())
	writeJSON(w, http.StatusOK, result)
}

// handleAdminImportUsers handles POST /api/admin/import/users
func handleAdminImportUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	defaultPassword := r.FormValue("defaultPassword")
	if len(defaultPassword) < 12 {
		http.Error(w, "defaultPassword must be at least 12 characters", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteImportUsers(r.Context(), orchestrators.ImportUsersInput{
		Reader:          file,
		AdminAccountID:  session.AccountID,
		DefaultPassword: defaultPassword,
		DryRun:          r.FormValue("dryRun") == "true",
		UpdateMode:      r.FormValue("updateMode") == "true",
	}, orchestrators.ImportUsersDeps{
		AccountStore: stores.AccountStore,
		GenerateID:   generateID,
	})
	if err != nil {
		var validation *orchestrators.ImportValidationError
		if errors.As(err, &validation) {
			http.Error(w, validation.Error(), http.StatusBadRequest)
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleAdminAccounts handles GET and POST /api/admin/accounts
func handleAdminAccounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		handleAdminListAccounts(w, r)
	case "POST":
		handleAdminCreateAccount(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func handleAdminListAccounts(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	accounts, err := stores.AccountStore.List(r.Context(), accountStore.ListFilter{
		TeamID: r.URL.Query().Get("teamId"),
		Role:   r.URL.Query().Get("role"),
	})
	if err != nil {
		internalError(w, err)
		return
	}

	type accountView struct {
		ID                     string `json:"id"`
		Email                  string `json:"email"`
		Name                   string `json:"name"`
		Role                   string `json:"role"`
		TeamID                 string `json:"teamId"`
		Locked                 bool   `json:"locked"`
		PasswordChangeRequired bool   `json:"passwordChangeRequired"`
	}
	now := timeNow()
	views := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, accountView{
			ID:                     a.ID,
			Email:                  a.Email,
			Name:                   a.Name,
			Role:                   a.Role,
			TeamID:                 a.TeamID,
			Locked:                 a.LockedUntil.After(now),
			PasswordChangeRequired: a.PasswordChangeRequired,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"accounts": views})
}

func handleAdminCreateAccount(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var body struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
		Role     string `json:"role"`
		TeamID   string `json:"teamId"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	id, err := orchestrators.ExecuteCreateAccount(r.Context(), orchestrators.CreateAccountInput{
		Email:                  body.Email,
		Name:                   body.Name,
		Password:               body.Password,
		Role:                   body.Role,
		TeamID:                 body.TeamID,
		PasswordChangeRequired: true,
	}, orchestrators.CreateAccountDeps{AccountStore: stores.AccountStore})
	if err != nil {
		if errors.Is(err, orchestrators.ErrEmailAlreadyExists) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

// handleAdminTeams handles GET and POST /api/admin/teams
func handleAdminTeams(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		handleAdminListTeams(w, r)
	case "POST":
		handleAdminSaveTeam(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func handleAdminListTeams(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	teams, err := stores.TeamStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	type teamView struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		AgeGroup string `json:"ageGroup"`
	}
	views := make([]teamView, 0, len(teams))
	for _, t := range teams {
		views = append(views, teamView{ID: t.ID, Name: t.Name, AgeGroup: t.AgeGroup})
	}

	writeJSON(w, http.StatusOK, map[string]any{"teams": views})
}

// handleAdminSaveTeam creates a team, or renames one when the body carries a
// known id. Accounts and plans reference teams by id, so a team row must
// exist before imports or plan saves can point at it.
func handleAdminSaveTeam(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var body struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		AgeGroup string `json:"ageGroup"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	entity := teamDomain.Team{ID: body.ID, Name: body.Name, AgeGroup: body.AgeGroup}
	if err := entity.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	status := http.StatusOK
	if entity.ID == "" {
		entity.ID = generateID()
		status = http.StatusCreated
	}
	if err := stores.TeamStore.Save(r.Context(), entity); err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, status, map[string]any{"id": entity.ID})
}

// handleAdminTeamItem handles DELETE /api/admin/teams/{id}
func handleAdminTeamItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != "DELETE" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/admin/teams/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	if err := stores.TeamStore.Delete(r.Context(), id); err != nil {
		internalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleAdminPerf handles GET /api/admin/perf?minutes=<n>&top=<n>
func handleAdminPerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	if perfCollector == nil {
		http.Error(w, "performance collection is disabled", http.StatusServiceUnavailable)
		return
	}

	minutes := 15
	if v, err := strconv.Atoi(r.URL.Query().Get("minutes")); err == nil && v > 0 {
		minutes = v
	}
	topN := 10
	if v, err := strconv.Atoi(r.URL.Query().Get("top")); err == nil && v > 0 {
		topN = v
	}

	since := timeNow().Add(-time.Duration(minutes) * time.Minute)
	writeJSON(w, http.StatusOK, perfCollector.Snapshot(since, topN))
}
