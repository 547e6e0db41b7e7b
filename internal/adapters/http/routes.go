package web

import "net/http"

// registerRoutes wires every API path onto the mux. Auth and role checks
// happen inside the handlers; the mux only dispatches.
func registerRoutes(mux *http.ServeMux) {
	// Auth
	mux.HandleFunc("/api/login", handleLogin)
	mux.HandleFunc("/api/logout", handleLogout)
	mux.HandleFunc("/api/me", handleMe)
	mux.HandleFunc("/api/change-password", handleChangePassword)

	// Catalog
	mux.HandleFunc("/api/drills", handleDrills)
	mux.HandleFunc("/api/strategies", handleStrategies)
	mux.HandleFunc("/api/categories", handleCategories)
	mux.HandleFunc("/api/catalog/refresh", handleCatalogRefresh)

	// Dashboard
	mux.HandleFunc("/api/dashboard", handleDashboard)

	// Editor
	mux.HandleFunc("/api/editor", handleEditor)
	mux.HandleFunc("/api/editor/drills", handleEditorDrillAdd)
	mux.HandleFunc("/api/editor/drills/update", handleEditorDrillUpdate)
	mux.HandleFunc("/api/editor/drills/remove", handleEditorDrillRemove)
	mux.HandleFunc("/api/editor/slots/move", handleEditorSlotMove)
	mux.HandleFunc("/api/editor/strategies/toggle", handleEditorStrategyToggle)
	mux.HandleFunc("/api/editor/info", handleEditorInfo)
	mux.HandleFunc("/api/editor/goals", handleEditorGoals)
	mux.HandleFunc("/api/editor/setup", handleEditorSetup)
	mux.HandleFunc("/api/editor/notes", handleEditorNotes)
	mux.HandleFunc("/api/editor/template", handleEditorTemplate)
	mux.HandleFunc("/api/editor/clear", handleEditorClear)
	mux.HandleFunc("/api/editor/close", handleEditorClose)

	// Plans and templates
	mux.HandleFunc("/api/plans", handlePlans)
	mux.HandleFunc("/api/plans/", handlePlanItem)
	mux.HandleFunc("/api/templates", handleTemplates)

	// Admin
	mux.HandleFunc("/api/admin/import/drills", handleAdminImportDrills)
	mux.HandleFunc("/api/admin/import/users", handleAdminImportUsers)
	mux.HandleFunc("/api/admin/accounts", handleAdminAccounts)
	mux.HandleFunc("/api/admin/teams", handleAdminTeams)
	mux.HandleFunc("/api/admin/teams/", handleAdminTeamItem)
	mux.HandleFunc("/api/admin/perf", handleAdminPerf)
}
