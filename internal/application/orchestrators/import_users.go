package orchestrators

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	accountStore "laxhq/internal/adapters/storage/account"
	domain "laxhq/internal/domain/account"
)

// ImportUsersInput carries the parsed CSV reader and import options.
// PRE: Reader is a valid CSV stream with a header row; AdminAccountID is non-empty.
// POST: Returns aggregate counts and per-row errors; writes are skipped when DryRun=true.
// INVARIANT: Existing accounts are never deleted; IDs and password hashes are preserved on update.
type ImportUsersInput struct {
	Reader          io.Reader
	AdminAccountID  string
	DefaultPassword string
	DryRun          bool
	UpdateMode      bool
}

// ImportUsersResult holds aggregate counts and per-row errors from an import run.
type ImportUsersResult struct {
	Total   int
	Created int
	Updated int
	Skipped int
	Errors  []ImportRowError
	DryRun  bool
	Unknown []string
}

// ImportUsersDeps holds external dependencies for the import orchestrator.
type ImportUsersDeps struct {
	AccountStore accountStore.Store
	GenerateID   func() string
}

// ExecuteImportUsers parses a CSV stream and creates or updates accounts.
// New accounts get the default password with a forced change on first login.
// PRE: Input.Reader contains a valid CSV with at least NAME and EMAIL columns;
//
//	Input.DefaultPassword satisfies the password policy.
//
// POST: Accounts are created/updated/skipped according to DryRun and UpdateMode flags.
// INVARIANT: When DryRun=true no writes occur; updates never touch passwords.
func ExecuteImportUsers(ctx context.Context, input ImportUsersInput, deps ImportUsersDeps) (ImportUsersResult, error) {
	cr := csv.NewReader(input.Reader)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return ImportUsersResult{}, err
	}

	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.ToUpper(strings.TrimSpace(h))] = i
	}

	if _, ok := colIdx["NAME"]; !ok {
		return ImportUsersResult{}, &ImportValidationError{Message: "CSV missing required column: NAME"}
	}
	if _, ok := colIdx["EMAIL"]; !ok {
		return ImportUsersResult{}, &ImportValidationError{Message: "CSV missing required column: EMAIL"}
	}

	known := map[string]bool{
		"ID": true, "NAME": true, "EMAIL": true, "ROLE": true, "TEAMID": true,
	}
	var unknownCols []string
	for _, h := range header {
		if !known[strings.ToUpper(strings.TrimSpace(h))] {
			unknownCols = append(unknownCols, h)
		}
	}

	getCol := func(row []string, col string) string {
		i, ok := colIdx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	result := ImportUsersResult{DryRun: input.DryRun, Unknown: unknownCols}
	rowNum := 1

	for {
		row, err := cr.Read()
		if err != nil {
			break
		}
		rowNum++
		result.Total++

		name := getCol(row, "NAME")
		rawEmail := getCol(row, "EMAIL")

		if name == "" {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: "name is required"})
			continue
		}

		addr, parseErr := mail.ParseAddress(rawEmail)
		if parseErr != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: "invalid email: " + rawEmail})
			continue
		}
		email := strings.ToLower(addr.Address)

		role := strings.ToLower(getCol(row, "ROLE"))
		if !validRole(role) {
			role = domain.RolePlayer
		}
		teamID := getCol(row, "TEAMID")

		existing, lookupErr := deps.AccountStore.GetByEmail(ctx, email)
		exists := lookupErr == nil

		if exists && !input.UpdateMode {
			result.Skipped++
			continue
		}

		if input.DryRun {
			if exists {
				result.Updated++
			} else {
				result.Created++
			}
			continue
		}

		if exists {
			existing.Name = name
			existing.Role = role
			if teamID != "" {
				existing.TeamID = teamID
			}
			if err := deps.AccountStore.Save(ctx, existing); err != nil {
				slog.Error("users_import_save_failed", "row", rowNum, "email", email, "err", err)
				result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: "save failed (see server log)"})
				continue
			}
			result.Updated++
		} else {
			a := domain.Account{
				ID:                     deps.GenerateID(),
				Name:                   name,
				Email:                  email,
				Role:                   role,
				TeamID:                 teamID,
				CreatedAt:              time.Now(),
				PasswordChangeRequired: true,
			}
			if err := a.SetPassword(input.DefaultPassword); err != nil {
				result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: "default password rejected: " + err.Error()})
				continue
			}
			if err := deps.AccountStore.Save(ctx, a); err != nil {
				slog.Error("users_import_save_failed", "row", rowNum, "email", email, "err", err)
				result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: "save failed (see server log)"})
				continue
			}
			result.Created++
		}
	}

	slog.Info("users_import",
		"admin", input.AdminAccountID,
		"dry_run", input.DryRun,
		"update_mode", input.UpdateMode,
		"total", result.Total,
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
	)

	return result, nil
}

func validRole(role string) bool {
	for _, r := range domain.ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
