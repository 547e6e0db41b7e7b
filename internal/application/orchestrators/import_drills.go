package orchestrators

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"strconv"
	"strings"

	drillStore "laxhq/internal/adapters/storage/drill"
	domain "laxhq/internal/domain/drill"
)

// ImportDrillsInput carries the parsed CSV reader and import options.
// PRE: Reader is a valid CSV stream with a header row; AdminAccountID is non-empty.
// POST: Returns aggregate counts and per-row errors; writes are skipped when DryRun=true.
// INVARIANT: Existing drills are never deleted; IDs are preserved on update.
type ImportDrillsInput struct {
	Reader         io.Reader
	AdminAccountID string
	DryRun         bool
	UpdateMode     bool
}

// ImportDrillsResult holds aggregate counts and per-row errors from an import run.
type ImportDrillsResult struct {
	Total   int
	Created int
	Updated int
	Skipped int
	Errors  []ImportRowError
	DryRun  bool
	Unknown []string
}

// ImportRowError describes a validation or processing error for a single CSV row.
type ImportRowError struct {
	Row     int
	Message string
}

// ImportDrillsDeps holds external dependencies for the import orchestrator.
type ImportDrillsDeps struct {
	DrillStore drillStore.Store
	GenerateID func() string
}

// ExecuteImportDrills parses a CSV stream and creates or updates catalog drills.
// Rows match existing drills by exact title; matched rows are skipped unless
// UpdateMode is set.
// PRE: Input.Reader contains a valid CSV with at least TITLE and CATEGORY columns.
// POST: Drills are created/updated/skipped according to DryRun and UpdateMode flags;
//
//	aggregate counts and per-row errors are returned; audit log is emitted.
//
// INVARIANT: When DryRun=true no writes occur; existing drill IDs are always preserved on update.
func ExecuteImportDrills(ctx context.Context, input ImportDrillsInput, deps ImportDrillsDeps) (ImportDrillsResult, error) {
	cr := csv.NewReader(input.Reader)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return ImportDrillsResult{}, err
	}

	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.ToUpper(strings.TrimSpace(h))] = i
	}

	if _, ok := colIdx["TITLE"]; !ok {
		return ImportDrillsResult{}, &ImportValidationError{Message: "CSV missing required column: TITLE"}
	}
	if _, ok := colIdx["CATEGORY"]; !ok {
		return ImportDrillsResult{}, &ImportValidationError{Message: "CSV missing required column: CATEGORY"}
	}

	known := map[string]bool{
		"ID": true, "TITLE": true, "CATEGORY": true, "DESCRIPTION": true,
		"DURATION": true, "VIDEOURL": true, "LABURLS": true,
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

	// Index the existing catalog by title once, not per row.
	existing := make(map[string]domain.Drill)
	current, err := deps.DrillStore.List(ctx)
	if err != nil {
		return ImportDrillsResult{}, err
	}
	for _, d := range current {
		existing[strings.ToLower(d.Title)] = d
	}

	result := ImportDrillsResult{DryRun: input.DryRun, Unknown: unknownCols}
	rowNum := 1

	for {
		row, err := cr.Read()
		if err != nil {
			break
		}
		rowNum++
		result.Total++

		title := getCol(row, "TITLE")
		category := getCol(row, "CATEGORY")

		if title == "" {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: "title is required"})
			continue
		}
		if category == "" {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: "category is required"})
			continue
		}

		duration, _ := strconv.Atoi(getCol(row, "DURATION"))
		if duration < 0 {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: "duration cannot be negative"})
			continue
		}
		description := getCol(row, "DESCRIPTION")
		videoURL := getCol(row, "VIDEOURL")
		var labURLs []string
		for _, u := range strings.Split(getCol(row, "LABURLS"), ";") {
			if u = strings.TrimSpace(u); u != "" {
				labURLs = append(labURLs, u)
			}
		}

		prior, exists := existing[strings.ToLower(title)]

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

		d := domain.Drill{
			ID:              deps.GenerateID(),
			Title:           title,
			Category:        category,
			Description:     description,
			DurationMinutes: duration,
			VideoURL:        videoURL,
			LabURLs:         labURLs,
		}
		if exists {
			d.ID = prior.ID
		}
		if err := deps.DrillStore.Save(ctx, d); err != nil {
			slog.Error("drills_import_save_failed", "row", rowNum, "title", title, "err", err)
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: "save failed (see server log)"})
			continue
		}
		if exists {
			result.Updated++
		} else {
			existing[strings.ToLower(title)] = d
			result.Created++
		}
	}

	slog.Info("drills_import",
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

// ImportValidationError is returned when the CSV structure is invalid (e.g. missing required columns).
type ImportValidationError struct {
	Message string
}

// Error implements the error interface.
// PRE: e.Message is set.
// POST: returns the validation error message string.
// INVARIANT: message is never empty for a valid ImportValidationError.
func (e *ImportValidationError) Error() string {
	return e.Message
}
