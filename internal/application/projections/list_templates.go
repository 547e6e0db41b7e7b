package projections

import (
	"context"
	"sort"

	templateStore "laxhq/internal/adapters/storage/template"
	"laxhq/internal/domain/template"
)

// ListTemplatesQuery carries query parameters. An empty AgeGroup lists
// everything; otherwise templates for that age group plus "all" templates.
type ListTemplatesQuery struct {
	AgeGroup     string
	OfficialOnly bool
}

// TemplateSummary is one row of the template picker.
type TemplateSummary struct {
	ID              string
	Name            string
	Description     string
	AgeGroup        string
	DurationMinutes int
	SlotCount       int
	Official        bool
}

// ListTemplatesDeps holds dependencies for the template list projection.
type ListTemplatesDeps struct {
	TemplateStore templateStore.Store
}

// QueryListTemplates returns template summaries, official ones first, then
// by name.
func QueryListTemplates(ctx context.Context, query ListTemplatesQuery, deps ListTemplatesDeps) ([]TemplateSummary, error) {
	templates, err := deps.TemplateStore.List(ctx)
	if err != nil {
		return nil, err
	}

	var out []TemplateSummary
	for _, t := range templates {
		if query.OfficialOnly && !t.Official {
			continue
		}
		if query.AgeGroup != "" && t.AgeGroup != query.AgeGroup && t.AgeGroup != template.AgeGroupAll {
			continue
		}
		out = append(out, TemplateSummary{
			ID:              t.ID,
			Name:            t.Name,
			Description:     t.Description,
			AgeGroup:        t.AgeGroup,
			DurationMinutes: t.DurationMinutes,
			SlotCount:       len(t.TimeSlots),
			Official:        t.Official,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Official != out[j].Official {
			return out[i].Official
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}
