package orchestrators

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"laxhq/internal/domain/plan"
)

var planMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// RenderPlanMarkdown formats a plan as a printable Markdown document: the
// practice header, the computed schedule table, goals, strategies and notes.
func RenderPlanMarkdown(p plan.Plan) string {
	tl := plan.ComputeTimeline(p.Info.StartTime, p.SetupMinutes, p.TimeSlots)

	var b strings.Builder
	title := p.Info.Name
	if title == "" {
		title = "Practice Plan"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**Date:** %s | **Start:** %s | **Field:** %s | **Allotted:** %d min\n\n",
		p.Info.Date, p.Info.StartTime, p.Info.Field, p.Info.DurationMinutes)

	if p.SetupMinutes > 0 {
		fmt.Fprintf(&b, "Setup: %d min before the first drill", p.SetupMinutes)
		if len(p.SetupNotes) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(p.SetupNotes, "; "))
		}
		b.WriteString("\n\n")
	}

	if len(p.TimeSlots) > 0 {
		b.WriteString("| Time | Drills | Minutes |\n|---|---|---|\n")
		for i, slot := range p.TimeSlots {
			var names []string
			for _, d := range slot.Drills {
				name := d.Title
				if d.Notes != "" {
					name += " (" + d.Notes + ")"
				}
				names = append(names, name)
			}
			window := ""
			if i < len(tl.SlotStartTimes) {
				window = tl.SlotStartTimes[i] + " - " + tl.SlotEndTimes[i]
			}
			fmt.Fprintf(&b, "| %s | %s | %d |\n", window, strings.Join(names, " / "), slot.DurationMinutes)
		}
		fmt.Fprintf(&b, "\nEnds %s, %d min used", tl.EndTime, tl.TotalUsedMinutes)
		if p.OverAllotted() {
			fmt.Fprintf(&b, " (over the %d min allotted)", p.Info.DurationMinutes)
		}
		b.WriteString("\n\n")
	}

	goals := []struct{ label, text string }{
		{"Coaching", p.Goals.Coaching},
		{"Offense", p.Goals.Offensive},
		{"Defense", p.Goals.Defensive},
		{"Goalie", p.Goals.Goalie},
		{"Face-off", p.Goals.FaceOff},
	}
	wroteGoalHeader := false
	for _, g := range goals {
		if g.text == "" {
			continue
		}
		if !wroteGoalHeader {
			b.WriteString("## Goals\n\n")
			wroteGoalHeader = true
		}
		fmt.Fprintf(&b, "- **%s:** %s\n", g.label, g.text)
	}
	if wroteGoalHeader {
		b.WriteString("\n")
	}

	if len(p.Strategies) > 0 {
		b.WriteString("## Strategies\n\n")
		for _, s := range p.Strategies {
			fmt.Fprintf(&b, "- %s\n", s.Name)
		}
		b.WriteString("\n")
	}

	if p.PracticeNotes != "" {
		fmt.Fprintf(&b, "## Notes\n\n%s\n", p.PracticeNotes)
	}

	return b.String()
}

// RenderPlanHTML converts the Markdown rendering to HTML for email bodies
// and the printable plan view.
func RenderPlanHTML(p plan.Plan) (string, error) {
	var out bytes.Buffer
	if err := planMarkdown.Convert([]byte(RenderPlanMarkdown(p)), &out); err != nil {
		return "", fmt.Errorf("rendering plan: %w", err)
	}
	return out.String(), nil
}
