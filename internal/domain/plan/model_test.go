package plan_test

import (
	"testing"
	"time"

	"laxhq/internal/domain/plan"
)

// TestInfo_Validate tests validation of practice metadata.
func TestInfo_Validate(t *testing.T) {
	tests := []struct {
		name    string
		info    plan.Info
		wantErr bool
	}{
		{
			name:    "valid info",
			info:    plan.Info{Date: "2026-03-14", StartTime: "18:00", Field: plan.FieldTurf, DurationMinutes: 90},
			wantErr: false,
		},
		{
			name:    "empty date",
			info:    plan.Info{Date: "", StartTime: "18:00", Field: plan.FieldTurf},
			wantErr: true,
		},
		{
			name:    "empty start time",
			info:    plan.Info{Date: "2026-03-14", StartTime: "", Field: plan.FieldTurf},
			wantErr: true,
		},
		{
			name:    "invalid field",
			info:    plan.Info{Date: "2026-03-14", StartTime: "18:00", Field: "Beach"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.info.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Info.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestNewPlan_Defaults verifies the editor defaults.
func TestNewPlan_Defaults(t *testing.T) {
	today := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	p := plan.NewPlan(today)

	if p.Info.Date != "2026-08-30" {
		t.Errorf("Date = %s, want 2026-08-30", p.Info.Date)
	}
	if p.Info.StartTime != plan.DefaultStartTime {
		t.Errorf("StartTime = %s, want %s", p.Info.StartTime, plan.DefaultStartTime)
	}
	if p.Info.Field != plan.FieldTurf {
		t.Errorf("Field = %s, want Turf", p.Info.Field)
	}
	if p.Info.DurationMinutes != plan.DefaultDurationMinutes {
		t.Errorf("DurationMinutes = %d, want %d", p.Info.DurationMinutes, plan.DefaultDurationMinutes)
	}
	if len(p.TimeSlots) != 0 || len(p.Strategies) != 0 {
		t.Error("new plan should have no slots or strategies")
	}
}

// TestTimeSlot_RecalcDuration verifies the slot takes the longest parallel drill.
func TestTimeSlot_RecalcDuration(t *testing.T) {
	slot := plan.TimeSlot{
		ID: "s1",
		Drills: []plan.DrillInstance{
			{PracticeID: "p1", CustomDuration: 10},
			{PracticeID: "p2", CustomDuration: 25},
			{PracticeID: "p3", CustomDuration: 15},
		},
	}
	slot.RecalcDuration()
	if slot.DurationMinutes != 25 {
		t.Errorf("DurationMinutes = %d, want 25", slot.DurationMinutes)
	}
}

// TestPlan_UsedMinutes verifies used duration and the over-allotted warning.
func TestPlan_UsedMinutes(t *testing.T) {
	p := plan.Plan{
		Info:         plan.Info{DurationMinutes: 60},
		SetupMinutes: 15,
		TimeSlots: []plan.TimeSlot{
			{ID: "s1", DurationMinutes: 30},
			{ID: "s2", DurationMinutes: 20},
			{ID: "s3", DurationMinutes: -5}, // defensive: coerced to 0
		},
	}

	if got := p.UsedMinutes(); got != 65 {
		t.Errorf("UsedMinutes() = %d, want 65", got)
	}
	if !p.OverAllotted() {
		t.Error("OverAllotted() = false, want true (65 used > 60 allotted)")
	}

	p.Info.DurationMinutes = 90
	if p.OverAllotted() {
		t.Error("OverAllotted() = true, want false (65 used <= 90 allotted)")
	}
}

// TestPlan_HasStrategy tests active strategy membership.
func TestPlan_HasStrategy(t *testing.T) {
	p := plan.Plan{
		Strategies: []plan.SelectedStrategy{{StrategyID: "st-1", Name: "Backer Zone"}},
	}
	if !p.HasStrategy("st-1") {
		t.Error("HasStrategy(st-1) = false, want true")
	}
	if p.HasStrategy("st-2") {
		t.Error("HasStrategy(st-2) = true, want false")
	}
}
