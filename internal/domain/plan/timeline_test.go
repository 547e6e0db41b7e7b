package plan_test

import (
	"testing"

	"laxhq/internal/domain/plan"
)

func slots(durations ...int) []plan.TimeSlot {
	out := make([]plan.TimeSlot, 0, len(durations))
	for i, d := range durations {
		out = append(out, plan.TimeSlot{ID: string(rune('a' + i)), DurationMinutes: d})
	}
	return out
}

// TestComputeTimeline_EveningPractice verifies the derived clock times for a
// typical evening practice with setup time.
func TestComputeTimeline_EveningPractice(t *testing.T) {
	tl := plan.ComputeTimeline("18:00", 15, slots(10, 20, 15))

	wantStarts := []string{"18:15", "18:25", "18:45"}
	wantEnds := []string{"18:25", "18:45", "19:00"}
	for i := range wantStarts {
		if tl.SlotStartTimes[i] != wantStarts[i] {
			t.Errorf("slot %d start = %s, want %s", i, tl.SlotStartTimes[i], wantStarts[i])
		}
		if tl.SlotEndTimes[i] != wantEnds[i] {
			t.Errorf("slot %d end = %s, want %s", i, tl.SlotEndTimes[i], wantEnds[i])
		}
	}
	if tl.TotalUsedMinutes != 60 {
		t.Errorf("TotalUsedMinutes = %d, want 60", tl.TotalUsedMinutes)
	}
	if tl.EndTime != "19:00" {
		t.Errorf("EndTime = %s, want 19:00", tl.EndTime)
	}
}

// TestComputeTimeline_MidnightWraparound verifies the modulo-1440 rollover.
func TestComputeTimeline_MidnightWraparound(t *testing.T) {
	tl := plan.ComputeTimeline("23:30", 0, slots(90))

	if tl.EndTime != "01:00" {
		t.Errorf("EndTime = %s, want 01:00", tl.EndTime)
	}
	if tl.SlotStartTimes[0] != "23:30" {
		t.Errorf("slot start = %s, want 23:30", tl.SlotStartTimes[0])
	}
	if tl.SlotEndTimes[0] != "01:00" {
		t.Errorf("slot end = %s, want 01:00", tl.SlotEndTimes[0])
	}
}

// TestComputeTimeline_Additivity verifies each slot starts where the previous
// one ended and the end time is start + setup + sum of durations mod 1440.
func TestComputeTimeline_Additivity(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		setup     int
		durations []int
		wantEnd   string
		wantTotal int
	}{
		{name: "no slots", start: "07:00", setup: 0, durations: nil, wantEnd: "07:00", wantTotal: 0},
		{name: "setup only", start: "07:00", setup: 20, durations: nil, wantEnd: "07:20", wantTotal: 0},
		{name: "single slot", start: "07:00", setup: 0, durations: []int{45}, wantEnd: "07:45", wantTotal: 45},
		{name: "many slots", start: "06:00", setup: 10, durations: []int{15, 15, 30, 20}, wantEnd: "07:30", wantTotal: 80},
		{name: "exactly midnight", start: "22:00", setup: 0, durations: []int{120}, wantEnd: "00:00", wantTotal: 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := plan.ComputeTimeline(tt.start, tt.setup, slots(tt.durations...))
			if tl.EndTime != tt.wantEnd {
				t.Errorf("EndTime = %s, want %s", tl.EndTime, tt.wantEnd)
			}
			if tl.TotalUsedMinutes != tt.wantTotal {
				t.Errorf("TotalUsedMinutes = %d, want %d", tl.TotalUsedMinutes, tt.wantTotal)
			}
			for i := 1; i < len(tl.SlotStartTimes); i++ {
				if tl.SlotStartTimes[i] != tl.SlotEndTimes[i-1] {
					t.Errorf("slot %d start %s does not equal slot %d end %s",
						i, tl.SlotStartTimes[i], i-1, tl.SlotEndTimes[i-1])
				}
			}
		})
	}
}

// TestComputeTimeline_DefensiveCoercion verifies that negative durations and
// malformed clock strings are coerced rather than rejected.
func TestComputeTimeline_DefensiveCoercion(t *testing.T) {
	tl := plan.ComputeTimeline("garbage", -10, slots(-30, 60))

	if tl.TotalUsedMinutes != 60 {
		t.Errorf("TotalUsedMinutes = %d, want 60 (negative slot coerced to 0)", tl.TotalUsedMinutes)
	}
	// Malformed start parses as 00:00 and negative setup is coerced to 0.
	if tl.SlotStartTimes[0] != "00:00" {
		t.Errorf("first slot start = %s, want 00:00", tl.SlotStartTimes[0])
	}
	if tl.EndTime != "01:00" {
		t.Errorf("EndTime = %s, want 01:00", tl.EndTime)
	}
}
