package plan

import (
	"fmt"
	"strconv"
	"strings"
)

// minutesPerDay bounds all clock arithmetic; times wrap at midnight.
const minutesPerDay = 24 * 60

// Timeline is the derived schedule for an ordered slot sequence: a clock
// start and end per slot, the total drill time and the practice end time.
type Timeline struct {
	SlotStartTimes   []string
	SlotEndTimes     []string
	TotalUsedMinutes int
	EndTime          string
}

// ComputeTimeline walks the ordered slots additively: the first slot starts
// at startTime+setupMinutes, each later slot starts where the previous one
// ended. All arithmetic is minutes-of-day modulo 1440 so a practice crossing
// midnight rolls over rather than overflowing.
// PRE: none — malformed or negative inputs are coerced to 0, never rejected
// POST: len(SlotStartTimes) == len(SlotEndTimes) == len(slots)
func ComputeTimeline(startTime string, setupMinutes int, slots []TimeSlot) Timeline {
	cursor := parseClock(startTime) + coerceMinutes(setupMinutes)

	tl := Timeline{
		SlotStartTimes: make([]string, 0, len(slots)),
		SlotEndTimes:   make([]string, 0, len(slots)),
	}
	for _, slot := range slots {
		d := coerceMinutes(slot.DurationMinutes)
		tl.SlotStartTimes = append(tl.SlotStartTimes, formatClock(cursor))
		cursor += d
		tl.SlotEndTimes = append(tl.SlotEndTimes, formatClock(cursor))
		tl.TotalUsedMinutes += d
	}
	tl.EndTime = formatClock(cursor)
	return tl
}

// parseClock converts "HH:MM" to minutes of day. Malformed input yields 0.
func parseClock(clock string) int {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0
	}
	return wrapClock(hours*60 + minutes)
}

// formatClock converts minutes of day back to "HH:MM", wrapping at midnight.
func formatClock(minutes int) string {
	m := wrapClock(minutes)
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func wrapClock(minutes int) int {
	m := minutes % minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return m
}

// coerceMinutes clamps negative durations to 0 before accumulation.
func coerceMinutes(minutes int) int {
	if minutes < 0 {
		return 0
	}
	return minutes
}
