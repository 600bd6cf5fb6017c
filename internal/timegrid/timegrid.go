// Package timegrid holds the pure geometry of the board's vertical time
// axis. Positions are expressed in a normalized 60-px-per-hour unit;
// callers rescale to the actual row height.
package timegrid

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// enDash is the range delimiter the sheet normally emits; plain hyphen is
// accepted as a fallback.
const enDash = "–"

// Position is a block's offset and extent on the time axis, in the
// normalized 60-px-per-hour unit. Values are NaN when the source range
// string was malformed; no clamping is applied, so a booking starting
// before day start has a negative Top.
type Position struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// ParseClock converts an "HH:MM" label to minutes since midnight.
// Malformed input yields NaN rather than an error: downstream layout math
// must stay total and render visibly broken instead of crashing.
func ParseClock(label string) float64 {
	parts := strings.Split(label, ":")
	if len(parts) != 2 {
		return math.NaN()
	}
	h, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
	m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errH != nil || errM != nil {
		return math.NaN()
	}
	return float64(h*60 + m)
}

// SplitRange splits a "HH:MM–HH:MM" range on the en-dash, falling back to
// a plain hyphen, and trims both parts. With no delimiter present the
// second part is empty and downstream arithmetic yields NaN.
func SplitRange(rng string) (start, end string) {
	var parts []string
	if strings.Contains(rng, enDash) {
		parts = strings.SplitN(rng, enDash, 2)
	} else {
		parts = strings.SplitN(rng, "-", 2)
	}
	start = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		end = strings.TrimSpace(parts[1])
	}
	return start, end
}

// BlockPosition computes a booking block's position for a time range
// relative to the day-start label.
func BlockPosition(rng, dayStart string) Position {
	start, end := SplitRange(rng)
	startMin := ParseClock(start)
	endMin := ParseClock(end)
	dayStartMin := ParseClock(dayStart)

	return Position{
		Top:    startMin - dayStartMin,
		Height: endMin - startMin,
	}
}

// NowPosition maps a wall-clock instant onto the axis, in the same unit as
// BlockPosition. Stateless; callers re-evaluate it on their own tick.
func NowPosition(dayStart string, now time.Time) float64 {
	minutes := float64(now.Hour()*60 + now.Minute())
	return minutes - ParseClock(dayStart)
}

// Slots returns the hourly labels from start to end inclusive. An end
// label at or before the start is taken to wrap past midnight, so the
// default 08:00 grid ends at "00:00".
func Slots(start, end string) []string {
	startMin := ParseClock(start)
	endMin := ParseClock(end)
	if math.IsNaN(startMin) || math.IsNaN(endMin) {
		return nil
	}
	if endMin <= startMin {
		endMin += 24 * 60
	}

	var labels []string
	for m := int(startMin); m <= int(endMin); m += 60 {
		labels = append(labels, fmt.Sprintf("%02d:%02d", (m/60)%24, m%60))
	}
	return labels
}
