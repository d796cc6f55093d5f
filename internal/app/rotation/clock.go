// Package rotation provides the rotation clock, track scorer, and per-session
// selection state.
package rotation

import (
	"time"

	"github.com/mwindeman/djradio/internal/domain/station"
)

// Slot is a rotation clock slot category.
type Slot string

const (
	SlotCurrent   Slot = "current"
	SlotRecurrent Slot = "recurrent"
	SlotGold      Slot = "gold"
)

// Age boundaries for the rotation categories, in years.
const (
	currentMaxAge   = 2
	recurrentMaxAge = 8
)

// pattern is the fixed repeating slot sequence: 7 current, 3 recurrent,
// 2 gold per period, giving roughly a 58/25/17 long-run mix while allowing
// bursts of consecutive current slots.
var pattern = [12]Slot{
	SlotCurrent, SlotCurrent, SlotRecurrent, SlotGold,
	SlotCurrent, SlotRecurrent, SlotCurrent, SlotGold,
	SlotCurrent, SlotCurrent, SlotRecurrent, SlotGold,
}

// PatternLength is the rotation clock period.
const PatternLength = len(pattern)

// Clock tracks the position inside the rotation pattern. It advances by one
// slot every time a track is chosen, wrapping modulo the pattern length.
type Clock struct {
	pos int
}

// Slot returns the slot at the current position.
func (c *Clock) Slot() Slot {
	return pattern[c.pos]
}

// Advance moves the clock one position forward.
func (c *Clock) Advance() {
	c.pos = (c.pos + 1) % PatternLength
}

// Position returns the current clock position.
func (c *Clock) Position() int {
	return c.pos
}

// Reset moves the clock back to the start of the pattern.
func (c *Clock) Reset() {
	c.pos = 0
}

// YearWindow returns the release-year window for a slot, clamped to the
// station's configured year range.
func YearWindow(slot Slot, st *station.Profile, now time.Time) station.Range {
	year := now.Year()
	var w station.Range
	switch slot {
	case SlotCurrent:
		w = station.Range{Min: year - currentMaxAge, Max: year}
	case SlotRecurrent:
		w = station.Range{Min: year - recurrentMaxAge, Max: year - currentMaxAge - 1}
	default:
		w = station.Range{Min: st.YearRange.Min, Max: year - recurrentMaxAge - 1}
	}
	if w.Min < st.YearRange.Min {
		w.Min = st.YearRange.Min
	}
	if w.Max > st.YearRange.Max {
		w.Max = st.YearRange.Max
	}
	if w.Min > w.Max {
		w.Min = w.Max
	}
	return w
}

// slotMatches reports whether a track fits the slot's age and popularity
// criteria, and the bonus awarded when it does.
func slotBonus(slot Slot, age, popularity int) float64 {
	switch slot {
	case SlotCurrent:
		if age <= currentMaxAge && popularity >= 60 {
			return 0.3
		}
	case SlotRecurrent:
		if age > currentMaxAge && age <= recurrentMaxAge && popularity >= 40 {
			return 0.25
		}
	case SlotGold:
		if age > recurrentMaxAge {
			return 0.2
		}
	}
	return 0
}
