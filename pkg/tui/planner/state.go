package planner

import (
	"github.com/rotaplan/rota/pkg/schedule"
)

// Slot is one half-hour row of the grid.
type Slot struct {
	Hour    int
	Minutes int
}

// Slots returns every grid row in display order, two per opening hour.
func Slots() []Slot {
	hours := schedule.GridHours()
	slots := make([]Slot, 0, len(hours)*2)
	for _, h := range hours {
		slots = append(slots, Slot{Hour: h, Minutes: 0}, Slot{Hour: h, Minutes: 30})
	}
	return slots
}

// State tracks the cursor position on the week grid and the visible row
// window. It is pure; the model feeds it input and reads it back for View.
type State struct {
	days  []schedule.Weekday
	slots []Slot

	dayIndex  int
	slotIndex int

	// virtual scroll offset in rows
	scrollOffset int
	viewHeight   int
}

// NewState constructs a grid state covering the full week.
func NewState() *State {
	return &State{
		days:  schedule.Weekdays(),
		slots: Slots(),
	}
}

// Cursor returns the active day and slot indices.
func (s *State) Cursor() (int, int) {
	return s.dayIndex, s.slotIndex
}

// Cell returns the grid cell under the cursor.
func (s *State) Cell() (schedule.Weekday, int, int) {
	slot := s.slots[s.slotIndex]
	return s.days[s.dayIndex], slot.Hour, slot.Minutes
}

// Days returns the grid columns.
func (s *State) Days() []schedule.Weekday {
	return s.days
}

// RowCount returns the number of grid rows.
func (s *State) RowCount() int {
	return len(s.slots)
}

// Row returns the slot at index i.
func (s *State) Row(i int) Slot {
	return s.slots[i]
}

// MoveDay moves the cursor across columns, clamping at the week edges.
func (s *State) MoveDay(delta int) bool {
	next := clamp(s.dayIndex+delta, 0, len(s.days)-1)
	if next == s.dayIndex {
		return false
	}
	s.dayIndex = next
	return true
}

// MoveSlot moves the cursor across rows, clamping at the grid edges.
func (s *State) MoveSlot(delta int) bool {
	next := clamp(s.slotIndex+delta, 0, len(s.slots)-1)
	if next == s.slotIndex {
		return false
	}
	s.slotIndex = next
	s.ensureVisible()
	return true
}

// SetCursor positions the cursor, clamping to the grid.
func (s *State) SetCursor(dayIdx, slotIdx int) {
	s.dayIndex = clamp(dayIdx, 0, len(s.days)-1)
	s.slotIndex = clamp(slotIdx, 0, len(s.slots)-1)
	s.ensureVisible()
}

// MoveTo places the cursor on the cell holding the given shift start.
func (s *State) MoveTo(sh schedule.Shift) {
	if idx := schedule.DayIndex(sh.Day); idx >= 0 {
		s.dayIndex = idx
	}
	for i, slot := range s.slots {
		if slot.Hour == sh.StartHour && slot.Minutes == sh.StartMinutes {
			s.slotIndex = i
			break
		}
	}
	s.ensureVisible()
}

// SetViewHeight records how many rows fit on screen.
func (s *State) SetViewHeight(rows int) {
	s.viewHeight = rows
	s.ensureVisible()
}

// VisibleRows returns the window of row indices to render.
func (s *State) VisibleRows() (int, int) {
	if s.viewHeight <= 0 || s.viewHeight >= len(s.slots) {
		return 0, len(s.slots)
	}
	end := s.scrollOffset + s.viewHeight
	if end > len(s.slots) {
		end = len(s.slots)
	}
	return s.scrollOffset, end
}

// ensureVisible adjusts the scroll offset so the cursor row stays on screen.
func (s *State) ensureVisible() {
	if s.viewHeight <= 0 || s.viewHeight >= len(s.slots) {
		s.scrollOffset = 0
		return
	}
	if s.slotIndex < s.scrollOffset {
		s.scrollOffset = s.slotIndex
	}
	if s.slotIndex >= s.scrollOffset+s.viewHeight {
		s.scrollOffset = s.slotIndex - s.viewHeight + 1
	}
	if s.scrollOffset < 0 {
		s.scrollOffset = 0
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
