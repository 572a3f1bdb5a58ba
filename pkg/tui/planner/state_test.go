package planner

import (
	"testing"

	"github.com/rotaplan/rota/pkg/schedule"
)

func TestSlotsCoverOpeningHours(t *testing.T) {
	slots := Slots()
	if len(slots) != 38 {
		t.Fatalf("expected 38 half-hour rows, got %d", len(slots))
	}
	if slots[0] != (Slot{Hour: 8, Minutes: 0}) {
		t.Fatalf("expected first row at 08:00, got %+v", slots[0])
	}
	last := slots[len(slots)-1]
	if last != (Slot{Hour: 2, Minutes: 30}) {
		t.Fatalf("expected last row at 02:30, got %+v", last)
	}
}

func TestMoveClampsAtEdges(t *testing.T) {
	s := NewState()

	if s.MoveDay(-1) {
		t.Fatalf("expected no move past monday")
	}
	if !s.MoveDay(1) {
		t.Fatalf("expected move to tuesday")
	}
	s.SetCursor(100, 100)
	day, hour, minutes := s.Cell()
	if day != schedule.Sunday || hour != 2 || minutes != 30 {
		t.Fatalf("expected clamp to last cell, got %s %d:%d", day, hour, minutes)
	}
	if s.MoveSlot(1) {
		t.Fatalf("expected no move past the last row")
	}
}

func TestMoveToShift(t *testing.T) {
	s := NewState()
	s.MoveTo(schedule.Shift{Day: schedule.Friday, StartHour: 23, StartMinutes: 30})

	day, hour, minutes := s.Cell()
	if day != schedule.Friday || hour != 23 || minutes != 30 {
		t.Fatalf("expected cursor on friday 23:30, got %s %d:%d", day, hour, minutes)
	}
}

func TestScrollFollowsCursor(t *testing.T) {
	s := NewState()
	s.SetViewHeight(10)

	start, end := s.VisibleRows()
	if start != 0 || end != 10 {
		t.Fatalf("expected window [0,10), got [%d,%d)", start, end)
	}

	s.SetCursor(0, 20)
	start, end = s.VisibleRows()
	if start != 11 || end != 21 {
		t.Fatalf("expected window to follow cursor, got [%d,%d)", start, end)
	}

	s.SetCursor(0, 0)
	start, _ = s.VisibleRows()
	if start != 0 {
		t.Fatalf("expected window back at top, got %d", start)
	}
}
