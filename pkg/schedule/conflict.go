package schedule

import "sort"

// Conflict is a pair of overlapping shifts for the same employee.
type Conflict struct {
	A Shift
	B Shift
}

// Overlaps reports whether two shifts collide: same employee, same day, and
// overlapping half-open time intervals. A shift never overlaps itself, and
// back-to-back shifts (one ending exactly when the other starts) do not
// overlap.
func Overlaps(a, b Shift) bool {
	if a.ID == b.ID {
		return false
	}
	if a.EmployeeID != b.EmployeeID || a.Day != b.Day {
		return false
	}
	return a.StartOnTimeline() < b.EndOnTimeline() && b.StartOnTimeline() < a.EndOnTimeline()
}

// FindConflicts returns every conflicting pair among shifts, each pair
// reported once. Output is ordered by the first shift's position in the week
// so repeated runs over the same data report identically.
func FindConflicts(shifts []Shift) []Conflict {
	var conflicts []Conflict
	for i := 0; i < len(shifts); i++ {
		for j := i + 1; j < len(shifts); j++ {
			if Overlaps(shifts[i], shifts[j]) {
				a, b := shifts[i], shifts[j]
				if less(b, a) {
					a, b = b, a
				}
				conflicts = append(conflicts, Conflict{A: a, B: b})
			}
		}
	}
	sort.SliceStable(conflicts, func(i, j int) bool {
		return less(conflicts[i].A, conflicts[j].A)
	})
	return conflicts
}

// SortShifts orders shifts by day, start time, then id.
func SortShifts(shifts []Shift) {
	sort.SliceStable(shifts, func(i, j int) bool {
		return less(shifts[i], shifts[j])
	})
}

func less(a, b Shift) bool {
	if di, dj := DayIndex(a.Day), DayIndex(b.Day); di != dj {
		return di < dj
	}
	if si, sj := a.StartOnTimeline(), b.StartOnTimeline(); si != sj {
		return si < sj
	}
	return a.ID < b.ID
}
