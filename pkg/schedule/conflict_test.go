package schedule

import "testing"

func shift(id, emp int, day Weekday, hour, minutes, duration int) Shift {
	return Shift{ID: id, EmployeeID: emp, Day: day, StartHour: hour, StartMinutes: minutes, Duration: duration}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Shift
		want bool
	}{
		{
			name: "same slot same employee",
			a:    shift(1, 7, Monday, 10, 0, 4),
			b:    shift(2, 7, Monday, 10, 0, 4),
			want: true,
		},
		{
			name: "partial overlap",
			a:    shift(1, 7, Monday, 10, 0, 4),
			b:    shift(2, 7, Monday, 12, 30, 4),
			want: true,
		},
		{
			name: "back to back does not overlap",
			a:    shift(1, 7, Monday, 10, 0, 2),
			b:    shift(2, 7, Monday, 12, 0, 2),
			want: false,
		},
		{
			name: "different day",
			a:    shift(1, 7, Monday, 10, 0, 4),
			b:    shift(2, 7, Tuesday, 10, 0, 4),
			want: false,
		},
		{
			name: "different employee",
			a:    shift(1, 7, Monday, 10, 0, 4),
			b:    shift(2, 8, Monday, 10, 0, 4),
			want: false,
		},
		{
			name: "evening shift crossing midnight overlaps early slot",
			a:    shift(1, 7, Friday, 22, 0, 5),
			b:    shift(2, 7, Friday, 1, 0, 1),
			want: true,
		},
		{
			name: "evening shift ending at midnight misses early slot",
			a:    shift(1, 7, Friday, 22, 0, 2),
			b:    shift(2, 7, Friday, 0, 0, 1),
			want: false,
		},
		{
			name: "same id never overlaps itself",
			a:    shift(1, 7, Monday, 10, 0, 4),
			b:    shift(1, 7, Monday, 10, 0, 4),
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.a, tc.b); got != tc.want {
				t.Fatalf("Overlaps(a, b) = %v, expected %v", got, tc.want)
			}
			if got := Overlaps(tc.b, tc.a); got != tc.want {
				t.Fatalf("Overlaps(b, a) = %v, expected %v (not symmetric)", got, tc.want)
			}
		})
	}
}

func TestFindConflicts(t *testing.T) {
	shifts := []Shift{
		shift(1, 7, Monday, 10, 0, 4),
		shift(2, 7, Monday, 12, 0, 4),
		shift(3, 7, Tuesday, 10, 0, 4),
		shift(4, 8, Monday, 10, 0, 4),
		shift(5, 7, Monday, 13, 0, 2),
	}

	got := FindConflicts(shifts)
	if len(got) != 2 {
		t.Fatalf("expected 2 conflicts, got %d: %v", len(got), got)
	}
	if got[0].A.ID != 1 || got[0].B.ID != 2 {
		t.Fatalf("expected conflict (1, 2) first, got (%d, %d)", got[0].A.ID, got[0].B.ID)
	}
	if got[1].A.ID != 2 || got[1].B.ID != 5 {
		t.Fatalf("expected conflict (2, 5) second, got (%d, %d)", got[1].A.ID, got[1].B.ID)
	}
}

func TestFindConflictsNone(t *testing.T) {
	shifts := []Shift{
		shift(1, 7, Monday, 8, 0, 2),
		shift(2, 7, Monday, 10, 0, 2),
		shift(3, 7, Monday, 12, 0, 2),
	}
	if got := FindConflicts(shifts); len(got) != 0 {
		t.Fatalf("expected no conflicts, got %v", got)
	}
}
