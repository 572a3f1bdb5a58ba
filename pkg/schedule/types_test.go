package schedule

import "testing"

func TestEmployeeValidate(t *testing.T) {
	tests := []struct {
		name    string
		emp     Employee
		wantErr bool
	}{
		{"valid", Employee{ID: 1, Name: "Ana", Role: RoleServer, Active: true}, false},
		{"zero id", Employee{Name: "Ana", Role: RoleServer}, true},
		{"negative id", Employee{ID: -2, Name: "Ana", Role: RoleServer}, true},
		{"blank name", Employee{ID: 1, Name: "   ", Role: RoleServer}, true},
		{"unknown role", Employee{ID: 1, Name: "Ana", Role: "pilot"}, true},
		{"negative rate", Employee{ID: 1, Name: "Ana", Role: RoleServer, HourlyRate: -12.5}, true},
		{"zero rate", Employee{ID: 1, Name: "Ana", Role: RoleServer, HourlyRate: 0}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.emp.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected an error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestShiftValidate(t *testing.T) {
	tests := []struct {
		name    string
		shift   Shift
		wantErr bool
	}{
		{"valid", shift(1, 7, Monday, 10, 0, 4), false},
		{"valid half slot", shift(1, 7, Monday, 10, 30, 4), false},
		{"valid after midnight", shift(1, 7, Friday, 1, 0, 2), false},
		{"zero id", shift(0, 7, Monday, 10, 0, 4), true},
		{"no employee", shift(1, 0, Monday, 10, 0, 4), true},
		{"bad day", Shift{ID: 1, EmployeeID: 7, Day: "someday", StartHour: 10, Duration: 4}, true},
		{"before opening", shift(1, 7, Monday, 5, 0, 4), true},
		{"bad minutes", shift(1, 7, Monday, 10, 15, 4), true},
		{"duration too short", shift(1, 7, Monday, 10, 0, 0), true},
		{"duration too long", shift(1, 7, Monday, 10, 0, 13), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.shift.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected an error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestStartOnTimelineWrapsPastMidnight(t *testing.T) {
	evening := shift(1, 7, Friday, 23, 30, 2)
	early := shift(2, 7, Friday, 1, 0, 1)

	if got := evening.StartOnTimeline(); got != 23*60+30 {
		t.Fatalf("expected 1410, got %d", got)
	}
	if got := early.StartOnTimeline(); got != 25*60 {
		t.Fatalf("expected 1500, got %d", got)
	}
	if early.StartOnTimeline() <= evening.StartOnTimeline() {
		t.Fatalf("expected 01:00 to sort after 23:30 on the service day")
	}
}

func TestSentinelName(t *testing.T) {
	for _, name := range []string{"deleted", "Deleted", " Supprimé ", "Employé"} {
		if !SentinelName(name) {
			t.Fatalf("expected %q to be a sentinel", name)
		}
	}
	if SentinelName("Ana") {
		t.Fatalf("expected a real name not to be a sentinel")
	}
}

func TestGridHoursOrder(t *testing.T) {
	hours := GridHours()
	if len(hours) != 19 {
		t.Fatalf("expected 19 rows, got %d", len(hours))
	}
	if hours[0] != 8 || hours[15] != 23 || hours[16] != 0 || hours[18] != 2 {
		t.Fatalf("unexpected row order: %v", hours)
	}
}
