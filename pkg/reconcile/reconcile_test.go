package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/rotaplan/rota/pkg/schedule"
	"github.com/rotaplan/rota/pkg/state"
)

type fakeRemote struct {
	reassigned map[int]int
	deleted    []int
	removed    []int

	failReassign map[int]bool
	failDelete   map[int]bool
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		reassigned:   map[int]int{},
		failReassign: map[int]bool{},
		failDelete:   map[int]bool{},
	}
}

func (f *fakeRemote) ReassignShift(_ context.Context, shiftID, employeeID int) error {
	if f.failReassign[shiftID] {
		return errors.New("reassign refused")
	}
	f.reassigned[shiftID] = employeeID
	return nil
}

func (f *fakeRemote) DeleteShift(_ context.Context, id int) error {
	if f.failDelete[id] {
		return errors.New("delete refused")
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRemote) DeleteEmployee(_ context.Context, id int) error {
	f.removed = append(f.removed, id)
	return nil
}

func seedStore(t *testing.T) *state.Store {
	t.Helper()
	s := state.NewStore(nil)
	employees := []schedule.Employee{
		{ID: 1, Name: "Ana", Role: schedule.RoleManager, Active: true},
		{ID: 2, Name: "Bo", Role: schedule.RoleCook, Active: true},
		{ID: 3, Name: "Cleo", Role: schedule.RoleServer, Active: false},
		{ID: 4, Name: "deleted", Role: schedule.RoleServer, Active: true},
		{ID: 99, Name: "Zed", Role: schedule.RoleServer, Active: true},
	}
	for _, e := range employees {
		if err := s.SetEmployee(e); err != nil {
			t.Fatalf("seed employee: %v", err)
		}
	}
	shifts := []schedule.Shift{
		{ID: 10, EmployeeID: 1, Day: schedule.Monday, StartHour: 10, Duration: 4},
		{ID: 11, EmployeeID: 3, Day: schedule.Tuesday, StartHour: 10, Duration: 4},
		{ID: 12, EmployeeID: 99, Day: schedule.Wednesday, StartHour: 10, Duration: 4},
	}
	for _, sh := range shifts {
		if err := s.SetShift(sh); err != nil {
			t.Fatalf("seed shift: %v", err)
		}
	}
	// Employee 99 was deleted elsewhere; shift 12 is the resulting orphan.
	s.RemoveEmployee(99)
	return s
}

func TestAnalyzeClassifiesRecords(t *testing.T) {
	r := New(seedStore(t), newFakeRemote(), nil)

	report := r.Analyze()
	if len(report.Active) != 2 {
		t.Fatalf("expected 2 active employees, got %v", report.Active)
	}
	if len(report.Inactive) != 1 || report.Inactive[0].ID != 3 {
		t.Fatalf("expected employee 3 inactive, got %v", report.Inactive)
	}
	if len(report.Sentinels) != 1 || report.Sentinels[0].ID != 4 {
		t.Fatalf("expected employee 4 as sentinel, got %v", report.Sentinels)
	}
	if len(report.Orphans) != 2 {
		t.Fatalf("expected shifts 11 and 12 orphaned, got %v", report.Orphans)
	}
	if report.Clean() {
		t.Fatalf("expected report not clean")
	}
}

func TestRepairOrphansPrefersManager(t *testing.T) {
	remote := newFakeRemote()
	r := New(seedStore(t), remote, nil)

	report := r.RepairOrphans(context.Background())
	if len(report.Reassigned) != 2 {
		t.Fatalf("expected 2 reassignments, got %v", report.Reassigned)
	}
	for _, sh := range report.Reassigned {
		if sh.EmployeeID != 1 {
			t.Fatalf("expected reassignment to manager 1, got %d", sh.EmployeeID)
		}
	}
	if len(remote.deleted) != 0 {
		t.Fatalf("expected no deletions, got %v", remote.deleted)
	}
}

func TestRepairOrphansFallsBackToFirstActive(t *testing.T) {
	s := state.NewStore(nil)
	s.SetEmployee(schedule.Employee{ID: 2, Name: "Bo", Role: schedule.RoleCook, Active: true})
	s.SetEmployee(schedule.Employee{ID: 99, Name: "Zed", Role: schedule.RoleServer, Active: true})
	s.SetShift(schedule.Shift{ID: 12, EmployeeID: 99, Day: schedule.Monday, StartHour: 10, Duration: 4})
	s.RemoveEmployee(99)
	remote := newFakeRemote()

	report := New(s, remote, nil).RepairOrphans(context.Background())
	if len(report.Reassigned) != 1 || remote.reassigned[12] != 2 {
		t.Fatalf("expected orphan reassigned to first active employee, got %+v", remote.reassigned)
	}
}

func TestRepairOrphansDeletesWhenNobodyCanTakeThem(t *testing.T) {
	s := state.NewStore(nil)
	s.SetEmployee(schedule.Employee{ID: 99, Name: "Zed", Role: schedule.RoleServer, Active: true})
	s.SetShift(schedule.Shift{ID: 12, EmployeeID: 99, Day: schedule.Monday, StartHour: 10, Duration: 4})
	s.RemoveEmployee(99)
	remote := newFakeRemote()

	report := New(s, remote, nil).RepairOrphans(context.Background())
	if len(report.Deleted) != 1 || remote.deleted[0] != 12 {
		t.Fatalf("expected orphan deleted, got %+v", report)
	}
	if _, ok := s.Shift(12); ok {
		t.Fatalf("expected the deleted orphan dropped locally too")
	}
}

func TestRepairContinuesPastFailures(t *testing.T) {
	remote := newFakeRemote()
	remote.failReassign[11] = true
	remote.failDelete[11] = true
	r := New(seedStore(t), remote, nil)

	report := r.RepairOrphans(context.Background())
	if len(report.Errors) != 2 {
		t.Fatalf("expected reassign and delete failures recorded, got %v", report.Errors)
	}
	if remote.reassigned[12] != 1 {
		t.Fatalf("expected shift 12 still repaired after shift 11 failed, got %+v", remote.reassigned)
	}
}

func TestRemoveInactive(t *testing.T) {
	remote := newFakeRemote()
	r := New(seedStore(t), remote, nil)

	report := r.RemoveInactive(context.Background())
	if len(report.Removed) != 2 {
		t.Fatalf("expected inactive and sentinel employees removed, got %v", report.Removed)
	}
	got := map[int]bool{}
	for _, id := range remote.removed {
		got[id] = true
	}
	if !got[3] || !got[4] {
		t.Fatalf("expected employees 3 and 4 removed, got %v", remote.removed)
	}
}

func TestExecuteAllLeavesStoreConsistent(t *testing.T) {
	s := seedStore(t)
	remote := newFakeRemote()
	r := New(s, remote, nil)

	final := r.ExecuteAll(context.Background())
	if !final.Clean() {
		t.Fatalf("expected the final analysis clean after repairs, got %+v", final)
	}
	if len(final.Orphans) != 0 {
		t.Fatalf("expected repaired orphans gone from the final report, got %v", final.Orphans)
	}
	for _, id := range []int{11, 12} {
		sh, ok := s.Shift(id)
		if !ok || sh.EmployeeID != 1 {
			t.Fatalf("expected shift %d reassigned to manager 1 locally, got %+v ok=%v", id, sh, ok)
		}
	}
	for _, id := range []int{3, 4} {
		if _, ok := s.Employee(id); ok {
			t.Fatalf("expected employee %d removed locally", id)
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		min  float64
		max  float64
	}{
		{"Ana", "Ana", 1, 1},
		{"Ana", "ana ", 1, 1},
		{"Jean-Pierre", "Jean Pierre", 0.85, 1},
		{"Ana", "Bo", 0, 0.4},
		{"", "", 1, 1},
	}
	for _, tc := range tests {
		got := Similarity(tc.a, tc.b)
		if got < tc.min || got > tc.max {
			t.Fatalf("Similarity(%q, %q) = %v, expected within [%v, %v]", tc.a, tc.b, got, tc.min, tc.max)
		}
	}
}

func TestBestMatchRequiresThreshold(t *testing.T) {
	active := []schedule.Employee{
		{ID: 1, Name: "Amelie", Role: schedule.RoleServer, Active: true},
		{ID: 2, Name: "Bo", Role: schedule.RoleCook, Active: true},
	}

	e, score, ok := BestMatch("Amelia", active)
	if !ok || e.ID != 1 {
		t.Fatalf("expected match on Amelie, got %+v ok=%v", e, ok)
	}
	if score <= MatchThreshold {
		t.Fatalf("expected score above threshold, got %v", score)
	}

	if _, _, ok := BestMatch("Xzqw", active); ok {
		t.Fatalf("expected no match for a dissimilar name")
	}
}
