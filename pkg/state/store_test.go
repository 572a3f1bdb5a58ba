package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rotaplan/rota/pkg/api"
	"github.com/rotaplan/rota/pkg/bus"
	"github.com/rotaplan/rota/pkg/schedule"
)

func emp(id int, name string, role schedule.Role, active bool) schedule.Employee {
	return schedule.Employee{ID: id, Name: name, Role: role, Active: active}
}

func shift(id, empID int, day schedule.Weekday, hour, minutes, duration int) schedule.Shift {
	return schedule.Shift{ID: id, EmployeeID: empID, Day: day, StartHour: hour, StartMinutes: minutes, Duration: duration}
}

func seedEmployee(t *testing.T, s *Store, id int) {
	t.Helper()
	if err := s.SetEmployee(emp(id, "Ana", schedule.RoleServer, true)); err != nil {
		t.Fatalf("seed employee %d: %v", id, err)
	}
}

func TestSetShiftRejectsInvalid(t *testing.T) {
	s := NewStore(nil)
	seedEmployee(t, s, 7)
	s.MarkClean()

	if err := s.SetShift(shift(1, 7, schedule.Monday, 5, 0, 4)); err == nil {
		t.Fatalf("expected invalid shift rejected")
	}
	if len(s.Shifts()) != 0 {
		t.Fatalf("expected store untouched after rejection")
	}
	if s.Dirty() {
		t.Fatalf("expected store still clean after rejection")
	}
}

func TestSetShiftRejectsUnknownEmployee(t *testing.T) {
	s := NewStore(nil)
	seedEmployee(t, s, 7)
	s.MarkClean()

	if err := s.SetShift(shift(1, 999, schedule.Monday, 10, 0, 2)); err == nil {
		t.Fatalf("expected shift referencing unknown employee rejected")
	}
	if len(s.Shifts()) != 0 {
		t.Fatalf("expected no dangling shift stored, got %v", s.Shifts())
	}
	if s.Dirty() {
		t.Fatalf("expected store still clean after rejection")
	}
}

func TestSetEmployeeRejectsInvalid(t *testing.T) {
	s := NewStore(nil)
	if err := s.SetEmployee(emp(0, "Ana", schedule.RoleServer, true)); err == nil {
		t.Fatalf("expected invalid employee rejected")
	}
	if len(s.Employees()) != 0 {
		t.Fatalf("expected store untouched after rejection")
	}
}

func TestDerivedIndicesFollowMoves(t *testing.T) {
	s := NewStore(nil)
	seedEmployee(t, s, 7)
	if err := s.SetShift(shift(1, 7, schedule.Monday, 10, 0, 4)); err != nil {
		t.Fatalf("expected set to succeed, got %v", err)
	}

	if got := s.ShiftsAt(schedule.Monday, 10, 0); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected shift 1 at monday 10:00, got %v", got)
	}

	moved := shift(1, 7, schedule.Tuesday, 12, 30, 4)
	if err := s.SetShift(moved); err != nil {
		t.Fatalf("expected move to succeed, got %v", err)
	}

	if got := s.ShiftsAt(schedule.Monday, 10, 0); len(got) != 0 {
		t.Fatalf("expected old cell emptied, got %v", got)
	}
	if got := s.ShiftsAt(schedule.Tuesday, 12, 30); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected shift 1 at tuesday 12:30, got %v", got)
	}
	if got := s.ShiftsFor(7); len(got) != 1 {
		t.Fatalf("expected one shift for employee 7, got %v", got)
	}
}

func TestDirtyTransitionsAndEvents(t *testing.T) {
	b := bus.New()
	s := NewStore(b)
	seedEmployee(t, s, 7)
	s.MarkClean()

	var dirtyEvents, savedEvents int
	b.Subscribe(bus.TopicStateDirty, func(any) error { dirtyEvents++; return nil })
	b.Subscribe(bus.TopicStateSaved, func(any) error { savedEvents++; return nil })

	s.SetShift(shift(1, 7, schedule.Monday, 10, 0, 4))
	s.SetShift(shift(2, 7, schedule.Tuesday, 10, 0, 4))
	if !s.Dirty() {
		t.Fatalf("expected dirty after mutations")
	}
	if dirtyEvents != 1 {
		t.Fatalf("expected a single dirty transition event, got %d", dirtyEvents)
	}

	s.MarkClean()
	if s.Dirty() {
		t.Fatalf("expected clean after MarkClean")
	}
	if savedEvents != 1 {
		t.Fatalf("expected one saved event, got %d", savedEvents)
	}
	if s.LastSaved().IsZero() {
		t.Fatalf("expected LastSaved recorded")
	}

	s.SetShift(shift(3, 7, schedule.Wednesday, 10, 0, 4))
	if dirtyEvents != 2 {
		t.Fatalf("expected a new dirty transition after MarkClean, got %d", dirtyEvents)
	}
}

func TestResetDirtyRestoresObservedFlag(t *testing.T) {
	s := NewStore(nil)
	seedEmployee(t, s, 7)
	s.MarkClean()

	was := s.Dirty()
	s.SetShift(shift(1, 7, schedule.Monday, 10, 0, 4))
	s.ResetDirty(was)
	if s.Dirty() {
		t.Fatalf("expected dirty flag restored to clean")
	}
}

func TestClearDropsRecordsAndIndices(t *testing.T) {
	s := NewStore(nil)
	seedEmployee(t, s, 7)
	s.SetShift(shift(1, 7, schedule.Monday, 10, 0, 4))

	s.Clear()
	if len(s.Employees()) != 0 || len(s.Shifts()) != 0 {
		t.Fatalf("expected empty store after Clear")
	}
	if got := s.ShiftsAt(schedule.Monday, 10, 0); len(got) != 0 {
		t.Fatalf("expected indices dropped, got %v", got)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s := NewStore(nil)
	s.SetEmployee(emp(7, "Ana", schedule.RoleManager, true))
	s.SetEmployee(emp(8, "Bo", schedule.RoleCook, true))
	s.SetShift(shift(1, 7, schedule.Monday, 10, 0, 4))
	s.SetShift(shift(2, 8, schedule.Friday, 22, 0, 4))

	snap := s.Export()
	if snap.Meta.Employees != 2 || snap.Meta.Shifts != 2 {
		t.Fatalf("expected meta totals 2/2, got %+v", snap.Meta)
	}

	restored := NewStore(nil)
	if err := restored.Import(snap); err != nil {
		t.Fatalf("expected import to succeed, got %v", err)
	}
	if len(restored.Employees()) != 2 || len(restored.Shifts()) != 2 {
		t.Fatalf("expected restored store to match")
	}
	if got := restored.ShiftsAt(schedule.Friday, 22, 0); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected indices rebuilt on import, got %v", got)
	}
	if restored.Dirty() {
		t.Fatalf("expected importing an export to leave the store clean")
	}
}

func TestImportRejectsBadSnapshotAtomically(t *testing.T) {
	s := NewStore(nil)
	s.SetEmployee(emp(7, "Ana", schedule.RoleManager, true))

	bad := api.Snapshot{
		Employees: []schedule.Employee{emp(8, "Bo", schedule.RoleCook, true)},
		Shifts:    []schedule.Shift{shift(1, 8, schedule.Monday, 4, 0, 2)},
	}
	if err := s.Import(bad); err == nil {
		t.Fatalf("expected import rejected")
	}
	if _, ok := s.Employee(7); !ok {
		t.Fatalf("expected original state preserved after rejected import")
	}
	if _, ok := s.Employee(8); ok {
		t.Fatalf("expected no partial import")
	}
}

func TestCleanCorrupted(t *testing.T) {
	s := NewStore(nil)
	s.SetEmployee(emp(7, "Ana", schedule.RoleManager, true))
	s.SetEmployee(emp(8, "deleted", schedule.RoleCook, true))
	s.SetEmployee(emp(9, "Supprimé", schedule.RoleServer, false))
	s.SetShift(shift(1, 7, schedule.Monday, 10, 0, 4))
	s.SetShift(shift(2, 8, schedule.Monday, 18, 0, 2))

	report := s.CleanCorrupted()
	if len(report.Employees) != 2 {
		t.Fatalf("expected 2 sentinel employees removed, got %v", report.Employees)
	}
	// Shift 2 pointed at a removed sentinel employee and must go with it.
	if len(report.Shifts) != 1 || report.Shifts[0].ID != 2 {
		t.Fatalf("expected the dangling shift removed, got %v", report.Shifts)
	}
	if len(s.Employees()) != 1 {
		t.Fatalf("expected only the real employee left")
	}
	if got := s.Shifts(); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only the valid shift left, got %v", got)
	}
}

type fakeSyncer struct {
	calls int
	fail  bool
	last  api.Snapshot
}

func (f *fakeSyncer) Sync(_ context.Context, snap api.Snapshot) error {
	f.calls++
	f.last = snap
	if f.fail {
		return errors.New("sync down")
	}
	return nil
}

func TestAutoSaverSavesOnlyWhenDirty(t *testing.T) {
	s := NewStore(nil)
	seedEmployee(t, s, 7)
	s.MarkClean()
	f := &fakeSyncer{}
	a := NewAutoSaver(s, f, nil)

	if err := a.SaveNow(context.Background()); err != nil {
		t.Fatalf("expected clean save to be a no-op, got %v", err)
	}
	if f.calls != 0 {
		t.Fatalf("expected no sync while clean, got %d", f.calls)
	}

	s.SetShift(shift(1, 7, schedule.Monday, 10, 0, 4))
	if err := a.SaveNow(context.Background()); err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}
	if f.calls != 1 || len(f.last.Shifts) != 1 {
		t.Fatalf("expected one sync carrying the shift, got %d calls", f.calls)
	}
	if s.Dirty() {
		t.Fatalf("expected store clean after successful save")
	}
}

func TestAutoSaverKeepsDirtyOnFailure(t *testing.T) {
	s := NewStore(nil)
	seedEmployee(t, s, 7)
	f := &fakeSyncer{fail: true}
	a := NewAutoSaver(s, f, nil)

	s.SetShift(shift(1, 7, schedule.Monday, 10, 0, 4))
	if err := a.SaveNow(context.Background()); err == nil {
		t.Fatalf("expected save failure surfaced")
	}
	if !s.Dirty() {
		t.Fatalf("expected store to stay dirty after failed save")
	}
}

func TestAutoSaverLoop(t *testing.T) {
	s := NewStore(nil)
	seedEmployee(t, s, 7)
	f := &fakeSyncer{}
	a := NewAutoSaver(s, f, nil, WithInterval(10*time.Millisecond))

	s.SetShift(shift(1, 7, schedule.Monday, 10, 0, 4))
	a.Start(context.Background())
	defer a.Stop()

	deadline := time.After(time.Second)
	for s.Dirty() {
		select {
		case <-deadline:
			t.Fatalf("expected auto-save to run within a second")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
