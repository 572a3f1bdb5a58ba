package state

import (
	"fmt"
	"time"

	"github.com/rotaplan/rota/pkg/api"
	"github.com/rotaplan/rota/pkg/schedule"
)

// SnapshotVersion tags exported data so future imports can migrate.
const SnapshotVersion = "2.0"

// Export captures the full store contents as a sync snapshot.
func (s *Store) Export() api.Snapshot {
	employees := s.Employees()
	shifts := s.Shifts()
	return api.Snapshot{
		Employees: employees,
		Shifts:    shifts,
		Meta: api.SnapshotMeta{
			ExportedAt: time.Now(),
			Version:    SnapshotVersion,
			Employees:  len(employees),
			Shifts:     len(shifts),
		},
	}
}

// Import validates every record in snap and then replaces the store contents
// atomically. Any invalid record rejects the whole snapshot and leaves the
// store untouched. A successful import leaves the store clean, so importing
// an export is a no-op for the save pipeline.
func (s *Store) Import(snap api.Snapshot) error {
	for _, e := range snap.Employees {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("state: import rejected: %w", err)
		}
	}
	for _, sh := range snap.Shifts {
		if err := sh.Validate(); err != nil {
			return fmt.Errorf("state: import rejected: %w", err)
		}
	}

	s.mu.Lock()
	s.employees = map[int]schedule.Employee{}
	s.shifts = map[int]schedule.Shift{}
	s.byCell = map[string][]int{}
	s.byEmployee = map[int][]int{}
	for _, e := range snap.Employees {
		s.employees[e.ID] = e
	}
	for _, sh := range snap.Shifts {
		s.shifts[sh.ID] = sh
		s.indexShiftLocked(sh)
	}
	s.dirty = false
	s.mu.Unlock()
	return nil
}

// CleanupReport describes what CleanCorrupted removed.
type CleanupReport struct {
	Employees []schedule.Employee
	Shifts    []schedule.Shift
}

// Empty reports whether the cleanup removed nothing.
func (r CleanupReport) Empty() bool {
	return len(r.Employees) == 0 && len(r.Shifts) == 0
}

// CleanCorrupted drops employees carrying a deletion sentinel or blank name,
// shifts with invalid geometry, and shifts left pointing at an employee that
// is no longer retained, returning what was removed. Earlier deletion bugs
// left such records behind on the server.
func (s *Store) CleanCorrupted() CleanupReport {
	var report CleanupReport

	s.mu.Lock()
	for id, e := range s.employees {
		if schedule.SentinelName(e.Name) || e.Validate() != nil {
			report.Employees = append(report.Employees, e)
			delete(s.employees, id)
		}
	}
	for id, sh := range s.shifts {
		_, retained := s.employees[sh.EmployeeID]
		if sh.Validate() != nil || !retained {
			report.Shifts = append(report.Shifts, sh)
			s.unindexShiftLocked(id)
			delete(s.shifts, id)
		}
	}
	transitioned := false
	if !report.Empty() {
		transitioned = s.markDirtyLocked()
	}
	s.mu.Unlock()

	s.publishDirty(transitioned)
	sortEmployees(report.Employees)
	schedule.SortShifts(report.Shifts)
	return report
}
