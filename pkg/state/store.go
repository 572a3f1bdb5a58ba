// Package state maintains the canonical local copy of the schedule and emits
// bus events on mutation. State lives locally, subscribers react to events,
// and consumers read consistent snapshots without hitting the API.
package state

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rotaplan/rota/pkg/bus"
	"github.com/rotaplan/rota/pkg/schedule"
)

// Store holds employees and shifts plus the derived grid indices. All methods
// are safe for concurrent use. Construct with NewStore.
type Store struct {
	mu sync.RWMutex

	employees map[int]schedule.Employee
	shifts    map[int]schedule.Shift

	byCell     map[string][]int // cell key -> shift ids
	byEmployee map[int][]int    // employee id -> shift ids

	dirty     bool
	lastSaved time.Time

	events *bus.Bus
}

// NewStore returns an empty store. The bus may be nil; events are then
// simply not emitted.
func NewStore(events *bus.Bus) *Store {
	return &Store{
		employees:  map[int]schedule.Employee{},
		shifts:     map[int]schedule.Shift{},
		byCell:     map[string][]int{},
		byEmployee: map[int][]int{},
		events:     events,
	}
}

func (s *Store) publish(topic string, payload any) {
	if s.events == nil {
		return
	}
	s.events.Publish(topic, payload)
}

// SetEmployee inserts or replaces an employee. Invalid records are rejected
// and leave the store untouched.
func (s *Store) SetEmployee(e schedule.Employee) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("state: %w", err)
	}

	s.mu.Lock()
	s.employees[e.ID] = e
	transitioned := s.markDirtyLocked()
	s.mu.Unlock()

	s.publishDirty(transitioned)
	s.publish(bus.TopicEmployeeUpdated, e)
	return nil
}

// SetShift inserts or replaces a shift. Invalid records, and shifts whose
// employee is not in the store, are rejected and leave the store untouched.
func (s *Store) SetShift(sh schedule.Shift) error {
	if err := sh.Validate(); err != nil {
		return fmt.Errorf("state: %w", err)
	}

	s.mu.Lock()
	if _, ok := s.employees[sh.EmployeeID]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("state: shift %d references unknown employee %d", sh.ID, sh.EmployeeID)
	}
	_, existed := s.shifts[sh.ID]
	s.unindexShiftLocked(sh.ID)
	s.shifts[sh.ID] = sh
	s.indexShiftLocked(sh)
	transitioned := s.markDirtyLocked()
	s.mu.Unlock()

	s.publishDirty(transitioned)
	if existed {
		s.publish(bus.TopicShiftUpdated, sh)
	} else {
		s.publish(bus.TopicShiftCreated, sh)
	}
	return nil
}

// RemoveShift deletes a shift and reports whether it existed.
func (s *Store) RemoveShift(id int) bool {
	s.mu.Lock()
	sh, ok := s.shifts[id]
	transitioned := false
	if ok {
		s.unindexShiftLocked(id)
		delete(s.shifts, id)
		transitioned = s.markDirtyLocked()
	}
	s.mu.Unlock()

	if ok {
		s.publishDirty(transitioned)
		s.publish(bus.TopicShiftRemoved, sh)
	}
	return ok
}

// RemoveEmployee deletes an employee record. Shifts pointing at the removed
// employee are left in place; repairing them is the reconciler's job.
func (s *Store) RemoveEmployee(id int) bool {
	s.mu.Lock()
	e, ok := s.employees[id]
	transitioned := false
	if ok {
		delete(s.employees, id)
		transitioned = s.markDirtyLocked()
	}
	s.mu.Unlock()

	if ok {
		s.publishDirty(transitioned)
		s.publish(bus.TopicEmployeeRemoved, e)
	}
	return ok
}

// Employee looks up one employee.
func (s *Store) Employee(id int) (schedule.Employee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.employees[id]
	return e, ok
}

// Shift looks up one shift.
func (s *Store) Shift(id int) (schedule.Shift, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sh, ok := s.shifts[id]
	return sh, ok
}

// Employees returns all employees sorted by id.
func (s *Store) Employees() []schedule.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]schedule.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		out = append(out, e)
	}
	sortEmployees(out)
	return out
}

// Shifts returns all shifts in grid order.
func (s *Store) Shifts() []schedule.Shift {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shiftsLocked()
}

func (s *Store) shiftsLocked() []schedule.Shift {
	out := make([]schedule.Shift, 0, len(s.shifts))
	for _, sh := range s.shifts {
		out = append(out, sh)
	}
	schedule.SortShifts(out)
	return out
}

// ShiftsAt returns the shifts starting in the given grid cell.
func (s *Store) ShiftsAt(day schedule.Weekday, hour, minutes int) []schedule.Shift {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectLocked(s.byCell[schedule.CellKey(day, hour, minutes)])
}

// ShiftsFor returns the shifts assigned to one employee in grid order.
func (s *Store) ShiftsFor(employeeID int) []schedule.Shift {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectLocked(s.byEmployee[employeeID])
}

// ShiftsOn returns the shifts on one day in grid order.
func (s *Store) ShiftsOn(day schedule.Weekday) []schedule.Shift {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []schedule.Shift
	for _, sh := range s.shifts {
		if sh.Day == day {
			out = append(out, sh)
		}
	}
	schedule.SortShifts(out)
	return out
}

func (s *Store) collectLocked(ids []int) []schedule.Shift {
	out := make([]schedule.Shift, 0, len(ids))
	for _, id := range ids {
		if sh, ok := s.shifts[id]; ok {
			out = append(out, sh)
		}
	}
	schedule.SortShifts(out)
	return out
}

// Conflicts returns every overlapping shift pair in the store.
func (s *Store) Conflicts() []schedule.Conflict {
	s.mu.RLock()
	shifts := s.shiftsLocked()
	s.mu.RUnlock()
	return schedule.FindConflicts(shifts)
}

// Dirty reports whether local state has unsaved changes.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// LastSaved returns the time of the last successful save, zero if never.
func (s *Store) LastSaved() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSaved
}

// ResetDirty restores a previously observed dirty flag. Used after an
// operation that made no net change, such as a rolled-back move.
func (s *Store) ResetDirty(dirty bool) {
	s.mu.Lock()
	s.dirty = dirty
	s.mu.Unlock()
}

// Clear drops every record and derived index. The dirty flag and save
// timestamp are untouched; used when reloading state from the server.
func (s *Store) Clear() {
	s.mu.Lock()
	s.employees = map[int]schedule.Employee{}
	s.shifts = map[int]schedule.Shift{}
	s.byCell = map[string][]int{}
	s.byEmployee = map[int][]int{}
	s.mu.Unlock()
}

// MarkClean records a successful save.
func (s *Store) MarkClean() {
	s.mu.Lock()
	s.dirty = false
	s.lastSaved = time.Now()
	at := s.lastSaved
	s.mu.Unlock()

	s.publish(bus.TopicStateSaved, at)
}

// markDirtyLocked flips the dirty flag and reports whether this mutation was
// the clean-to-dirty transition. Callers publish TopicStateDirty after
// releasing the lock so handlers can read the store.
func (s *Store) markDirtyLocked() bool {
	was := s.dirty
	s.dirty = true
	return !was
}

func (s *Store) publishDirty(transitioned bool) {
	if transitioned {
		s.publish(bus.TopicStateDirty, time.Now())
	}
}

func (s *Store) indexShiftLocked(sh schedule.Shift) {
	key := sh.CellKey()
	s.byCell[key] = append(s.byCell[key], sh.ID)
	s.byEmployee[sh.EmployeeID] = append(s.byEmployee[sh.EmployeeID], sh.ID)
}

func (s *Store) unindexShiftLocked(id int) {
	old, ok := s.shifts[id]
	if !ok {
		return
	}
	key := old.CellKey()
	s.byCell[key] = removeID(s.byCell[key], id)
	if len(s.byCell[key]) == 0 {
		delete(s.byCell, key)
	}
	s.byEmployee[old.EmployeeID] = removeID(s.byEmployee[old.EmployeeID], id)
	if len(s.byEmployee[old.EmployeeID]) == 0 {
		delete(s.byEmployee, old.EmployeeID)
	}
}

func removeID(ids []int, id int) []int {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

func sortEmployees(emps []schedule.Employee) {
	sort.SliceStable(emps, func(i, j int) bool {
		return emps[i].ID < emps[j].ID
	})
}
