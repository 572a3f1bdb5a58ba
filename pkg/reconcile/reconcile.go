// Package reconcile repairs referential integrity between employees and
// shifts: orphaned shifts are reassigned or deleted, and inactive or
// placeholder employee records are removed.
package reconcile

import (
	"context"
	"fmt"

	"github.com/rotaplan/rota/pkg/bus"
	"github.com/rotaplan/rota/pkg/schedule"
)

// Remote is the slice of the API the reconciler needs.
type Remote interface {
	ReassignShift(ctx context.Context, shiftID, employeeID int) error
	DeleteShift(ctx context.Context, id int) error
	DeleteEmployee(ctx context.Context, id int) error
}

// Source provides the records to reconcile and receives the repairs once the
// remote has accepted them. *state.Store satisfies it.
type Source interface {
	Employees() []schedule.Employee
	Shifts() []schedule.Shift
	SetShift(sh schedule.Shift) error
	RemoveShift(id int) bool
	RemoveEmployee(id int) bool
}

// Report is the outcome of an analysis or repair pass.
type Report struct {
	Active    []schedule.Employee
	Inactive  []schedule.Employee
	Sentinels []schedule.Employee
	Orphans   []schedule.Shift

	Reassigned []schedule.Shift
	Deleted    []schedule.Shift
	Removed    []schedule.Employee
	Errors     []error
}

// Clean reports whether nothing needs repair.
func (r Report) Clean() bool {
	return len(r.Orphans) == 0 && len(r.Inactive) == 0 && len(r.Sentinels) == 0
}

// Reconciler runs analysis and repair passes against the remote API.
type Reconciler struct {
	source Source
	remote Remote
	events *bus.Bus
}

// New wires a reconciler. The bus may be nil.
func New(source Source, remote Remote, events *bus.Bus) *Reconciler {
	return &Reconciler{source: source, remote: remote, events: events}
}

// Analyze classifies every employee and finds shifts whose employee is
// missing, inactive, or a deletion placeholder. Read-only.
func (r *Reconciler) Analyze() Report {
	var report Report

	schedulable := map[int]bool{}
	for _, e := range r.source.Employees() {
		switch {
		case schedule.SentinelName(e.Name):
			report.Sentinels = append(report.Sentinels, e)
		case !e.Active:
			report.Inactive = append(report.Inactive, e)
		default:
			report.Active = append(report.Active, e)
			schedulable[e.ID] = true
		}
	}

	for _, sh := range r.source.Shifts() {
		if !schedulable[sh.EmployeeID] {
			report.Orphans = append(report.Orphans, sh)
		}
	}
	schedule.SortShifts(report.Orphans)
	return report
}

// FallbackEmployee picks who orphaned shifts should be reassigned to: the
// first active manager, else the first active employee. ok is false when
// nobody can take them.
func FallbackEmployee(active []schedule.Employee) (schedule.Employee, bool) {
	for _, e := range active {
		if e.Role == schedule.RoleManager {
			return e, true
		}
	}
	if len(active) > 0 {
		return active[0], true
	}
	return schedule.Employee{}, false
}

// RepairOrphans reassigns every orphaned shift to the fallback employee,
// deleting shifts that cannot be reassigned. When no employee can take them
// all orphans are deleted. One failing record never stops the pass; failures
// are collected in the report.
func (r *Reconciler) RepairOrphans(ctx context.Context) Report {
	report := r.Analyze()
	fallback, ok := FallbackEmployee(report.Active)

	for _, sh := range report.Orphans {
		if !ok {
			r.deleteShift(ctx, sh, &report)
			continue
		}
		if err := r.remote.ReassignShift(ctx, sh.ID, fallback.ID); err != nil {
			report.Errors = append(report.Errors,
				fmt.Errorf("reconcile: reassigning shift %d to %d: %w", sh.ID, fallback.ID, err))
			r.deleteShift(ctx, sh, &report)
			continue
		}
		sh.EmployeeID = fallback.ID
		// The remote accepted the repair; mirror it locally so a
		// re-analysis stops reporting the shift as orphaned.
		if err := r.source.SetShift(sh); err != nil {
			report.Errors = append(report.Errors,
				fmt.Errorf("reconcile: applying reassignment of shift %d: %w", sh.ID, err))
			continue
		}
		report.Reassigned = append(report.Reassigned, sh)
	}
	return report
}

func (r *Reconciler) deleteShift(ctx context.Context, sh schedule.Shift, report *Report) {
	if err := r.remote.DeleteShift(ctx, sh.ID); err != nil {
		report.Errors = append(report.Errors,
			fmt.Errorf("reconcile: deleting shift %d: %w", sh.ID, err))
		return
	}
	r.source.RemoveShift(sh.ID)
	report.Deleted = append(report.Deleted, sh)
}

// RemoveInactive deletes inactive and placeholder employee records remotely.
// Per-record failures are collected and do not stop the pass.
func (r *Reconciler) RemoveInactive(ctx context.Context) Report {
	report := r.Analyze()

	doomed := append(append([]schedule.Employee{}, report.Inactive...), report.Sentinels...)
	for _, e := range doomed {
		if err := r.remote.DeleteEmployee(ctx, e.ID); err != nil {
			report.Errors = append(report.Errors,
				fmt.Errorf("reconcile: deleting employee %d: %w", e.ID, err))
			continue
		}
		r.source.RemoveEmployee(e.ID)
		report.Removed = append(report.Removed, e)
	}
	return report
}

// ExecuteAll runs the full pass: repair orphans, remove dead employee
// records, and re-analyze. The final report is published on the bus.
func (r *Reconciler) ExecuteAll(ctx context.Context) Report {
	repaired := r.RepairOrphans(ctx)
	removed := r.RemoveInactive(ctx)

	final := r.Analyze()
	final.Reassigned = repaired.Reassigned
	final.Deleted = repaired.Deleted
	final.Removed = removed.Removed
	final.Errors = append(append([]error{}, repaired.Errors...), removed.Errors...)

	if r.events != nil {
		r.events.Publish(bus.TopicReconcileReport, final)
	}
	return final
}
