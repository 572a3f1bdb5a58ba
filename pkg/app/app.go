// Package app assembles the application: config, bus, store, API client,
// color store, drag controller, and reconciler. Runners and the TUI share
// one App so every surface sees the same state.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rotaplan/rota/pkg/api"
	"github.com/rotaplan/rota/pkg/bus"
	"github.com/rotaplan/rota/pkg/colorstore"
	"github.com/rotaplan/rota/pkg/config"
	"github.com/rotaplan/rota/pkg/drag"
	"github.com/rotaplan/rota/pkg/reconcile"
	"github.com/rotaplan/rota/pkg/state"
)

// App carries every long-lived component. Fields are exported so tests and
// runners can assemble partial apps with fakes.
type App struct {
	Config     config.Config
	Bus        *bus.Bus
	Store      *state.Store
	Client     *api.Client
	Colors     colorstore.Store
	Drag       *drag.Controller
	Reconciler *reconcile.Reconciler
}

// New builds a fully wired App from configuration.
func New(cfg config.Config) (*App, error) {
	b := bus.New()
	store := state.NewStore(b)

	client := api.New(cfg.BaseURL,
		api.WithTimeout(cfg.Timeout),
		api.WithBus(b),
	)

	colors, err := colorstore.Load(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("app: opening color store: %w", err)
	}

	return &App{
		Config:     cfg,
		Bus:        b,
		Store:      store,
		Client:     client,
		Colors:     colors,
		Drag:       drag.NewController(store, client, b),
		Reconciler: reconcile.New(store, client, b),
	}, nil
}

// Refresh replaces local state with the server's employees and shifts.
// Records the server holds that fail local validation are skipped and
// reported in the returned error; everything valid is loaded regardless.
func (a *App) Refresh(ctx context.Context) error {
	if a.Client == nil {
		return errors.New("app: no client configured")
	}
	if a.Store == nil {
		return errors.New("app: no store configured")
	}

	employees, err := a.Client.ListEmployees(ctx)
	if err != nil {
		return fmt.Errorf("app: fetching employees: %w", err)
	}
	shifts, err := a.Client.ListShifts(ctx)
	if err != nil {
		return fmt.Errorf("app: fetching shifts: %w", err)
	}

	// Both fetches succeeded; the server copy replaces the local one
	// wholesale so server-side deletions do not linger here.
	a.Store.Clear()

	var rejected []error
	for _, e := range employees {
		if err := a.Store.SetEmployee(e); err != nil {
			rejected = append(rejected, err)
		}
	}
	for _, sh := range shifts {
		if err := a.Store.SetShift(sh); err != nil {
			rejected = append(rejected, err)
		}
	}

	// A fresh load is not a local edit.
	a.Store.MarkClean()

	if len(rejected) > 0 {
		return fmt.Errorf("app: %d records rejected during refresh: %w", len(rejected), errors.Join(rejected...))
	}
	return nil
}

// EmployeeNames maps ids to names for display.
func (a *App) EmployeeNames() map[int]string {
	names := map[int]string{}
	if a.Store == nil {
		return names
	}
	for _, e := range a.Store.Employees() {
		names[e.ID] = e.Name
	}
	return names
}

// AutoSaver builds the periodic saver over this app's store and client.
func (a *App) AutoSaver() (*state.AutoSaver, error) {
	if a.Client == nil {
		return nil, errors.New("app: no client configured")
	}
	interval := a.Config.AutoSaveInterval
	if interval <= 0 {
		interval = state.DefaultAutoSaveInterval
	}
	return state.NewAutoSaver(a.Store, a.Client, a.Bus, state.WithInterval(interval)), nil
}

// FuzzySuggestions pairs orphaned shifts with similarly named active
// employees. The caller decides whether to apply them.
func (a *App) FuzzySuggestions(orphanNames map[int]string) []reconcile.Match {
	if a.Reconciler == nil || a.Store == nil {
		return nil
	}
	report := a.Reconciler.Analyze()

	var matches []reconcile.Match
	for _, sh := range report.Orphans {
		name := orphanNames[sh.EmployeeID]
		if name == "" {
			continue
		}
		if e, score, ok := reconcile.BestMatch(name, report.Active); ok {
			matches = append(matches, reconcile.Match{Shift: sh, Employee: e, Similarity: score})
		}
	}
	return matches
}

// ShiftHours sums scheduled hours per employee, for the roster footer.
func (a *App) ShiftHours() map[int]int {
	totals := map[int]int{}
	if a.Store == nil {
		return totals
	}
	for _, sh := range a.Store.Shifts() {
		totals[sh.EmployeeID] += sh.Duration
	}
	return totals
}
