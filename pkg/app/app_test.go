package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rotaplan/rota/pkg/api"
	"github.com/rotaplan/rota/pkg/bus"
	"github.com/rotaplan/rota/pkg/schedule"
	"github.com/rotaplan/rota/pkg/state"
)

// scheduleServer serves the employees and shifts list endpoints in the
// service's envelope format.
func scheduleServer(t *testing.T, employees, shifts string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/employees":
			fmt.Fprintf(w, `{"success": true, "employees": %s}`, employees)
		case "/api/shifts":
			fmt.Fprintf(w, `{"success": true, "shifts": %s}`, shifts)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRefreshLoadsServerState(t *testing.T) {
	srv := scheduleServer(t,
		`[{"id": 1, "name": "Ana", "role": "manager", "active": true}]`,
		`[{"id": 10, "employee_id": 1, "day": "monday", "start_hour": 10, "duration": 4}]`,
	)

	a := &App{
		Bus:    bus.New(),
		Store:  state.NewStore(nil),
		Client: api.New(srv.URL),
	}

	if err := a.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(a.Store.Employees()) != 1 || len(a.Store.Shifts()) != 1 {
		t.Fatalf("expected server state loaded")
	}
	if a.Store.Dirty() {
		t.Fatalf("expected fresh load to be clean")
	}
	if got := a.EmployeeNames()[1]; got != "Ana" {
		t.Fatalf("expected name map built, got %q", got)
	}
}

func TestRefreshDropsRecordsGoneFromServer(t *testing.T) {
	srv := scheduleServer(t,
		`[{"id": 1, "name": "Ana", "role": "manager", "active": true}]`,
		`[]`,
	)

	a := &App{Store: state.NewStore(nil), Client: api.New(srv.URL)}
	a.Store.SetEmployee(schedule.Employee{ID: 1, Name: "Ana", Role: schedule.RoleManager, Active: true})
	a.Store.SetEmployee(schedule.Employee{ID: 2, Name: "Bo", Role: schedule.RoleCook, Active: true})
	a.Store.SetShift(schedule.Shift{ID: 10, EmployeeID: 2, Day: schedule.Monday, StartHour: 10, Duration: 4})

	if err := a.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, ok := a.Store.Employee(2); ok {
		t.Fatalf("expected employee deleted on the server to disappear locally")
	}
	if _, ok := a.Store.Shift(10); ok {
		t.Fatalf("expected shift deleted on the server to disappear locally")
	}
	if len(a.Store.Employees()) != 1 {
		t.Fatalf("expected only the server's employee left, got %v", a.Store.Employees())
	}
}

func TestRefreshSkipsInvalidRecords(t *testing.T) {
	srv := scheduleServer(t,
		`[{"id": 1, "name": "Ana", "role": "manager", "active": true},
		  {"id": 2, "name": "", "role": "cook", "active": true}]`,
		`[]`,
	)

	a := &App{Store: state.NewStore(nil), Client: api.New(srv.URL)}

	err := a.Refresh(context.Background())
	if err == nil {
		t.Fatalf("expected rejected records reported")
	}
	if len(a.Store.Employees()) != 1 {
		t.Fatalf("expected the valid employee loaded anyway")
	}
}

func TestRefreshRequiresClient(t *testing.T) {
	a := &App{Store: state.NewStore(nil)}
	if err := a.Refresh(context.Background()); err == nil {
		t.Fatalf("expected missing client error")
	}
}

func TestShiftHours(t *testing.T) {
	a := &App{Store: state.NewStore(nil)}
	a.Store.SetEmployee(schedule.Employee{ID: 7, Name: "Ana", Role: schedule.RoleServer, Active: true})
	a.Store.SetShift(schedule.Shift{ID: 1, EmployeeID: 7, Day: schedule.Monday, StartHour: 10, Duration: 4})
	a.Store.SetShift(schedule.Shift{ID: 2, EmployeeID: 7, Day: schedule.Tuesday, StartHour: 10, Duration: 6})

	if got := a.ShiftHours()[7]; got != 10 {
		t.Fatalf("expected 10 hours for employee 7, got %d", got)
	}
}
