// Package get implements the read commands: employees, shifts, conflicts.
package get

import (
	"context"
	"errors"
	"fmt"

	"github.com/rotaplan/rota/pkg/app"
	"github.com/rotaplan/rota/pkg/printers"
	"github.com/rotaplan/rota/pkg/schedule"
)

// Kind selects what to fetch and print.
type Kind string

const (
	Employees Kind = "employees"
	Shifts    Kind = "shifts"
	Conflicts Kind = "conflicts"
	Grid      Kind = "grid"
)

// KindForAlias resolves command aliases to a Kind.
func KindForAlias(s string) (Kind, error) {
	switch s {
	case "employees", "employee", "staff", "e":
		return Employees, nil
	case "shifts", "shift", "s":
		return Shifts, nil
	case "conflicts", "conflict", "c":
		return Conflicts, nil
	case "grid", "week", "g":
		return Grid, nil
	}
	return "", fmt.Errorf("get: unknown kind %q", s)
}

type Get struct {
	Kind     Kind
	Day      schedule.Weekday
	ShowRate bool
	App      *app.App
}

func (g *Get) Do(ctx context.Context) error {
	if g.App == nil {
		return errors.New("get: no app configured")
	}
	if err := g.App.Refresh(ctx); err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowRate: g.ShowRate}
	switch g.Kind {
	case Employees:
		employees := g.App.Store.Employees()
		pp.TitleWithCount("employees", len(employees))
		pp.Employees(employees...)

	case Shifts:
		shifts := g.App.Store.Shifts()
		if g.Day != "" {
			if !g.Day.Valid() {
				return fmt.Errorf("get: unknown day %q", g.Day)
			}
			shifts = g.App.Store.ShiftsOn(g.Day)
		}
		pp.TitleWithCount("shifts", len(shifts))
		pp.Shifts(g.App.EmployeeNames(), shifts...)

	case Conflicts:
		conflicts := g.App.Store.Conflicts()
		pp.Title("conflicts")
		pp.Conflicts(conflicts...)

	case Grid:
		pp.Title("week")
		pp.Week(g.App.Store.Shifts()...)

	default:
		return fmt.Errorf("get: unknown kind %q", g.Kind)
	}
	return nil
}
