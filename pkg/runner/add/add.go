// Package add implements the create commands for shifts and employees.
package add

import (
	"context"
	"errors"

	"github.com/rotaplan/rota/pkg/app"
	"github.com/rotaplan/rota/pkg/printers"
	"github.com/rotaplan/rota/pkg/schedule"
)

// Shift creates a shift remotely and mirrors it into local state.
type Shift struct {
	EmployeeID int
	Day        schedule.Weekday
	Hour       int
	Minutes    int
	Duration   int
	App        *app.App
}

func (a *Shift) Do(ctx context.Context) error {
	if a.App == nil {
		return errors.New("add: no app configured")
	}

	// Validate with a placeholder id; the server assigns the real one.
	draft := schedule.Shift{
		ID:           1,
		EmployeeID:   a.EmployeeID,
		Day:          a.Day,
		StartHour:    a.Hour,
		StartMinutes: a.Minutes,
		Duration:     a.Duration,
	}
	if err := draft.Validate(); err != nil {
		return err
	}

	// Load current state first; mirroring the created shift needs its
	// employee in the store.
	if err := a.App.Refresh(ctx); err != nil {
		return err
	}

	created, err := a.App.Client.CreateShift(ctx, schedule.Shift{
		EmployeeID:   a.EmployeeID,
		Day:          a.Day,
		StartHour:    a.Hour,
		StartMinutes: a.Minutes,
		Duration:     a.Duration,
	})
	if err != nil {
		return err
	}
	if err := a.App.Store.SetShift(created); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Title("created shift")
	pp.Shifts(a.App.EmployeeNames(), created)
	return nil
}

// Employee creates an employee remotely and mirrors it into local state.
type Employee struct {
	Name       string
	Role       schedule.Role
	Email      string
	Phone      string
	HourlyRate float64
	App        *app.App
}

func (a *Employee) Do(ctx context.Context) error {
	if a.App == nil {
		return errors.New("add: no app configured")
	}

	draft := schedule.Employee{ID: 1, Name: a.Name, Role: a.Role, Active: true, HourlyRate: a.HourlyRate}
	if err := draft.Validate(); err != nil {
		return err
	}

	created, err := a.App.Client.CreateEmployee(ctx, schedule.Employee{
		Name:       a.Name,
		Role:       a.Role,
		Email:      a.Email,
		Phone:      a.Phone,
		Active:     true,
		HourlyRate: a.HourlyRate,
	})
	if err != nil {
		return err
	}
	if err := a.App.Store.SetEmployee(created); err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowRate: a.HourlyRate > 0}
	pp.Title("created employee")
	pp.Employees(created)
	return nil
}
