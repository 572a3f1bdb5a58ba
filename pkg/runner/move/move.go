// Package move implements the one-shot shift relocation command. It runs
// through the same controller as the planner UI, so local validation,
// conflict rejection, and rollback behave identically.
package move

import (
	"context"
	"errors"

	"github.com/fatih/color"

	"github.com/rotaplan/rota/pkg/app"
	"github.com/rotaplan/rota/pkg/schedule"
)

type Move struct {
	ShiftID int
	Day     schedule.Weekday
	Hour    int
	Minutes int
	App     *app.App
}

func (m *Move) Do(ctx context.Context) error {
	if m.App == nil {
		return errors.New("move: no app configured")
	}
	if err := m.App.Refresh(ctx); err != nil {
		return err
	}

	if err := m.App.Drag.Start(m.ShiftID); err != nil {
		return err
	}
	result, err := m.App.Drag.Drop(ctx, m.Day, m.Hour, m.Minutes)
	if err != nil {
		return err
	}

	ok := color.New(color.FgGreen)
	if result.NoOp {
		_, _ = ok.Printf("shift %d already at %s %s\n",
			m.ShiftID, m.Day, schedule.SlotLabel(m.Hour, m.Minutes))
		return nil
	}
	_, _ = ok.Printf("moved shift %d to %s %s\n",
		result.Shift.ID, result.Shift.Day, schedule.SlotLabel(result.Shift.StartHour, result.Shift.StartMinutes))
	return nil
}
