package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/rotaplan/rota/pkg/commands/options"
	"github.com/rotaplan/rota/pkg/runner/add"
	"github.com/rotaplan/rota/pkg/schedule"
	"github.com/rotaplan/rota/pkg/timeutil"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create shifts and employees.",
	}
	addAddShift(cmd)
	addAddEmployee(cmd)
	topLevel.AddCommand(cmd)
}

func addAddShift(parent *cobra.Command) {
	so := &options.ScheduleOptions{}
	eo := &options.EmployeeOptions{}

	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Create a shift.",
		Example: `
rota add shift --employee 7 --day friday --time 18:00 --duration 6
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if eo.EmployeeID <= 0 {
				return errors.New("an employee id is required")
			}
			day, err := timeutil.ParseDay(so.Day)
			if err != nil {
				return err
			}
			hour, minutes, err := timeutil.ParseSlot(so.Time)
			if err != nil {
				return err
			}
			duration, err := timeutil.ParseShiftDuration(so.Duration)
			if err != nil {
				return err
			}
			a, err := loadApp()
			if err != nil {
				return err
			}
			s := add.Shift{
				EmployeeID: eo.EmployeeID,
				Day:        day,
				Hour:       hour,
				Minutes:    minutes,
				Duration:   duration,
				App:        a,
			}
			return s.Do(context.Background())
		},
	}

	options.AddScheduleArgs(cmd, so)
	options.AddEmployeeIDArg(cmd, eo)
	parent.AddCommand(cmd)
}

func addAddEmployee(parent *cobra.Command) {
	eo := &options.EmployeeOptions{}

	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Create an employee.",
		Example: `
rota add employee --name "Ana Duval" --role server
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			s := add.Employee{
				Name:       eo.Name,
				Role:       schedule.Role(eo.Role),
				Email:      eo.Email,
				Phone:      eo.Phone,
				HourlyRate: eo.HourlyRate,
				App:        a,
			}
			return s.Do(context.Background())
		},
	}

	options.AddEmployeeArgs(cmd, eo)
	parent.AddCommand(cmd)
}
