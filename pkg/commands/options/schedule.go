// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// ScheduleOptions captures grid placement flags shared by add and move.
type ScheduleOptions struct {
	Day      string
	Time     string
	Duration string
}

// AddScheduleArgs wires day/time/duration flags on the provided command.
func AddScheduleArgs(cmd *cobra.Command, o *ScheduleOptions) {
	cmd.Flags().StringVarP(&o.Day, "day", "d", "",
		"Day of the week (monday..sunday).")
	cmd.Flags().StringVarP(&o.Time, "time", "t", "",
		"Start slot, for example 14:30.")
	cmd.Flags().StringVar(&o.Duration, "duration", "4h",
		"Shift length in hours, for example 6h.")
}

// EmployeeOptions captures employee record flags.
type EmployeeOptions struct {
	Name       string
	Role       string
	Email      string
	Phone      string
	HourlyRate float64
	EmployeeID int
}

// AddEmployeeArgs wires employee record flags on the provided command.
func AddEmployeeArgs(cmd *cobra.Command, o *EmployeeOptions) {
	cmd.Flags().StringVarP(&o.Name, "name", "n", "", "Employee name.")
	cmd.Flags().StringVarP(&o.Role, "role", "r", "", "Employee role.")
	cmd.Flags().StringVar(&o.Email, "email", "", "Contact email.")
	cmd.Flags().StringVar(&o.Phone, "phone", "", "Contact phone.")
	cmd.Flags().Float64Var(&o.HourlyRate, "rate", 0, "Hourly rate.")
}

// AddEmployeeIDArg wires the employee selector flag.
func AddEmployeeIDArg(cmd *cobra.Command, o *EmployeeOptions) {
	cmd.Flags().IntVarP(&o.EmployeeID, "employee", "e", 0, "Employee id.")
}
